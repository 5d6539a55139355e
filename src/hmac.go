package aausat

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // Fixed by the spacecraft.
	"fmt"
)

// Authenticator appends and checks the truncated HMAC-SHA1 tag carried
// at the end of every packet.  The tag covers the CSP header and the
// body, everything in front of the tag itself.
type Authenticator struct {
	key []byte
}

// NewAuthenticator derives the key from a passphrase.
// The key is the first HMAC_KEY_LENGTH bytes of its SHA-1 hash.
func NewAuthenticator(passphrase string) *Authenticator {
	var sum = sha1.Sum([]byte(passphrase)) //nolint:gosec
	var key = make([]byte, HMAC_KEY_LENGTH)
	copy(key, sum[:])
	return &Authenticator{key: key}
}

func (a *Authenticator) tag(data []byte) []byte {
	var mac = hmac.New(sha1.New, a.key)
	mac.Write(data)
	return mac.Sum(nil)[:HMAC_LENGTH]
}

// Append returns a new slice holding data followed by its tag.
func (a *Authenticator) Append(data []byte) []byte {
	var out = make([]byte, 0, len(data)+HMAC_LENGTH)
	out = append(out, data...)
	return append(out, a.tag(data)...)
}

// Verify checks the trailing tag and returns the data in front of it.
func (a *Authenticator) Verify(data []byte) ([]byte, error) {
	if len(data) < CSP_OVERHEAD+HMAC_LENGTH {
		return nil, fmt.Errorf("%w: %d bytes is too short to carry a tag", ErrAuthentication, len(data))
	}

	var n = len(data) - HMAC_LENGTH
	if !hmac.Equal(a.tag(data[:n]), data[n:]) {
		return nil, ErrAuthentication
	}

	return data[:n], nil
}

// Never print the key.
func (a *Authenticator) String() string {
	return "Authenticator{key: <redacted>}"
}

func (a *Authenticator) GoString() string {
	return a.String()
}

var _ fmt.Stringer = (*Authenticator)(nil)
