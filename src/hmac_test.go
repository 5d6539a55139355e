package aausat

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_Authenticator_KnownTag(t *testing.T) {
	var a = NewAuthenticator("secret")

	var tagged = a.Append([]byte{0x00, 0x01, 0x4e, 0x90, 0x00})

	assert.Equal(t, "00014e9000f201", hex.EncodeToString(tagged))
}

func Test_Authenticator_Verify(t *testing.T) {
	var a = NewAuthenticator("secret")
	var tagged, _ = hex.DecodeString("00014e9000f201")

	var data, err = a.Verify(tagged)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x4e, 0x90, 0x00}, data)
}

func Test_Authenticator_TestVectorTag(t *testing.T) {
	// We don't know the key the test vector was sent with.
	var a = NewAuthenticator("secret")
	var packet, _ = hex.DecodeString(testVectorPacket)

	var _, err = a.Verify(packet)

	assert.True(t, errors.Is(err, ErrAuthentication))
}

func Test_Authenticator_TooShort(t *testing.T) {
	var a = NewAuthenticator("secret")

	var _, err = a.Verify([]byte{0x00, 0x01, 0x4e, 0x90, 0x00})

	assert.True(t, errors.Is(err, ErrAuthentication))
}

func Test_Authenticator_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var passphrase = rapid.String().Draw(t, "passphrase")
		var data = rapid.SliceOfN(rapid.Byte(), CSP_OVERHEAD, 100).Draw(t, "data")
		var a = NewAuthenticator(passphrase)

		var tagged = a.Append(data)
		assert.Len(t, tagged, len(data)+HMAC_LENGTH)

		var out, err = a.Verify(tagged)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	})
}

func Test_Authenticator_DetectsBitFlip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), CSP_OVERHEAD, 100).Draw(t, "data")
		var a = NewAuthenticator("secret")

		var tagged = a.Append(data)

		// Only the tag bits are certain to be caught; 16 bits of tag means
		// a changed body gets through one time in 65536.
		var bit = rapid.IntRange(len(data)*BITS_PER_BYTE, len(tagged)*BITS_PER_BYTE-1).Draw(t, "bit")
		tagged[bit/8] ^= 0x80 >> (bit % 8)

		var _, err = a.Verify(tagged)
		assert.True(t, errors.Is(err, ErrAuthentication))
	})
}

func Test_Authenticator_DifferentKeys(t *testing.T) {
	var data = []byte{0x00, 0x01, 0x4e, 0x90, 0x00}

	var tagged = NewAuthenticator("secret").Append(data)
	var _, err = NewAuthenticator("Secret").Verify(tagged)

	assert.True(t, errors.Is(err, ErrAuthentication))
}

func Test_Authenticator_KeyNotPrinted(t *testing.T) {
	var a = NewAuthenticator("secret")

	assert.NotContains(t, fmt.Sprintf("%v %+v %#v %s", a, a, a, a), hex.EncodeToString(a.key))
}
