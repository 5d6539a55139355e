package aausat

// Wire format constants for the AAUSAT4 downlink.

const VITERBI_RATE = 2       // Channel symbols per data bit.
const VITERBI_TAIL = 1       // Bytes of zero bits appended to flush the encoder.
const VITERBI_CONSTRAINT = 7 // K=7, 64 state trellis.

const BITS_PER_BYTE = 8
const MAX_FEC_LENGTH = 255 // Largest block handled by any stage.

const RS_LENGTH = 32        // Parity bytes, i.e. RS(255,223).
const RS_BLOCK_LENGTH = 255 // Always 255 for 8 bit symbols.

const HMAC_LENGTH = 2      // Truncated tag sent over the air.
const HMAC_KEY_LENGTH = 16 // Truncated SHA-1 of the passphrase.
const SIZE_LENGTH = 2      // Big endian size prefix.

const CSP_OVERHEAD = 4 // CSP header is not counted by the size field.

// Limits on the part covered by the size field.  Add SIZE_LENGTH and
// CSP_OVERHEAD to get the data part of the RS block.

const SHORT_FRAME_LIMIT = 25
const LONG_FRAME_LIMIT = 86

// Geometry pairs the length of a frame as it comes off the air with
// the size of the data part of the RS block carried inside it.
type Geometry struct {
	Name      string
	FECBytes  int
	DataBytes int
}

var LongGeometry = Geometry{Name: "long", FECBytes: 250, DataBytes: 92}
var ShortGeometry = Geometry{Name: "short", FECBytes: 128, DataBytes: 31}

// Candidates in the order they are tried by the trial decoder.
// Long frames are far more common in the telemetry stream.
var candidateGeometries = []Geometry{LongGeometry, ShortGeometry}

func (g Geometry) String() string {
	return g.Name
}

// Pick the geometry for a packet of n bytes, CSP header included.

func selectGeometry(n int) Geometry {
	if n-CSP_OVERHEAD <= SHORT_FRAME_LIMIT {
		return ShortGeometry
	}
	return LongGeometry
}
