package aausat

import (
	"fmt"
)

// Shortened RS(255,223) as applied to one frame.  The data part is
// whatever fits the geometry; the code is padded with virtual zeros
// in front up to the full block length.

// BlockEncode returns data followed by RS_LENGTH parity bytes.
func BlockEncode(data []byte) ([]byte, error) {
	var pad = RS_BLOCK_LENGTH - RS_LENGTH - len(data)
	if pad < 0 {
		return nil, fmt.Errorf("%w: %d bytes do not fit an RS block", ErrPayloadSize, len(data))
	}

	var out = make([]byte, len(data)+RS_LENGTH)
	copy(out, data)
	ccsdsRS.encode(data, out[len(data):], pad)

	return out, nil
}

// BlockDecode corrects block, data followed by parity, in place.
// It returns the number of bytes corrected.  When the block cannot be
// corrected it returns -1 and ErrUncorrectable, leaving block unchanged.
func BlockDecode(block []byte) (int, error) {
	if len(block) <= RS_LENGTH || len(block) > RS_BLOCK_LENGTH {
		return -1, fmt.Errorf("%w: %d byte block", ErrUncorrectable, len(block))
	}

	var pad = RS_BLOCK_LENGTH - len(block)
	var n = ccsdsRS.decode(block, pad)
	if n < 0 {
		return -1, ErrUncorrectable
	}

	return n, nil
}
