package aausat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// The block code found more errors than it can repair.
	// Often just means the wrong geometry was tried.
	ErrUncorrectable = errors.New("reed-solomon decoding error")

	// The recomputed tag differs from the one received.
	ErrAuthentication = errors.New("HMAC does not match expected value")

	// The window is too short for the geometry being tried.
	ErrGeometryMismatch = errors.New("window too short for frame geometry")

	// The recovered size field points past the end of the decoded block.
	ErrMalformedSize = errors.New("size field inconsistent with frame length")

	// The packet cannot be carried by either geometry.
	ErrPayloadSize = errors.New("packet size out of range")
)

// Attempt records one candidate geometry tried by the trial decoder.
type Attempt struct {
	Geometry        Geometry
	BitCorrections  uint
	ByteCorrections int // -1 when the block code gave up.
	Err             error
}

func (a Attempt) String() string {
	if a.Err == nil {
		return fmt.Sprintf("%s: ok, %d bit errors, %d byte errors", a.Geometry, a.BitCorrections, a.ByteCorrections)
	}
	return fmt.Sprintf("%s: %v", a.Geometry, a.Err)
}

// DecodeFailure is returned when no candidate geometry produced a packet.
// For a window containing only noise this is the normal outcome.
type DecodeFailure struct {
	Attempts []Attempt
}

func (f *DecodeFailure) Error() string {
	var parts = make([]string, 0, len(f.Attempts))
	for _, a := range f.Attempts {
		parts = append(parts, a.String())
	}
	return "no frame recovered (" + strings.Join(parts, "; ") + ")"
}

func (f *DecodeFailure) Unwrap() []error {
	var errs = make([]error, 0, len(f.Attempts))
	for _, a := range f.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}
