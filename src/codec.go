package aausat

/*------------------------------------------------------------------
 *
 * Purpose:	Put together and take apart AAUSAT4 downlink frames.
 *
 * Description:	Transmit order:
 *
 *			size prefix, 2 bytes big endian, not counting the CSP header
 *			RS(255,223) parity appended, shortened to the frame geometry
 *			CCSDS randomizer over data and parity
 *			r=1/2 K=7 convolutional code, tail flushed
 *
 *		Receive undoes these in reverse.  Each stage can be turned
 *		off but both ends of a link must agree.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
)

// CodecConfig selects the stages in use and the authentication passphrase.
// An empty Key disables authentication.
type CodecConfig struct {
	Key         string `yaml:"key"`
	Viterbi     bool   `yaml:"viterbi"`
	ReedSolomon bool   `yaml:"reed_solomon"`
	Randomizer  bool   `yaml:"randomizer"`
}

func DefaultCodecConfig() CodecConfig {
	return CodecConfig{
		Viterbi:     true,
		ReedSolomon: true,
		Randomizer:  true,
	}
}

// Codec holds everything that is fixed for the life of a link.
// It is never modified after NewCodec so one Codec can be shared by
// any number of goroutines.
type Codec struct {
	sequence  []byte
	auth      *Authenticator
	viterbi   bool
	rs        bool
	randomize bool
}

// Packet is a recovered CSP packet with the effort needed to get it.
type Packet struct {
	Data            []byte
	BitCorrections  uint // Informational, from the Viterbi decoder.
	ByteCorrections int  // -1 when the block code failed; Data is then nil.
}

func NewCodec(cfg CodecConfig) *Codec {
	var c = &Codec{
		sequence:  GenerateSequence(MAX_FEC_LENGTH),
		viterbi:   cfg.Viterbi,
		rs:        cfg.ReedSolomon,
		randomize: cfg.Randomizer,
	}
	if cfg.Key != "" {
		c.auth = NewAuthenticator(cfg.Key)
	}
	return c
}

// Authenticated reports whether Frame and Deframe use a tag.
func (c *Codec) Authenticated() bool {
	return c.auth != nil
}

// FrameLength is the on-air size of a frame of geometry g with the
// stages configured for this codec.  With everything enabled it is g.FECBytes.
func (c *Codec) FrameLength(g Geometry) int {
	var n = g.DataBytes
	if c.rs {
		n += RS_LENGTH
	}
	if c.viterbi {
		n = (n + VITERBI_TAIL) * VITERBI_RATE
	}
	return n
}

/*------------------------------------------------------------------
 *
 * Function:	Decode
 *
 * Purpose:	Recover a packet from one complete frame.
 *
 * Inputs:	raw	- Frame exactly as received.  Not modified.
 *
 * Returns:	Packet, CSP header included and any tag still attached.
 *
 *		ErrGeometryMismatch	raw cannot be a frame.
 *		ErrUncorrectable	Too many errors for the block code.
 *					ByteCorrections is -1.
 *		ErrMalformedSize	Size field points past the end.
 *
 *------------------------------------------------------------------*/

func (c *Codec) Decode(raw []byte) (Packet, error) {
	var pkt Packet
	var rxLength = len(raw)
	var block []byte

	if c.viterbi {
		rxLength = len(raw)/VITERBI_RATE - VITERBI_TAIL
		if rxLength <= 0 || rxLength > MAX_FEC_LENGTH {
			return pkt, fmt.Errorf("%w: %d byte frame", ErrGeometryMismatch, len(raw))
		}

		var bitCorr uint
		var err error
		block, bitCorr, err = ViterbiDecode(raw, rxLength*BITS_PER_BYTE)
		if err != nil {
			return pkt, err
		}
		pkt.BitCorrections = bitCorr
	} else {
		if rxLength > MAX_FEC_LENGTH {
			return pkt, fmt.Errorf("%w: %d byte frame", ErrGeometryMismatch, len(raw))
		}
		block = make([]byte, rxLength)
		copy(block, raw)
	}

	if c.randomize {
		XorSequence(block, c.sequence, rxLength)
	}

	if c.rs {
		var byteCorr, err = BlockDecode(block[:rxLength])
		pkt.ByteCorrections = byteCorr
		if err != nil {
			return pkt, err
		}
		rxLength -= RS_LENGTH
	}

	if rxLength < SIZE_LENGTH+CSP_OVERHEAD {
		return pkt, fmt.Errorf("%w: %d byte data part", ErrMalformedSize, rxLength)
	}

	var size = int(binary.BigEndian.Uint16(block))
	var end = SIZE_LENGTH + CSP_OVERHEAD + size
	if end > rxLength {
		return pkt, fmt.Errorf("%w: size %d in %d byte data part", ErrMalformedSize, size, rxLength)
	}

	pkt.Data = block[SIZE_LENGTH:end]

	return pkt, nil
}

/*------------------------------------------------------------------
 *
 * Function:	Encode
 *
 * Purpose:	Build a frame around a CSP packet.
 *
 * Inputs:	payload	- CSP header followed by the body (and tag, if any).
 *
 * Returns:	Frame ready for the modulator.  Short geometry when the
 *		body fits SHORT_FRAME_LIMIT, long otherwise.
 *
 *------------------------------------------------------------------*/

func (c *Codec) Encode(payload []byte) ([]byte, error) {
	if len(payload) < CSP_OVERHEAD || len(payload)-CSP_OVERHEAD > LONG_FRAME_LIMIT {
		return nil, fmt.Errorf("%w: %d bytes, must be %d to %d", ErrPayloadSize, len(payload), CSP_OVERHEAD, CSP_OVERHEAD+LONG_FRAME_LIMIT)
	}

	var g = selectGeometry(len(payload))
	var txLength = g.DataBytes

	var buf = make([]byte, txLength, MAX_FEC_LENGTH)
	binary.BigEndian.PutUint16(buf, uint16(len(payload)-CSP_OVERHEAD)) //nolint:gosec // Range checked above.
	copy(buf[SIZE_LENGTH:], payload)

	if c.rs {
		var err error
		buf, err = BlockEncode(buf)
		if err != nil {
			return nil, err
		}
		txLength += RS_LENGTH
	}

	if c.randomize {
		XorSequence(buf, c.sequence, txLength)
	}

	if c.viterbi {
		return ViterbiEncode(buf, txLength*BITS_PER_BYTE), nil
	}

	return buf[:txLength], nil
}

// Deframe decodes raw and, if a key is configured, checks and removes the tag.
func (c *Codec) Deframe(raw []byte) (Packet, error) {
	var pkt, err = c.Decode(raw)
	if err != nil {
		return pkt, err
	}

	if c.auth != nil {
		var data, authErr = c.auth.Verify(pkt.Data)
		if authErr != nil {
			pkt.Data = nil
			return pkt, authErr
		}
		pkt.Data = data
	}

	return pkt, nil
}

// Frame adds a tag, if a key is configured, and encodes the result.
func (c *Codec) Frame(payload []byte) ([]byte, error) {
	if c.auth != nil {
		payload = c.auth.Append(payload)
	}
	return c.Encode(payload)
}
