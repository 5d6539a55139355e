package aausat

// SPDX-FileCopyrightText: 2004 Phil Karn, KA9Q
// SPDX-FileCopyrightText: The Samoyed Authors

/*--------------------------------------------------------------------------------
 *
 * Purpose:	K=7 r=1/2 convolutional encoder and hard decision Viterbi decoder.
 *
 * Description:	Same code as Phil Karn's viterbi27: generator polynomials 0x4f and
 *		0x6d applied to a shift register with the newest bit at the bottom.
 *		The second symbol of each pair is inverted, as in CCSDS.
 *
 *		Symbols are packed 8 per byte, MSB first, on both sides.
 *
 *		The encoder appends VITERBI_TAIL bytes of zero bits so the decoder
 *		can start its chainback from state 0.  Only the first K-1 of
 *		those bits are needed by the decoder.
 *
 *--------------------------------------------------------------------------------*/

import (
	"fmt"
	"math/bits"
	"sync"
)

const V27POLYA = 0x4f
const V27POLYB = 0x6d

const V27_STATES = 1 << (VITERBI_CONSTRAINT - 1)

// Path metric for states we cannot be in at the start.
// Large enough to never win, small enough to never overflow.
const V27_UNREACHABLE = 1 << 16

// Longest trellis we will ever run: a full 255 byte block plus flush bits.
const V27_MAX_STEPS = MAX_FEC_LENGTH*BITS_PER_BYTE + VITERBI_CONSTRAINT - 1

// Channel symbol pair, first symbol in bit 1, for each 7 bit register value.
var v27Branch [1 << VITERBI_CONSTRAINT]uint8

func init() {
	for reg := range v27Branch {
		var a = uint8(bits.OnesCount8(uint8(reg)&V27POLYA) & 1)
		var b = uint8(bits.OnesCount8(uint8(reg)&V27POLYB)&1) ^ 1
		v27Branch[reg] = a<<1 | b
	}
}

// One decision word per trellis step, bit n set when state n was
// reached from the predecessor with the high bit set.
var v27HistoryPool = sync.Pool{
	New: func() any {
		var h = make([]uint64, V27_MAX_STEPS)
		return &h
	},
}

func getBit(p []byte, i int) uint8 {
	return (p[i/8] >> (7 - i%8)) & 1
}

func putBit(p []byte, i int, b uint8) {
	if b != 0 {
		p[i/8] |= 0x80 >> (i % 8)
	}
}

/*--------------------------------------------------------------------------------
 *
 * Function:	ViterbiEncode
 *
 * Purpose:	Convolutionally encode the first nbits of data.
 *
 * Returns:	(nbits + 8*VITERBI_TAIL) * VITERBI_RATE symbols, packed.
 *		For a whole number of bytes n that is (n + VITERBI_TAIL) * VITERBI_RATE bytes.
 *
 *--------------------------------------------------------------------------------*/

func ViterbiEncode(data []byte, nbits int) []byte {
	nbits = min(nbits, len(data)*BITS_PER_BYTE)

	var total = nbits + VITERBI_TAIL*BITS_PER_BYTE
	var out = make([]byte, (total*VITERBI_RATE+7)/8)

	var reg uint8
	for i := 0; i < total; i++ {
		var b uint8
		if i < nbits {
			b = getBit(data, i)
		}
		reg = (reg<<1 | b) & (1<<VITERBI_CONSTRAINT - 1)

		var sym = v27Branch[reg]
		putBit(out, 2*i, sym>>1)
		putBit(out, 2*i+1, sym&1)
	}

	return out
}

/*--------------------------------------------------------------------------------
 *
 * Function:	ViterbiDecode
 *
 * Purpose:	Recover nbits of data from hard decision channel symbols.
 *
 * Inputs:	symbols	- Received symbols, packed.  Must hold at least
 *			  (nbits + K-1) pairs.
 *		nbits	- Number of data bits wanted, not counting the tail.
 *
 * Returns:	Decoded bytes, ceil(nbits/8) of them.
 *
 *		Number of received symbols that differ from the re-encoded
 *		best path.  This is a quality figure, not a failure.
 *
 *		ErrGeometryMismatch if there are not enough symbols.
 *
 * Description:	Start in state 0, run add-compare-select over every pair,
 *		then chain back from state 0 where the tail left the encoder.
 *
 *--------------------------------------------------------------------------------*/

func ViterbiDecode(symbols []byte, nbits int) ([]byte, uint, error) {
	var npairs = nbits + VITERBI_CONSTRAINT - 1

	if nbits < 0 || npairs*VITERBI_RATE > len(symbols)*BITS_PER_BYTE {
		return nil, 0, fmt.Errorf("%w: %d symbol bytes cannot hold %d data bits", ErrGeometryMismatch, len(symbols), nbits)
	}

	var history []uint64
	if npairs <= V27_MAX_STEPS {
		var hp = v27HistoryPool.Get().(*[]uint64)
		defer v27HistoryPool.Put(hp)
		history = (*hp)[:npairs]
	} else {
		history = make([]uint64, npairs)
	}

	var metrics, next [V27_STATES]uint32
	for s := 1; s < V27_STATES; s++ {
		metrics[s] = V27_UNREACHABLE
	}

	for p := 0; p < npairs; p++ {
		var rx = getBit(symbols, 2*p)<<1 | getBit(symbols, 2*p+1)
		var decisions uint64

		for ns := 0; ns < V27_STATES; ns++ {
			// The two ways into state ns differ only in the oldest bit,
			// which is about to fall off the end of the register.
			var m0 = metrics[ns>>1] + uint32(bits.OnesCount8(v27Branch[ns]^rx))
			var m1 = metrics[ns>>1|V27_STATES/2] + uint32(bits.OnesCount8(v27Branch[ns|V27_STATES]^rx))

			if m1 < m0 {
				next[ns] = m1
				decisions |= 1 << ns
			} else {
				next[ns] = m0
			}
		}

		history[p] = decisions
		metrics = next
	}

	// Chainback.  The bit shifted in at step p is the low bit of the state.

	var out = make([]byte, (nbits+7)/8)
	var state = 0

	for p := npairs - 1; p >= 0; p-- {
		if p < nbits {
			putBit(out, p, uint8(state&1))
		}
		var high = int(history[p]>>state) & 1
		state = state>>1 | high<<(VITERBI_CONSTRAINT-2)
	}

	return out, uint(metrics[0]), nil
}
