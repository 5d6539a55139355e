package aausat

/*--------------------------------------------------------------------------------
 *
 * Purpose:	CCSDS pseudo-randomizer as used by the AAUSAT4 downlink.
 *
 * Description:	The sequence comes from an LFSR with h(x) = x^8 + x^7 + x^5 + x^3 + 1,
 *		seeded with all ones, taken MSB first.  It starts
 *
 *			ff 48 0e c0 9a 0d 70 bc 8e 2c 93 ad ...
 *
 *		and repeats every 255 bytes.  The same sequence is applied after
 *		RS encoding on transmit and before RS decoding on receive.
 *
 *--------------------------------------------------------------------------------*/

const INIT_CCSDS_LFSR = 0xff

// Next output bit.  The state is 8 bits; the feedback goes in at the top.

func ccsds_lfsr_bit(state *uint8) byte {
	var x = *state
	var out = x & 1
	var fb = (x ^ (x >> 3) ^ (x >> 5) ^ (x >> 7)) & 1
	*state = (x >> 1) | (fb << 7)
	return out
}

/*--------------------------------------------------------------------------------
 *
 * Function:	GenerateSequence
 *
 * Purpose:	Produce n bytes of the randomizer sequence.
 *
 *--------------------------------------------------------------------------------*/

func GenerateSequence(n int) []byte {
	var seq = make([]byte, n)
	var state uint8 = INIT_CCSDS_LFSR

	for i := range seq {
		for m := byte(0x80); m != 0; m >>= 1 {
			if ccsds_lfsr_bit(&state) != 0 {
				seq[i] |= m
			}
		}
	}

	return seq
}

/*--------------------------------------------------------------------------------
 *
 * Function:	XorSequence
 *
 * Purpose:	Randomize or derandomize the first length bytes of data, in place.
 *
 * Inputs:	data	- Block to be modified.
 *		seq	- Randomizer sequence.  Repeated if shorter than length.
 *		length	- Number of bytes.  Clipped to len(data).
 *
 * Description:	XOR is its own inverse so there is no separate derandomize.
 *
 *--------------------------------------------------------------------------------*/

func XorSequence(data []byte, seq []byte, length int) {
	if len(seq) == 0 {
		return
	}

	length = min(length, len(data))

	for i := 0; i < length; i++ {
		data[i] ^= seq[i%len(seq)]
	}
}
