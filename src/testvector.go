package aausat

import (
	"encoding/hex"
	"math/rand/v2"
	"strings"
)

// A short frame received from AAUSAT4, as published with the decoder.
// It holds a 3 byte CSP packet: 00 01 4e 90 00, tag 3e d6.
const AAUSAT4_TEST_VECTOR = "8c1a48c0043fab4d3e790e2274af0a479c013770a2f889df13fefd825417b794" +
	"470f240399b8562a8316f576861d7e72cf74bb29fcc0b6d6a5ce3659e8ee4d41" +
	"2bf95b7040459400ff3528f7f792c5f70c95eaf2574767eab615e26df977fc5e" +
	"e837eda2eca7c601f4d568c9eca9d6f8ef015f67b98a79b2d8092fd60d2cee25"

func TestVector() []byte {
	var b, _ = hex.DecodeString(AAUSAT4_TEST_VECTOR)
	return b
}

// ParseHex accepts hex with optional whitespace and colons, as people paste it.
func ParseHex(s string) ([]byte, error) {
	var cleaned = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '\r', '\n':
			return -1
		}
		return r
	}, s)
	return hex.DecodeString(cleaned)
}

// InjectBitErrors flips n distinct bits of frame, chosen by rng.
// Used to exercise the decoder without a real channel.
func InjectBitErrors(frame []byte, n int, rng *rand.Rand) {
	var nbits = len(frame) * BITS_PER_BYTE
	n = min(n, nbits)

	for _, i := range rng.Perm(nbits)[:n] {
		frame[i/8] ^= 0x80 >> (i % 8)
	}
}

// InjectByteErrors corrupts n distinct bytes of block with nonzero values.
func InjectByteErrors(block []byte, n int, rng *rand.Rand) {
	n = min(n, len(block))

	for _, i := range rng.Perm(len(block))[:n] {
		block[i] ^= byte(1 + rng.IntN(255))
	}
}
