package aausat

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Intermediate forms of the test vector.

// After RS encoding and randomizing, before the convolutional code.
const testVectorRandomized = "ff4b0ec1d49d7082582c93ada7b746ce5a977dcc32a2bf3e0a10f18894cdea6b" +
	"802c2a96903827e5bab75fcc5405d68de5142185eed42329e246e6e309ef25"

// RS parity of the data part, before randomizing.
const testVectorParity = "da7ebc3717a422c69ca6ee78971b6b5b11503ada1d8b915d55f66705f22074f0"

// The CSP packet it carries, tag included.
const testVectorPacket = "00014e90003ed6"

func Test_TestVector(t *testing.T) {
	var v = TestVector()

	assert.Len(t, v, ShortGeometry.FECBytes)

	// Each call is a fresh copy.
	v[0] ^= 0xff
	assert.NotEqual(t, v, TestVector())
}

func Test_ParseHex(t *testing.T) {
	var b, err = ParseHex(" 00 01:4e\t90 ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x4e, 0x90}, b)

	_, err = ParseHex("0g")
	assert.Error(t, err)

	_, err = ParseHex("abc")
	assert.Error(t, err)
}

func Test_InjectBitErrors(t *testing.T) {
	var rng = rand.New(rand.NewPCG(1, 2))

	for _, n := range []int{0, 1, 7, 100} {
		var frame = make([]byte, 32)
		InjectBitErrors(frame, n, rng)

		var flipped = 0
		for _, b := range frame {
			for ; b != 0; b &= b - 1 {
				flipped++
			}
		}
		assert.Equal(t, n, flipped)
	}

	var small = make([]byte, 1)
	InjectBitErrors(small, 20, rng)
	assert.Equal(t, []byte{0xff}, small)
}

func Test_InjectByteErrors(t *testing.T) {
	var rng = rand.New(rand.NewPCG(3, 4))

	var block = make([]byte, 64)
	InjectByteErrors(block, 10, rng)

	var changed = 0
	for _, b := range block {
		if b != 0 {
			changed++
		}
	}
	assert.Equal(t, 10, changed)
}
