package aausat

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_GenerateSequence(t *testing.T) {
	var seq = GenerateSequence(64)

	assert.Equal(t, "ff480ec09a0d70bc8e2c93ada7b746ce5a977dcc32a2bf3e0a10f18894cdeab1"+
		"fe901d81341ae1791c59275b4f6e8d9cb52efb9865457e7c1421e311299bd563", hex.EncodeToString(seq))
}

func Test_GenerateSequence_Period(t *testing.T) {
	var seq = GenerateSequence(2 * MAX_FEC_LENGTH)

	assert.Equal(t, seq[:MAX_FEC_LENGTH], seq[MAX_FEC_LENGTH:])
}

func Test_XorSequence_SelfInverse(t *testing.T) {
	var seq = GenerateSequence(MAX_FEC_LENGTH)

	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(t, "data")
		var length = rapid.IntRange(0, 300).Draw(t, "length")

		var work = make([]byte, len(data))
		copy(work, data)

		XorSequence(work, seq, length)
		XorSequence(work, seq, length)

		assert.Equal(t, data, work)
	})
}

func Test_XorSequence_Length(t *testing.T) {
	var seq = GenerateSequence(MAX_FEC_LENGTH)

	var data = make([]byte, 8)
	XorSequence(data, seq, 4)

	assert.Equal(t, []byte{0xff, 0x48, 0x0e, 0xc0, 0, 0, 0, 0}, data)
}

func Test_XorSequence_Repeats(t *testing.T) {
	var data = make([]byte, 5)
	XorSequence(data, []byte{0x01, 0x02}, 99)

	assert.Equal(t, []byte{0x01, 0x02, 0x01, 0x02, 0x01}, data)
}

func Test_XorSequence_TestVectorBlock(t *testing.T) {
	var block, err = hex.DecodeString(testVectorRandomized)
	require.NoError(t, err)

	XorSequence(block, GenerateSequence(MAX_FEC_LENGTH), len(block))

	assert.Equal(t, "000300014e90003ed6", hex.EncodeToString(block[:9]))
	assert.Equal(t, make([]byte, ShortGeometry.DataBytes-9), block[9:ShortGeometry.DataBytes])
	assert.Equal(t, testVectorParity, hex.EncodeToString(block[ShortGeometry.DataBytes:]))
}
