package aausat

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TryDecode_TestVector(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())

	var res, err = codec.TryDecode(TestVector())

	require.NoError(t, err)
	assert.Equal(t, ShortGeometry, res.Geometry)
	assert.Equal(t, testVectorPacket, hex.EncodeToString(res.Data))

	// Long was tried first and the window was too short for it.
	require.Len(t, res.Attempts, 2)
	assert.Equal(t, LongGeometry, res.Attempts[0].Geometry)
	assert.True(t, errors.Is(res.Attempts[0].Err, ErrGeometryMismatch))
	assert.NoError(t, res.Attempts[1].Err)
}

func Test_TryDecode_ShortInLongWindow(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())

	// Whatever follows the frame is part of the window too.
	var window = append(TestVector(), make([]byte, LongGeometry.FECBytes-ShortGeometry.FECBytes)...)

	var res, err = codec.TryDecode(window)

	require.NoError(t, err)
	assert.Equal(t, ShortGeometry, res.Geometry)
	assert.Equal(t, testVectorPacket, hex.EncodeToString(res.Data))
	require.Len(t, res.Attempts, 2)
	assert.True(t, errors.Is(res.Attempts[0].Err, ErrUncorrectable))
	assert.Equal(t, -1, res.Attempts[0].ByteCorrections)
}

func Test_TryDecode_Long(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())
	var payload = make([]byte, 50)
	for i := range payload {
		payload[i] = byte(i)
	}

	var frame, err = codec.Encode(payload)
	require.NoError(t, err)

	var res, decErr = codec.TryDecode(append(frame, 0x55, 0x55, 0x55))

	require.NoError(t, decErr)
	assert.Equal(t, LongGeometry, res.Geometry)
	assert.Equal(t, payload, res.Data)
	assert.Len(t, res.Attempts, 1)
}

func Test_TryDecode_Noise(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())

	var res, err = codec.TryDecode(make([]byte, LongGeometry.FECBytes))

	var failure *DecodeFailure
	require.True(t, errors.As(err, &failure))
	assert.Len(t, failure.Attempts, 2)
	assert.True(t, errors.Is(err, ErrUncorrectable))
	assert.Nil(t, res.Data)
	assert.Contains(t, err.Error(), "long")
	assert.Contains(t, err.Error(), "short")
}

func Test_TryDecode_EmptyWindow(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())

	var _, err = codec.TryDecode(nil)

	assert.True(t, errors.Is(err, ErrGeometryMismatch))
}

func Test_TryDeframe_BadTagStopsSearch(t *testing.T) {
	var codec = NewCodec(CodecConfig{Key: "secret", Viterbi: true, ReedSolomon: true, Randomizer: true})

	var res, err = codec.TryDeframe(TestVector())

	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.Nil(t, res.Data)
	require.Len(t, res.Attempts, 2)
	assert.True(t, errors.Is(res.Attempts[1].Err, ErrAuthentication))
}

func Test_TryDeframe_GoodTag(t *testing.T) {
	var codec = NewCodec(CodecConfig{Key: "secret", Viterbi: true, ReedSolomon: true, Randomizer: true})
	var payload = []byte{0x00, 0x01, 0x4e, 0x90, 0x00}

	var frame, err = codec.Frame(payload)
	require.NoError(t, err)

	var res, decErr = codec.TryDeframe(frame)
	require.NoError(t, decErr)
	assert.Equal(t, payload, res.Data)

	// TryDecode leaves the tag on.
	res, decErr = codec.TryDecode(frame)
	require.NoError(t, decErr)
	assert.Equal(t, "00014e9000f201", hex.EncodeToString(res.Data))
}

func Test_DecodeWindows(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())

	var long, err = codec.Encode(make([]byte, 60))
	require.NoError(t, err)

	var windows = [][]byte{
		TestVector(),
		make([]byte, 200),
		long,
		TestVector(),
	}

	var results, decErr = codec.DecodeWindows(context.Background(), windows, 2, true)

	require.NoError(t, decErr)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, ShortGeometry, results[0].Geometry)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, LongGeometry, results[2].Geometry)
	assert.Equal(t, make([]byte, 60), results[2].Data)
	assert.Equal(t, results[0].Data, results[3].Data)
}

func Test_DecodeWindows_Cancelled(t *testing.T) {
	var codec = NewCodec(DefaultCodecConfig())
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()

	var results, err = codec.DecodeWindows(ctx, [][]byte{TestVector(), TestVector()}, 1, false)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, results, 2)
}
