package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/flexlist/compress"
	"github.com/arloliu/flexlist/format"
)

func TestCodecsRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated, repeated, repeated")

	kinds := []format.CompressionKind{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, kind := range kinds {
		codec, err := compress.CreateCodec(kind, "test")
		require.NoError(t, err, kind.String())

		compressed, err := codec.Compress(data)
		require.NoError(t, err, kind.String())

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err, kind.String())
		require.Equal(t, data, decompressed, kind.String())
	}
}

func TestCreateCodecInvalidKind(t *testing.T) {
	_, err := compress.CreateCodec(format.CompressionKind(0xFF), "test")
	require.Error(t, err)
}

func TestGetCodecKnownAndUnknownKind(t *testing.T) {
	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = compress.GetCodec(format.CompressionKind(0xFF))
	require.Error(t, err)
}

func TestEmptyInputRoundTrips(t *testing.T) {
	for _, kind := range []format.CompressionKind{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := compress.CreateCodec(kind, "test")
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}
