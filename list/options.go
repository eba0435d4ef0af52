package list

import (
	"github.com/arloliu/flexlist/compress"
	"github.com/arloliu/flexlist/format"
	"github.com/arloliu/flexlist/internal/options"
)

type config struct {
	codec     compress.Codec
	codecKind format.CompressionKind
	checksum  bool
	capHint   int
}

func defaultConfig() *config {
	return &config{
		codec:     compress.NewZstdCompressor(),
		codecKind: format.CompressionZstd,
		checksum:  true,
	}
}

// Option configures a List at construction time.
type Option = options.Option[*config]

// WithCodec overrides the compression algorithm Full-tier nodes use once
// they transition to COMPRESSED. Defaults to Zstd.
func WithCodec(codec compress.Codec, kind format.CompressionKind) Option {
	return options.NoError(func(c *config) {
		c.codec = codec
		c.codecKind = kind
	})
}

// WithChecksum toggles whether segments carry an integrity checksum that is
// verified on decompression. Defaults to enabled.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *config) { c.checksum = enabled })
}

// WithCapacityHint hints the initial backing-buffer size for the list's
// first segment, avoiding early reallocation for callers who know roughly
// how large the list will grow.
func WithCapacityHint(bytes int) Option {
	return options.NoError(func(c *config) { c.capHint = bytes })
}
