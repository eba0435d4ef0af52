// Package format defines the small enumeration shared between the list and
// compress packages: which compression algorithm a Full-tier node's segment
// buffer is currently stored under.
package format

// CompressionKind identifies which (if any) compression algorithm a
// Full-tier node's segment buffer is currently encoded with.
type CompressionKind uint8

const (
	CompressionNone CompressionKind = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionKind = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionKind = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionKind = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionKind) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
