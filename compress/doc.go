// Package compress provides the pluggable compression codecs a Full-tier
// node uses when its segment buffer transitions from UNCOMPRESSED to
// COMPRESSED: None, Zstd (default, best ratio), S2 (balanced), and LZ4
// (fastest decompression). All four implement Codec so the list package can
// select one per list via a functional option.
package compress
