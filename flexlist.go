// Package flexlist provides a tiered, compression-aware ordered list: small
// lists stay a single packed byte buffer, medium ones split into two, and
// large ones become a doubly-linked chain of nodes that compress themselves
// once they fall outside a configurable "hot window" near each end.
//
// # Basic Usage
//
//	import "github.com/arloliu/flexlist"
//
//	l := flexlist.New(6, 2) // fill tier 6 (2048-byte ceiling), 2-node hot window
//	defer l.Free()
//
//	l.PushTail(flexlist.Int(1))
//	l.PushTail(flexlist.Int(2))
//	l.PushHead(flexlist.Int(0))
//
//	it := l.IterForward()
//	for {
//	    ok, err := it.Next()
//	    if err != nil || !ok {
//	        break
//	    }
//	    v, _ := it.Value()
//	    fmt.Println(v.Int())
//	}
//
// # Package Structure
//
// This package is a thin convenience wrapper around the list package.
// Advanced configuration (compression codec, checksum verification) goes
// through list.Option values passed straight through New.
package flexlist

import (
	"github.com/arloliu/flexlist/compress"
	"github.com/arloliu/flexlist/format"
	"github.com/arloliu/flexlist/list"
	"github.com/arloliu/flexlist/segment"
)

// Option configures a List at construction time. See list.Option.
type Option = list.Option

// List is the tiered ordered list. See list.List.
type List = list.List

// Value is an entry's tagged value (int, uint, float64, or bytes). See
// segment.Value.
type Value = segment.Value

// Re-exported constructors for Value, so callers only need this package
// for everyday use.
var (
	Int   = segment.Int
	Uint  = segment.Uint
	Float = segment.Float
	Bytes = segment.Bytes
)

// New creates an empty List configured with fillIdx (an index into the
// twelve-entry fill-tier ceiling table; 0 disables the ceiling entirely)
// and depth (how many nodes at each end of the Full tier stay
// uncompressed). It panics if fillIdx or depth is out of range.
func New(fillIdx int, depth int, opts ...Option) *List {
	return list.New(fillIdx, depth, opts...)
}

// WithCodec overrides the compression algorithm Full-tier nodes use once
// they transition to COMPRESSED. See list.WithCodec.
func WithCodec(codec compress.Codec, kind format.CompressionKind) Option {
	return list.WithCodec(codec, kind)
}

// WithChecksum toggles whether Full-tier nodes carry an integrity checksum
// verified on decompression. See list.WithChecksum.
func WithChecksum(enabled bool) Option {
	return list.WithChecksum(enabled)
}

// WithCapacityHint hints the initial backing-buffer size for the list's
// first segment. See list.WithCapacityHint.
func WithCapacityHint(bytes int) Option {
	return list.WithCapacityHint(bytes)
}
