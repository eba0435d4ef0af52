// Package errs holds the sentinel errors returned by this module's packages.
//
// Call sites wrap these with extra context via fmt.Errorf("%w: ...", errs.ErrXxx, ...);
// callers should compare with errors.Is against the sentinel, not the wrapped message.
package errs

import "errors"

var (
	// ErrOutOfRange is returned when a requested index is outside [0, count) or
	// its negative-indexing equivalent.
	ErrOutOfRange = errors.New("flexlist: index out of range")

	// ErrEmptyList is returned by operations that require at least one entry.
	ErrEmptyList = errors.New("flexlist: list is empty")

	// ErrInvalidFillTier is returned when a fill-tier index is outside [0, 11].
	ErrInvalidFillTier = errors.New("flexlist: invalid fill tier index")

	// ErrInvalidDepth is returned when a compression depth does not fit in 8 bits.
	ErrInvalidDepth = errors.New("flexlist: invalid compression depth")

	// ErrEntryTooLarge is returned when a value's encoded form cannot fit any
	// segment under the configured fill tier (the value alone exceeds the
	// tier ceiling, so no split could ever admit it).
	ErrEntryTooLarge = errors.New("flexlist: entry exceeds fill tier capacity")

	// ErrStaleCursor is returned when an Entry or Iter references a segment or
	// node that is no longer part of the list it was obtained from.
	ErrStaleCursor = errors.New("flexlist: cursor no longer valid")

	// ErrIteratorInvalidated is returned by Iter.Next/Iter.DeleteEntry when the
	// iterator was invalidated by an unsupported mutation (anything other
	// than the single-step DeleteEntry protocol).
	ErrIteratorInvalidated = errors.New("flexlist: iterator invalidated by mutation")

	// ErrCorruptSegment is the panic value the list package uses when a
	// Full-tier node's integrity checksum does not match after a decompress
	// round trip, or when Dup cannot decompress a node. Segment header
	// invariants (byte length / count / tail offset) are not checked.
	ErrCorruptSegment = errors.New("flexlist: segment data is corrupt")

	// ErrDecodeUnderflow is returned when the XOR-delta stream ends before
	// the expected number of values has been produced.
	ErrDecodeUnderflow = errors.New("flexlist/xof: stream ended before expected value count")
)
