// Package capacity implements the fill-tier ceiling table and the pure,
// allocation-free insertion/merge acceptance predicates that the list
// package's promotion logic is built on.
package capacity

// Ceilings holds the byte ceiling for each of the twelve fill tiers. Tier 0
// disables the ceiling: every insertion and merge is accepted regardless of
// size.
var Ceilings = [12]int{0, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536}

// NumTiers is the number of entries in Ceilings.
const NumTiers = len(Ceilings)

// Ceiling returns the byte ceiling for fill tier idx. It panics if idx is
// outside [0, NumTiers).
func Ceiling(idx int) int {
	if idx < 0 || idx >= NumTiers {
		panic("capacity: invalid fill tier index")
	}

	return Ceilings[idx]
}

// entryOverhead is the per-entry bookkeeping cost an insertion adds: 2 bytes
// (1 for the prev-length field, 1 for the tag) for payloads of up to 24
// bytes, and 4 bytes for anything larger.
func entryOverhead(requestingBytes int) int {
	if requestingBytes <= 24 {
		return 2
	}

	return 4
}

// MayInsert reports whether a segment currently occupying currentBytes may
// absorb a new entry costing requestingBytes under fill tier fillIdx.
// currentBytes must be the segment's body size (Segment.BodyLength), not its
// total encoded size, so a genuinely empty segment passes 0. An empty
// segment always accepts, since a single entry can never be rejected by its
// own segment (a promotion would not help).
func MayInsert(fillIdx int, currentBytes int, requestingBytes int) bool {
	ceiling := Ceiling(fillIdx)
	if ceiling == 0 {
		return true
	}

	if currentBytes == 0 {
		return true
	}

	// Counted twice: the new entry needs a prev-length field, and so does
	// the entry that follows it (its prev-length now refers to the newly
	// inserted entry instead of whatever preceded it).
	estimate := currentBytes + requestingBytes + 2*entryOverhead(requestingBytes)

	return estimate <= ceiling
}

// MayMerge reports whether two segments together occupying sumBytes may be
// merged into one under fill tier fillIdx.
func MayMerge(fillIdx int, sumBytes int) bool {
	ceiling := Ceiling(fillIdx)
	if ceiling == 0 {
		return true
	}

	return sumBytes-3 <= ceiling
}
