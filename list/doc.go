// Package list implements the tiered compressed list engine: a single
// handle that transparently promotes an ordered sequence of values between
// three physical representations (Small: one segment; Medium: two segments;
// Full: a doubly-linked list of compressible nodes) as it grows, never
// demoting automatically.
//
// The tier is a Go tagged union (a tier enum plus per-tier fields) rather
// than the pointer-tag dispatch its C heritage uses, per the design note
// that a typed sum type makes the "tag matches body" invariant
// unrepresentable instead of merely asserted.
package list
