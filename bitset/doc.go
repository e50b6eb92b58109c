// Package bitset provides growable bit sets keyed by uint32 positions.
//
// Two variants share the BitSet interface:
//   - Flat: uncompressed words, O(1) access, memory proportional to the highest key
//   - Roaring: compressed containers, suited to sparse key populations
//
// Used by the allocator to track alive and flagged keys, and by storages as
// presence masks.
package bitset
