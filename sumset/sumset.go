// Package sumset implements the SumSetOracle: a stateful collection of
// positive integers with an attached predicate — "can I append x without
// introducing two equal subset sums?" — and push/pop mutation.
//
// Two backends satisfy the Oracle interface:
//
//	IndexedOracle    materializes every current nonempty subset sum in a
//	                 hashed set, giving O(2^k) hash lookups per admissibility
//	                 check (k = current length) at the cost of O(2^k) memory.
//	ExhaustiveOracle stores only the elements and re-derives admissibility by
//	                 enumerating subsets on each query: O(1) memory (beyond
//	                 the elements themselves) at the cost of exponential time
//	                 per check.
//
// Both backends preserve the same invariant after any sequence of successful
// TryPush/Pop calls: for the oracle's current element sequence E, every two
// distinct subsets of E have distinct sums (the "B-property").
package sumset

import "github.com/katalvlaran/bsetsearch/bigint"

// Oracle is the capability set the search engine depends on. Both backends
// implement it; the engine selects one at construction time and never
// switches backends mid-search (see Kind and Select).
//
// TryPush and Pop form a strict LIFO pairing: for any state S0, if
// TryPush(x) succeeds producing S1, Pop() returns the oracle to a state
// observationally identical to S0.
type Oracle interface {
	// Reset discards all elements, returning the oracle to its initial empty state.
	Reset()

	// TryPush attempts to append x. It is atomic: either the oracle
	// transitions to a new valid state containing x appended, or it returns
	// false with no observable change. The caller must only ever pass
	// strictly-increasing x (each call's x greater than the prior
	// successful push's x); the oracle does not re-verify ordering.
	TryPush(x bigint.Int) bool

	// Pop undoes the most recent successful TryPush. The caller must not
	// call Pop without a matching prior successful TryPush since the last Reset.
	Pop()

	// Len returns the number of elements currently held.
	Len() int

	// Get returns the element at index i (0-based, insertion order).
	Get(i int) bigint.Int

	// Snapshot appends the current elements, in order, to out and returns
	// the extended slice.
	Snapshot(out []bigint.Int) []bigint.Int
}

// Kind selects which Oracle backend to construct.
type Kind int

const (
	// Auto selects Indexed for small N and Exhaustive otherwise; see Select.
	Auto Kind = iota
	// Indexed constructs an IndexedOracle.
	Indexed
	// Exhaustive constructs an ExhaustiveOracle.
	Exhaustive
)

// IndexedMaxN is the smallest N for which Auto (and an explicit Indexed
// request) uses ExhaustiveOracle; IndexedOracle is used only for N below it.
// At or above this, IndexedOracle would need to
// materialize up to 2^N subset sums; IndexedMaxN=25 keeps that under roughly
// 2^24 entries, the threshold past which typical machines run out of
// practical memory for this structure.
const IndexedMaxN = 25

// Select resolves kind against targetN into a concrete backend, applying the
// Auto rule and the explicit-Indexed-downgrade rule from the engine's oracle
// selection policy. It returns the constructed Oracle and whether a
// downgrade from an explicitly-requested Indexed occurred (the caller logs a
// warning when downgraded is true).
func Select(kind Kind, targetN int) (oracle Oracle, downgraded bool) {
	switch kind {
	case Indexed:
		if targetN >= IndexedMaxN {
			return NewExhaustive(targetN), true
		}

		return NewIndexed(targetN), false
	case Exhaustive:
		return NewExhaustive(targetN), false
	default: // Auto
		if targetN < IndexedMaxN {
			return NewIndexed(targetN), false
		}

		return NewExhaustive(targetN), false
	}
}
