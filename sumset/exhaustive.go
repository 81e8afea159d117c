package sumset

import "github.com/katalvlaran/bsetsearch/bigint"

// MaxExhaustiveN is a resource guard, not an algorithmic width limit: unlike a
// bitmask-counter implementation (which would be capped by the native machine
// word, the "OversizedExhaustive" condition spec.md §4.2/§7 describes),
// ExhaustiveOracle's admissibility check (see ternarySearch below) recurses
// over elements directly and has no hard width ceiling of its own. The guard
// exists purely so a pathological request cannot recurse to an unbounded
// depth; it is not expected to trigger in any realistic search.
const MaxExhaustiveN = 4096

// ExhaustiveOracle stores only the appended elements; every admissibility
// check re-derives the answer by enumerating subsets, trading time for the
// O(2^k) memory IndexedOracle would otherwise need. Pop is O(1).
type ExhaustiveOracle struct {
	elements  []bigint.Int
	oversized bool
}

// NewExhaustive returns an empty ExhaustiveOracle sized for a search
// targeting n elements.
func NewExhaustive(n int) *ExhaustiveOracle {
	if n < 1 {
		n = 1
	}

	return &ExhaustiveOracle{elements: make([]bigint.Int, 0, n)}
}

// Reset discards all elements, returning to the empty state.
func (o *ExhaustiveOracle) Reset() {
	o.elements = o.elements[:0]
	o.oversized = false
}

// Oversized reports whether the most recent TryPush returned false because
// MaxExhaustiveN was exceeded, rather than because of a genuine subset-sum
// collision. The engine logs such a rejection at ERROR level (the
// OversizedExhaustive error kind, spec.md §7) and otherwise treats the
// candidate as colliding.
func (o *ExhaustiveOracle) Oversized() bool { return o.oversized }

// TryPush implements the admissibility decision from spec §4.2, checking both
// collision classes (a) x equals some nonempty subset sum of the current
// elements, and (b) x plus some subset sum A equals some other disjoint,
// nonempty subset sum B. Checking (b) for all (A, B) with A possibly empty
// subsumes (a); both are always checked here.
func (o *ExhaustiveOracle) TryPush(x bigint.Int) bool {
	o.oversized = false
	if len(o.elements)+1 > MaxExhaustiveN {
		o.oversized = true

		return false
	}
	if !admissible(o.elements, x) {
		return false
	}
	o.elements = append(o.elements, x)

	return true
}

// Pop removes the most recently appended element.
func (o *ExhaustiveOracle) Pop() {
	o.elements = o.elements[:len(o.elements)-1]
}

// Len returns the number of elements currently held.
func (o *ExhaustiveOracle) Len() int { return len(o.elements) }

// Get returns the element at index i.
func (o *ExhaustiveOracle) Get(i int) bigint.Int { return o.elements[i] }

// Snapshot appends the current elements to out and returns the extended slice.
func (o *ExhaustiveOracle) Snapshot(out []bigint.Int) []bigint.Int {
	return append(out, o.elements...)
}

// admissible reports whether appending x to elements preserves the
// B-property: no disjoint (A, B) with B nonempty has x+sum(A) == sum(B).
func admissible(elements []bigint.Int, x bigint.Int) bool {
	if len(elements) == 0 {
		return true
	}

	var zero bigint.Int

	return ternarySearch(elements, x, 0, zero, zero, false)
}

// ternarySearch assigns each remaining element (elements[depth:]) to A, B, or
// neither, tracking running sums sumA/sumB. At depth == len(elements) it
// checks the closing condition for any assignment where B gained at least
// one member. Returns false as soon as any assignment witnesses a collision;
// true if none does.
//
// This explores 3^k leaves rather than the 4^k (A, B) mask-pairs a literal
// bitmask enumeration would visit, since "neither" is folded into the
// recursion instead of being a separate outer loop — fewer states, same
// two collision classes checked.
func ternarySearch(elements []bigint.Int, x bigint.Int, depth int, sumA, sumB bigint.Int, bNonEmpty bool) bool {
	if depth == len(elements) {
		if !bNonEmpty {
			return true
		}

		return bigint.Cmp(bigint.Add(x, sumA), sumB) != 0
	}

	e := elements[depth]

	if !ternarySearch(elements, x, depth+1, sumA, sumB, bNonEmpty) {
		return false
	}
	if !ternarySearch(elements, x, depth+1, bigint.Add(sumA, e), sumB, bNonEmpty) {
		return false
	}
	if !ternarySearch(elements, x, depth+1, sumA, bigint.Add(sumB, e), true) {
		return false
	}

	return true
}
