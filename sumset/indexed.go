package sumset

import "github.com/katalvlaran/bsetsearch/bigint"

// IndexedOracle maintains every current nonempty subset sum in a hashed set,
// so TryPush's admissibility check costs one big.Int addition and hash lookup
// per stored sum, O(2^k) (k = current element count), instead of the O(3^k)
// enumeration ExhaustiveOracle performs. The tradeoff is O(2^k) memory for
// the sums set itself, which is why
// the engine only selects this backend below Select's IndexedMaxN.
type IndexedOracle struct {
	elements []bigint.Int
	sums     *hashSet
	frames   undoStack
	scratch  []bigint.Int // reused snapshot buffer, never shrunk
}

// NewIndexed returns an empty IndexedOracle sized for a search targeting n
// elements (used only to pre-size backing storage; n is not otherwise enforced).
func NewIndexed(n int) *IndexedOracle {
	if n < 1 {
		n = 1
	}

	return &IndexedOracle{
		elements: make([]bigint.Int, 0, n),
		sums:     newHashSet(1 << 6),
	}
}

// Reset discards all elements and subset sums, returning to the empty state.
func (o *IndexedOracle) Reset() {
	o.elements = o.elements[:0]
	o.sums.Clear()
	o.frames.clear()
}

// TryPush implements the admissibility decision from spec §4.1:
//
//  1. If x is already a recorded subset sum, fail.
//  2. Snapshot the current sums (bounds the working set to the size of sums
//     at entry — exactly 2^k-1 — and ensures the test never observes its own
//     partial insertions).
//  3. For every s in the snapshot, if x+s is already a recorded sum, fail.
//  4. Otherwise insert x and every x+s, record each insertion in a fresh undo
//     frame, append x to elements, and return true.
func (o *IndexedOracle) TryPush(x bigint.Int) bool {
	if o.sums.Contains(x) {
		return false
	}

	o.scratch = o.scratch[:0]
	o.scratch = o.sums.appendValues(o.scratch)

	for _, s := range o.scratch {
		if o.sums.Contains(bigint.Add(x, s)) {
			return false
		}
	}

	frame := o.frames.push()
	o.sums.Insert(x)
	frame.record(x)
	for _, s := range o.scratch {
		t := bigint.Add(x, s)
		o.sums.Insert(t)
		frame.record(t)
	}
	o.elements = append(o.elements, x)

	return true
}

// Pop undoes the most recent successful TryPush.
func (o *IndexedOracle) Pop() {
	frame := o.frames.pop()
	for _, v := range frame.values {
		o.sums.Remove(v)
	}
	o.elements = o.elements[:len(o.elements)-1]
}

// Len returns the number of elements currently held.
func (o *IndexedOracle) Len() int { return len(o.elements) }

// Get returns the element at index i.
func (o *IndexedOracle) Get(i int) bigint.Int { return o.elements[i] }

// Snapshot appends the current elements to out and returns the extended slice.
func (o *IndexedOracle) Snapshot(out []bigint.Int) []bigint.Int {
	return append(out, o.elements...)
}

// SumCount exposes the current size of the internal subset-sum set, used by
// tests that cross-check the invariant "size of sums == 2^k - 1".
func (o *IndexedOracle) SumCount() int { return o.sums.Len() }
