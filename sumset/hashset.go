package sumset

import "github.com/katalvlaran/bsetsearch/bigint"

// node is a single hash-bucket entry, allocated from a free-list instead of
// directly from the runtime allocator. The inner loop of TryPush performs
// millions of insert/remove pairs; reusing nodes keeps push/pop roughly
// symmetric in cost and removes allocator pressure from the hot path.
type node struct {
	key  bigint.Int
	hash uint64
	next *node
}

// hashSet is a separate-chaining hash set of bigint.Int, specialized for the
// IndexedOracle's "sums" collection: all nodes are pooled, Clear is O(1) per
// live node (a single sweep that returns every node to the free-list), and
// growth preserves the pool discipline by moving nodes between buckets rather
// than reallocating them.
type hashSet struct {
	buckets  []*node
	size     int
	freeList *node
}

const loadFactorThreshold = 0.75

// newHashSet returns an empty set with buckets pre-sized for capacityHint
// entries and a small pre-allocated slab of free nodes.
func newHashSet(capacityHint int) *hashSet {
	nb := 16
	for nb < capacityHint {
		nb <<= 1
	}

	s := &hashSet{buckets: make([]*node, nb)}
	s.growFreeList(256)

	return s
}

// growFreeList allocates n nodes in one slab and threads them onto freeList.
func (s *hashSet) growFreeList(n int) {
	slab := make([]node, n)
	for i := range slab {
		slab[i].next = s.freeList
		s.freeList = &slab[i]
	}
}

// alloc returns a node from the free-list, growing it first if empty.
func (s *hashSet) alloc() *node {
	if s.freeList == nil {
		s.growFreeList(len(s.buckets))
	}
	n := s.freeList
	s.freeList = n.next
	n.next = nil

	return n
}

// release returns n to the free-list for reuse.
func (s *hashSet) release(n *node) {
	n.next = s.freeList
	s.freeList = n
}

// Len reports the number of elements currently in the set.
func (s *hashSet) Len() int { return s.size }

// Contains reports whether key is present.
func (s *hashSet) Contains(key bigint.Int) bool {
	h := key.Hash()
	idx := h & uint64(len(s.buckets)-1)
	for n := s.buckets[idx]; n != nil; n = n.next {
		if n.hash == h && bigint.Cmp(n.key, key) == 0 {
			return true
		}
	}

	return false
}

// Insert adds key to the set. The caller is responsible for having already
// verified key is absent (the IndexedOracle's admissibility test always
// checks Contains before Insert); Insert itself does not re-check, to keep
// the hot path to a single bucket walk.
func (s *hashSet) Insert(key bigint.Int) {
	if float64(s.size+1) > loadFactorThreshold*float64(len(s.buckets)) {
		s.rehash(len(s.buckets) * 2)
	}

	h := key.Hash()
	idx := h & uint64(len(s.buckets)-1)
	n := s.alloc()
	n.key = key
	n.hash = h
	n.next = s.buckets[idx]
	s.buckets[idx] = n
	s.size++
}

// Remove deletes key from the set, returning its node to the free-list.
// Reports whether key was present.
func (s *hashSet) Remove(key bigint.Int) bool {
	h := key.Hash()
	idx := h & uint64(len(s.buckets)-1)

	var prev *node
	for n := s.buckets[idx]; n != nil; n = n.next {
		if n.hash == h && bigint.Cmp(n.key, key) == 0 {
			if prev == nil {
				s.buckets[idx] = n.next
			} else {
				prev.next = n.next
			}
			s.release(n)
			s.size--

			return true
		}
		prev = n
	}

	return false
}

// Clear empties the set in one sweep, returning every live node to the
// free-list, and resets bucket slots to nil without shrinking the backing
// array (buckets are reused exactly as the undo frames are: pre-sized lazily,
// never shrunk).
func (s *hashSet) Clear() {
	for i, n := range s.buckets {
		for n != nil {
			next := n.next
			s.release(n)
			n = next
		}
		s.buckets[i] = nil
	}
	s.size = 0
}

// rehash doubles (or resizes to) newCap buckets, moving existing nodes in
// place rather than reallocating or copying keys — each node is unlinked from
// its old bucket and relinked into its new bucket.
func (s *hashSet) rehash(newCap int) {
	old := s.buckets
	s.buckets = make([]*node, newCap)
	mask := uint64(newCap - 1)
	for _, head := range old {
		n := head
		for n != nil {
			next := n.next
			idx := n.hash & mask
			n.next = s.buckets[idx]
			s.buckets[idx] = n
			n = next
		}
	}
}

// appendValues appends every element currently in the set to out, returning
// the extended slice. Used to build the admissibility-test snapshot required
// by spec: the snapshot must be taken before any mutation so a push that
// partially inserts new sums never observes its own insertions mid-test.
func (s *hashSet) appendValues(out []bigint.Int) []bigint.Int {
	for _, head := range s.buckets {
		for n := head; n != nil; n = n.next {
			out = append(out, n.key)
		}
	}

	return out
}
