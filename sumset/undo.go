package sumset

import "github.com/katalvlaran/bsetsearch/bigint"

// undoFrame records every sum value inserted into the hash set by one
// successful TryPush, so Pop can delete exactly those values. The backing
// slice is never shrunk between reuses: frame k (at stack depth k-1) always
// needs exactly 2^(k-1) entries, so a frame allocated once at a given depth
// is the right size for every future push that reaches that depth again.
type undoFrame struct {
	values []bigint.Int
}

func (f *undoFrame) reset() {
	f.values = f.values[:0]
}

func (f *undoFrame) record(v bigint.Int) {
	f.values = append(f.values, v)
}

// undoStack is a pool of undoFrame objects indexed by depth. Pushing a frame
// only resets its counter to 0 and returns the frame at the current depth;
// popping just decrements depth and returns the same frame object.
type undoStack struct {
	frames []*undoFrame
	depth  int
}

// push returns the frame for the next push, allocating a new one only the
// first time this depth is reached.
func (s *undoStack) push() *undoFrame {
	if s.depth == len(s.frames) {
		s.frames = append(s.frames, &undoFrame{})
	}
	f := s.frames[s.depth]
	f.reset()
	s.depth++

	return f
}

// pop returns the frame most recently pushed, leaving its backing slice
// intact for the next reuse at this depth.
func (s *undoStack) pop() *undoFrame {
	s.depth--

	return s.frames[s.depth]
}

// len reports how many frames are currently active (i.e. the oracle's
// current element count since the last Reset).
func (s *undoStack) len() int { return s.depth }

// clear resets the stack to empty without discarding the pooled frames.
func (s *undoStack) clear() { s.depth = 0 }
