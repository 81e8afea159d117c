// Package bsetsearch searches for B-sequences: sets of N distinct positive
// integers whose 2^N subset sums are all pairwise distinct, with the smallest
// possible maximum element.
//
// The search is exact branch-and-bound, not heuristic: for a given N it proves
// the minimal max(S) by exhaustively pruning the space of strictly-increasing
// candidate sequences. The optimum for a given N is an open problem in general
// (Erdős); this system computes it by explicit search, not by closed form.
//
// Two packages carry the algorithmic weight:
//
//	sumset/ — SumSetOracle: tells the search whether appending a candidate
//	          element keeps all subset sums distinct, with an indexed
//	          (hash-set) backend and a memoryless exhaustive backend.
//	search/ — BacktrackEngine: the depth-first branch-and-bound driver that
//	          uses a SumSetOracle as its inner loop.
//
// Supporting packages:
//
//	bigint/      — arbitrary-precision nonnegative integers (compare/add/hash)
//	resultstore/ — sqlite-backed cache of best bounds and enumerated optima
//	workerpool/  — bounded-concurrency dispatch of solve() across a range of N
//	logging/     — a small mutex-guarded structured logging façade over zap
//	cmd/bsetsearch/ — the CLI front end
//
// Quick usage, solving N=6 with default settings:
//
//	cfg := search.DefaultConfig(6)
//	eng := search.New(cfg)
//	res, err := eng.Solve(context.Background())
//
// go get github.com/katalvlaran/bsetsearch
package bsetsearch
