// Package search implements BacktrackEngine: the depth-first branch-and-bound
// driver that builds a length-N strictly-increasing sequence of positive
// integers, using a sumset.Oracle as its admissibility test, pruning branches
// that cannot beat the current best-known maximum.
//
// Design follows katalvlaran/lvlath/tsp's branch-and-bound shape (bbEngine in
// tsp/bb.go): a dedicated, non-exported engine struct holding all search
// state (rather than closures), deterministic ascending-candidate branching,
// and a soft external cancellation point checked at sparse, well-defined
// spots rather than on every statement.
package search

import (
	"time"

	"github.com/katalvlaran/bsetsearch/bigint"
	"github.com/katalvlaran/bsetsearch/sumset"
)

// Config is the immutable input to a single Solve call (spec.md's SolverConfig).
// The zero value is not meaningful for TargetN (must be set); every other
// field has a documented zero-value default. Use DefaultConfig to start from
// sensible defaults and override only what you need.
type Config struct {
	// TargetN is the length N of the B-sequence to search for. Must be >= 1.
	TargetN int

	// InitialBound seeds the search's upper bound. The zero Int means
	// "derive the default", 2^(N-1)+1 (spec.md §4.3).
	InitialBound bigint.Int

	// FindAllOptima, if true, collects every B-set of length N whose max
	// equals the final optimal value instead of just the first one found.
	FindAllOptima bool

	// FirstOnly, if true, stops at the first admissible full completion
	// instead of continuing to search for a strictly better one. See
	// DESIGN.md's Open Question 1 resolution for the resulting status.
	FirstOnly bool

	// OracleKind selects the SumSetOracle backend. Auto (the zero value)
	// picks Indexed below sumset.IndexedMaxN and Exhaustive at or above it.
	OracleKind sumset.Kind

	// LogInterval bounds how often progress records are emitted during a
	// long search. Zero disables progress logging entirely.
	LogInterval time.Duration

	// OnSolution, if non-nil, is invoked synchronously every time the
	// engine adopts a new best (strictly improving) solution.
	OnSolution func(solution []bigint.Int, maxValue bigint.Int)

	// OnProgress, if non-nil, is invoked synchronously alongside each
	// emitted progress log record.
	OnProgress func(Stats)
}

// DefaultLogInterval is used by DefaultConfig.
const DefaultLogInterval = 5 * time.Second

// DefaultConfig returns a Config for an unseeded, single-best-solution,
// auto-oracle search of the given N.
func DefaultConfig(n int) Config {
	return Config{
		TargetN:     n,
		OracleKind:  sumset.Auto,
		LogInterval: DefaultLogInterval,
	}
}

// defaultInitialBound returns spec.md §4.3's classical conservative bound,
// 2^(N-1)+1: N distinct positive integers with all subset sums distinct
// always admit a set with max <= 2^(N-1); the +1 converts "max is
// achievable" into a strict upper-exclusive bound used by the candidate loop.
func defaultInitialBound(n int) bigint.Int {
	if n <= 1 {
		return bigint.FromUint64(2)
	}

	return bigint.AddUint64(bigint.Lsh(bigint.One(), uint(n-1)), 1)
}
