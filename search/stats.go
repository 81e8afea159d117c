package search

import (
	"time"

	"github.com/katalvlaran/bsetsearch/bigint"
)

// Stats is the live, mutable search telemetry (spec.md's SearchStats). The
// engine is its sole writer; OnProgress callbacks receive a copy taken at
// the moment of the progress record.
type Stats struct {
	// NodesExplored counts candidate values considered (accepted or
	// rejected) since the solve began. Monotonically increasing.
	NodesExplored uint64

	// CurrentDepth is how many elements are committed on the current path.
	CurrentDepth int

	// BestMaxSoFar is the current upper bound on max(S).
	BestMaxSoFar bigint.Int

	// SolutionsFound counts full-depth admissible completions seen so far
	// (not just strictly-improving ones).
	SolutionsFound int

	// StartWallclock is when Solve began.
	StartWallclock time.Time

	// LastLogWallclock is when the last progress record was emitted.
	LastLogWallclock time.Time
}

// logIntervalNodes is the adaptive node-count gate from spec.md §4.3: check
// wall time every 1024 nodes for the first 100k, then every 65536 nodes.
func logIntervalNodes(nodesExplored uint64) uint64 {
	if nodesExplored < 100_000 {
		return 1024
	}

	return 65536
}
