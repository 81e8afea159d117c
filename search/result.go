package search

import (
	"time"

	"github.com/katalvlaran/bsetsearch/bigint"
)

// Status is the single kind of observable outcome the engine surfaces to its
// caller, per spec.md §7's propagation policy: collisions, progress, and node
// counts are never surfaced as errors, only as this field.
type Status int

const (
	// StatusOptimal means a solution was found and the search proved no
	// better one exists (it exhausted the remaining search space, or N==1's
	// trivial base case applied).
	StatusOptimal Status = iota

	// StatusFeasible means a solution was found but optimality was not
	// proven — specifically, Config.FirstOnly stopped the search at the
	// first admissible completion (see DESIGN.md Open Question 1).
	StatusFeasible

	// StatusNoSolution means the search exhausted the space below
	// Config.InitialBound without finding any admissible completion — the
	// seeded bound was too tight (spec.md §8 property 9).
	StatusNoSolution

	// StatusTimeout means the context passed to Solve expired
	// (context.DeadlineExceeded) before the search completed.
	StatusTimeout

	// StatusInterrupted means the context passed to Solve was canceled
	// (context.Canceled, e.g. by a SIGINT/SIGTERM relayed through
	// workerpool) before the search completed.
	StatusInterrupted
)

// String renders the status using spec.md §6's textual values.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusNoSolution:
		return "NO_SOLUTION"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusInterrupted:
		return "INTERRUPTED"
	default:
		return "UNKNOWN"
	}
}

// Result is spec.md's SolutionResult.
type Result struct {
	TargetN             int
	MaxValue            bigint.Int
	Solution            []bigint.Int
	Optima              [][]bigint.Int // populated only when Config.FindAllOptima was set
	ElapsedSeconds      float64
	Status              Status
	NodesExplored       uint64
	CompletionTimestamp time.Time
}
