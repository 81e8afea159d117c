package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bsetsearch/logging"
	"github.com/katalvlaran/bsetsearch/resultstore"
	"github.com/katalvlaran/bsetsearch/search"
	"github.com/katalvlaran/bsetsearch/sumset"
	"github.com/katalvlaran/bsetsearch/workerpool"
)

type solveFlags struct {
	n         int
	startN    int
	maxN      int
	workers   int
	allOptima bool
	firstOnly bool
}

func solveCommands(params *GlobalParams) []*cobra.Command {
	flags := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for one N, or a range of N with bounded concurrency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(params, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.n, "n", "n", 0, "solve exactly N")
	cmd.Flags().IntVarP(&flags.startN, "start-n", "s", 0, "first N in a range")
	cmd.Flags().IntVarP(&flags.maxN, "max-n", "m", 0, "last N in a range")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 1, "concurrent engines")
	cmd.Flags().BoolVarP(&flags.allOptima, "all", "a", false, "enumerate all equal-max optima")
	cmd.Flags().BoolVarP(&flags.firstOnly, "first-only", "f", false, "stop at the first admissible full completion")

	return []*cobra.Command{cmd}
}

func runSolve(params *GlobalParams, flags *solveFlags) error {
	return withStore(params, func(store *resultstore.Store) error {
		ns, err := resolveTargets(flags, store)
		if err != nil {
			return err
		}

		tasks := make([]workerpool.Task, len(ns))
		for i, n := range ns {
			tasks[i] = workerpool.Task{
				N:             n,
				FindAllOptima: flags.allOptima,
				FirstOnly:     flags.firstOnly,
				OracleKind:    sumset.Auto,
			}
		}

		ctx, cancel := notifyContext()
		defer cancel()

		pool := workerpool.New(store, flags.workers)
		results, err := pool.Solve(ctx, tasks)
		if err != nil {
			return fmt.Errorf("bsetsearch: solve: %w", err)
		}

		interrupted := false
		for _, res := range results {
			printResult(res)
			if res.Status == search.StatusInterrupted {
				interrupted = true
			}
		}
		if interrupted {
			return errInterrupted
		}

		return nil
	})
}

// resolveTargets turns -n / -s,-m into the concrete list of N values to
// solve, per spec §6's CLI contract. When -m/--max-n is given without
// -s/--start-n, -s defaults to one past the store's last-solved N, or 1 if
// the store has no recorded results yet (spec §6: "-s S ... default:
// last-solved+1 from store, or 1"). store may be nil (e.g. from tests),
// in which case the default falls straight to 1.
func resolveTargets(flags *solveFlags, store *resultstore.Store) ([]int, error) {
	if flags.n > 0 {
		return []int{flags.n}, nil
	}

	startN := flags.startN
	if startN <= 0 && flags.maxN > 0 {
		startN = 1
		if store != nil {
			if last, ok, err := store.LastSolvedN(); err != nil {
				return nil, fmt.Errorf("bsetsearch: solve: %w", err)
			} else if ok {
				startN = last + 1
			}
		}
	}

	if startN > 0 && flags.maxN >= startN {
		ns := make([]int, 0, flags.maxN-startN+1)
		for n := startN; n <= flags.maxN; n++ {
			ns = append(ns, n)
		}

		return ns, nil
	}

	return nil, fmt.Errorf("bsetsearch: solve: specify -n, or -m/--max-n (optionally with -s/--start-n no greater than it)")
}

func printResult(res search.Result) {
	logging.Infof("n=%d status=%s max=%s nodes=%s elapsed=%.3fs",
		res.TargetN, res.Status, res.MaxValue.String(), logging.GroupDigits(res.NodesExplored), res.ElapsedSeconds)
}
