package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bsetsearch/resultstore"
)

func showCommands(params *GlobalParams) []*cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [N]",
		Short: "Print stored result(s); omit N to list every N on record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 0
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("bsetsearch: show: invalid N %q: %w", args[0], err)
				}
				n = parsed
			}

			return withStore(params, func(store *resultstore.Store) error {
				rows, err := store.Show(n)
				if err != nil {
					return err
				}
				for _, r := range rows {
					fmt.Printf("n=%d status=%s max=%s solution=%s nodes=%d elapsed=%.3fs (%s)\n",
						r.TargetN, r.Status, r.MaxValue, r.Solution, r.NodesExplored, r.ElapsedSeconds, r.Timestamp.Format("02.01.2006 15:04:05"))
				}

				return nil
			})
		},
	}

	return []*cobra.Command{cmd}
}
