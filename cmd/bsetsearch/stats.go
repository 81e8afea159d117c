package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bsetsearch/resultstore"
)

func statsCommands(params *GlobalParams) []*cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print result-store aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(params, func(store *resultstore.Store) error {
				agg, err := store.Stats()
				if err != nil {
					return err
				}

				fmt.Printf("solved=%d total_nodes=%d min_elapsed=%.3fs max_elapsed=%.3fs avg_elapsed=%.3fs\n",
					agg.SolvedCount, agg.TotalNodes, agg.MinElapsedSeconds, agg.MaxElapsedSeconds, agg.AvgElapsedSeconds)

				return nil
			})
		},
	}

	return []*cobra.Command{cmd}
}
