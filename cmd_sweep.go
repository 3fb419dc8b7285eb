package main

import (
	"fmt"

	"drone/experiments"
	"drone/experiments/metrics"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	var (
		sweep   = experiments.Sweep{}
		kind    string
		depth   int
		workers []int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare search settings over random missions and write CSV results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var configs []metrics.SearcherConfig
			switch kind {
			case "depth":
				configs = experiments.DepthConfigs(depth)
			case "workers":
				configs = experiments.WorkerConfigs(depth, workers...)
			default:
				return fmt.Errorf("unknown sweep %q (want depth or workers)", kind)
			}
			sweep.Name = kind
			sweep.Configs = configs

			records, dir, err := sweep.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d runs to %s\n", len(records), dir)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&kind, "kind", "depth", "sweep to run: depth or workers")
	flags.IntVar(&depth, "depth", 7, "deepest bound for depth sweeps, fixed bound for worker sweeps")
	flags.IntSliceVar(&workers, "workers", []int{1, 2, 4, 8}, "worker counts for worker sweeps")
	flags.IntVar(&sweep.Scenarios, "scenarios", 10, "number of random missions")
	flags.IntVar(&sweep.Sites, "sites", 3, "sites per mission besides base")
	flags.Uint64Var(&sweep.Seed, "seed", 1, "seed of the first mission")
	flags.StringVar(&sweep.OutputDir, "out", "experiments", "output directory")
	return cmd
}
