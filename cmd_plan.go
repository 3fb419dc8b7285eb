package main

import (
	"fmt"
	"time"

	"drone/config"
	"drone/engine"
	"drone/experiments/metrics"
	"drone/form"
	"drone/store"
	"drone/visualize"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type planOptions struct {
	depth       int
	workers     int
	maxNodes    int
	timeout     time.Duration
	dbPath      string
	noSave      bool
	vizPath     string
	jsonTree    bool
	archivePath string
	metricsPath string
	interactive bool
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Search for the best mission plan and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if opts.interactive {
				var err error
				cfg, err = form.Run(cmd.Context(), cfg)
				if err != nil {
					return err
				}
			}
			cfg = opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runPlan(cmd, cfg, opts)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&opts.depth, "depth", 0, "maximum plan length (overrides config)")
	flags.IntVar(&opts.workers, "workers", 0, "goroutines expanding root subtrees (overrides config)")
	flags.IntVar(&opts.maxNodes, "max-nodes", 0, "node ceiling, 0 for none (overrides config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort the search after this long (overrides config)")
	flags.StringVar(&opts.dbPath, "db", "", "plan history database (overrides config)")
	flags.BoolVar(&opts.noSave, "no-save", false, "do not record the plan in the history database")
	flags.StringVar(&opts.vizPath, "viz", "", "write an HTML tree visualization to this file")
	flags.BoolVar(&opts.jsonTree, "json", false, "print the decision tree as JSON instead of the report")
	flags.StringVar(&opts.archivePath, "archive", "", "append the session to this Parquet archive")
	flags.StringVar(&opts.metricsPath, "metrics-out", "", "write Prometheus metrics to this textfile")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "edit the mission in a form before planning")
	return cmd
}

func (o *planOptions) apply(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("depth") {
		cfg.Search.MaxDepth = o.depth
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = o.workers
	}
	if flags.Changed("max-nodes") {
		cfg.Search.MaxNodes = o.maxNodes
	}
	if flags.Changed("timeout") {
		cfg.Search.Timeout = o.timeout
	}
	if flags.Changed("db") {
		cfg.Store.Path = o.dbPath
	}
	return cfg
}

func runPlan(cmd *cobra.Command, cfg config.Config, opts *planOptions) error {
	ctx := cmd.Context()
	var options []engine.Option

	if !opts.noSave && cfg.Store.Path != "" {
		db, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		options = append(options, engine.WithStore(db))
	}

	reg := prometheus.NewRegistry()
	if opts.metricsPath != "" {
		options = append(options, engine.WithExporter(metrics.NewExporter(reg)))
	}
	if opts.archivePath != "" {
		options = append(options, engine.WithArchive(opts.archivePath))
	}

	res, err := engine.New(cfg, options...).Run(ctx)
	if err != nil {
		return err
	}

	best, err := res.Tree.BestLeaf()
	if err != nil {
		return err
	}
	tree := visualize.FromTree(res.Tree.Root(), best)

	if opts.jsonTree {
		if err := visualize.WriteJSON(cmd.OutOrStdout(), tree); err != nil {
			return err
		}
	} else if err := engine.Report(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if opts.vizPath != "" {
		path, err := visualize.WriteHTML(opts.vizPath, fmt.Sprintf("Mission plan (score %.2f)", res.Plan.Score), tree)
		if err != nil {
			return err
		}
		log.Info().Msgf("visualization written to %s", path)
	}
	if opts.metricsPath != "" {
		if err := metrics.WriteTextfile(opts.metricsPath, reg); err != nil {
			return err
		}
		log.Info().Msgf("metrics written to %s", opts.metricsPath)
	}
	return nil
}
