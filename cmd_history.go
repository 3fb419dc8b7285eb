package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"drone/mission"
	"drone/store"

	"github.com/spf13/cobra"
)

func openStore(cmd *cobra.Command, root *rootOptions, dbPath string) (*store.SQLite, error) {
	path := root.cfg.Store.Path
	if dbPath != "" {
		path = dbPath
	}
	return store.Open(cmd.Context(), path)
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(cmd, root, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			plans, err := db.ListPlans(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIMESTAMP\tSCORE\tFUEL\tMAX TIME\tTARGETS")
			for _, p := range plans {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
					p.ID, p.Timestamp.Format(store.TimestampLayout), p.Score, p.InitialFuel, p.MaxTime, p.Targets)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "plan history database (overrides config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of plans to list, 0 for all")
	return cmd
}

func newShowCmd(root *rootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Print the steps of a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadPlan(cmd, root, dbPath, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan %d (%s) Score: %.2f\n", rec.ID, rec.Timestamp.Format(store.TimestampLayout), rec.Score)
			fmt.Fprintf(out, "Fuel: %.2f  Max time: %.2f  Targets: %s\n", rec.InitialFuel, rec.MaxTime, rec.Targets)
			for i, step := range rec.Steps {
				fmt.Fprintf(out, "Step %d: %s\n", i+1, step)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "plan history database (overrides config)")
	return cmd
}

func newReplayCmd(root *rootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "replay <plan-id>",
		Short: "Re-apply a saved plan to the configured mission and score the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadPlan(cmd, root, dbPath, args[0])
			if err != nil {
				return err
			}
			actions := make([]mission.Action, len(rec.Steps))
			for i, step := range rec.Steps {
				if actions[i], err = mission.ParseLabel(step); err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
			}

			cfg := root.cfg
			rules := cfg.Rules()
			out := cmd.OutOrStdout()
			state := rules.Initial()
			fmt.Fprintf(out, "Start: %s\n", state)
			for i, a := range actions {
				if state, err = rules.Apply(state, a); err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
				fmt.Fprintf(out, "Step %d: %s -> %s\n", i+1, a, state)
			}
			score := cfg.Objective()(state, rules.Constraints())
			fmt.Fprintf(out, "Score: %.2f (saved %.2f)\n", score, rec.Score)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "plan history database (overrides config)")
	return cmd
}

func loadPlan(cmd *cobra.Command, root *rootOptions, dbPath, arg string) (store.PlanRecord, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return store.PlanRecord{}, fmt.Errorf("invalid plan id %q", arg)
	}
	db, err := openStore(cmd, root, dbPath)
	if err != nil {
		return store.PlanRecord{}, err
	}
	defer db.Close()
	return db.GetPlan(cmd.Context(), id)
}
