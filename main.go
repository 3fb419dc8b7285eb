package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"drone/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "drone",
		Short:        "Plan drone survey missions under fuel and time budgets",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})

			if opts.configPath == "" {
				opts.cfg = config.Default()
				return nil
			}
			opts.cfg, err = config.Load(opts.configPath)
			if err != nil {
				return err
			}
			log.Debug().Msgf("loaded configuration from %s", opts.configPath)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "mission configuration file (YAML); defaults to the stock Base/A/B mission")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPlanCmd(opts),
		newHistoryCmd(opts),
		newShowCmd(opts),
		newReplayCmd(opts),
		newSweepCmd(),
		newConfigCmd(opts),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
