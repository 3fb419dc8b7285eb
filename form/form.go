package form

import (
	"context"
	"fmt"
	"strings"

	"drone/config"

	"github.com/charmbracelet/huh"
)

// Input holds the raw text of the mission form.
type Input struct {
	InitialFuel string
	MaxTime     string
	Targets     string
	SurveyTime  string
	MaxDepth    string
	Moves       string
}

// FromConfig pre-fills the form from cfg.
func FromConfig(cfg config.Config) Input {
	return Input{
		InitialFuel: formatNumber(cfg.InitialFuel),
		MaxTime:     formatNumber(cfg.MaxTime),
		Targets:     strings.Join(cfg.Targets, ", "),
		SurveyTime:  formatNumber(cfg.SurveyTime),
		MaxDepth:    fmt.Sprint(cfg.Search.MaxDepth),
		Moves:       FormatMoves(cfg.Moves),
	}
}

// Apply parses the input over cfg and validates the result.
func (in Input) Apply(cfg config.Config) (config.Config, error) {
	var err error
	if cfg.InitialFuel, err = ParseNumber(in.InitialFuel); err != nil {
		return config.Config{}, fmt.Errorf("initial fuel: %w", err)
	}
	if cfg.MaxTime, err = ParseNumber(in.MaxTime); err != nil {
		return config.Config{}, fmt.Errorf("max time: %w", err)
	}
	if cfg.SurveyTime, err = ParseNumber(in.SurveyTime); err != nil {
		return config.Config{}, fmt.Errorf("survey time: %w", err)
	}
	depth, err := ParseNumber(in.MaxDepth)
	if err != nil {
		return config.Config{}, fmt.Errorf("max depth: %w", err)
	}
	cfg.Search.MaxDepth = int(depth)
	cfg.Targets = ParseTargets(in.Targets)
	if cfg.Moves, err = ParseMoves(in.Moves); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Run shows the mission form on the terminal, starting from cfg, and returns
// the edited configuration.
func Run(ctx context.Context, cfg config.Config) (config.Config, error) {
	in := FromConfig(cfg)
	number := func(s string) error {
		_, err := ParseNumber(s)
		return err
	}
	moves := func(s string) error {
		parsed, err := ParseMoves(s)
		if err != nil {
			return err
		}
		if len(parsed) == 0 {
			return fmt.Errorf("no move actions have been defined")
		}
		return nil
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Initial fuel").Value(&in.InitialFuel).Validate(number),
			huh.NewInput().Title("Max time").Value(&in.MaxTime).Validate(number),
			huh.NewInput().Title("Targets").Description("Comma separated, e.g. A, B").Value(&in.Targets),
			huh.NewInput().Title("Survey time").Value(&in.SurveyTime).Validate(number),
			huh.NewInput().Title("Search depth").Value(&in.MaxDepth).Validate(number),
		).Title("Mission constraints"),
		huh.NewGroup(
			huh.NewText().
				Title("Move costs").
				Description("One move per line: from to fuel time").
				Lines(8).
				Value(&in.Moves).
				Validate(moves),
		).Title("Actions"),
	)
	if err := f.RunWithContext(ctx); err != nil {
		return config.Config{}, fmt.Errorf("failed to collect mission parameters: %w", err)
	}
	return in.Apply(cfg)
}
