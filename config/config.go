package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"drone/mission"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

// Move is one row of the move cost table.
type Move struct {
	From string  `yaml:"from" validate:"required"`
	To   string  `yaml:"to" validate:"required,nefield=From"`
	Fuel float64 `yaml:"fuel" validate:"gte=0"`
	Time float64 `yaml:"time" validate:"gte=0"`
}

type Search struct {
	MaxDepth int           `yaml:"max_depth" validate:"gte=1"`
	MaxNodes int           `yaml:"max_nodes" validate:"gte=0"`
	Workers  int           `yaml:"workers" validate:"gte=1"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
}

type Store struct {
	Path string `yaml:"path"`
}

// Config describes a mission and how to plan it.
type Config struct {
	Base        string           `yaml:"base" validate:"required"`
	InitialFuel float64          `yaml:"initial_fuel" validate:"gt=0"`
	MaxTime     float64          `yaml:"max_time" validate:"gt=0"`
	Targets     []string         `yaml:"targets" validate:"dive,required"`
	SurveyTime  float64          `yaml:"survey_time" validate:"gte=0"`
	Moves       []Move           `yaml:"moves" validate:"dive"`
	Weights     *mission.Weights `yaml:"weights,omitempty"`
	Search      Search           `yaml:"search"`
	Store       Store            `yaml:"store"`
}

// Default is the stock three-location mission: survey A and B from Base.
func Default() Config {
	return Config{
		Base:        string(mission.DefaultBase),
		InitialFuel: 100,
		MaxTime:     50,
		Targets:     []string{"A", "B"},
		SurveyTime:  5,
		Moves: []Move{
			{From: "Base", To: "A", Fuel: 20, Time: 10},
			{From: "Base", To: "B", Fuel: 30, Time: 15},
			{From: "A", To: "Base", Fuel: 20, Time: 10},
			{From: "A", To: "B", Fuel: 40, Time: 20},
			{From: "B", To: "Base", Fuel: 30, Time: 15},
			{From: "B", To: "A", Fuel: 40, Time: 20},
		},
		Search: Search{
			MaxDepth: 7,
			Workers:  1,
		},
		Store: Store{
			Path: "mission_plans.db",
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result. A moves list
// in the document replaces the default table.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that at least one move is defined.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	if len(c.Moves) == 0 {
		return fmt.Errorf("%w: no move actions have been defined", ErrInvalid)
	}
	return nil
}

// Write encodes the config as YAML.
func (c Config) Write(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Catalog builds the move catalog in the order the moves are listed. Later
// rows for the same route overwrite earlier ones.
func (c Config) Catalog() *mission.Catalog {
	catalog := mission.NewCatalog(c.SurveyTime)
	for _, m := range c.Moves {
		catalog.AddMove(mission.Location(m.From), mission.Location(m.To), mission.Cost{Fuel: m.Fuel, Time: m.Time})
	}
	return catalog
}

func (c Config) Constraints() mission.Constraints {
	targets := make([]mission.Location, len(c.Targets))
	for i, t := range c.Targets {
		targets[i] = mission.Location(t)
	}
	return mission.Constraints{
		Base:        mission.Location(c.Base),
		InitialFuel: c.InitialFuel,
		MaxTime:     c.MaxTime,
		Targets:     mission.NewLocationSet(targets...),
	}
}

func (c Config) Rules() mission.Rules {
	return mission.NewRules(c.Catalog(), c.Constraints())
}

// Objective returns the weighted objective, or the default when no weights
// are configured.
func (c Config) Objective() mission.Objective {
	if c.Weights == nil {
		return mission.DefaultObjective
	}
	return c.Weights.Objective()
}

func describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
	}
	return strings.Join(msgs, "; ")
}
