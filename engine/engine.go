package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"drone/config"
	"drone/experiments/metrics"
	"drone/searcher"
	"drone/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PlanStore records completed plans.
type PlanStore interface {
	SavePlan(ctx context.Context, rec store.PlanRecord) (int64, error)
}

type Option func(e *Engine)

// Engine runs one planning session: build the tree, pick the best plan and
// hand it to the configured sinks.
type Engine struct {
	cfg      config.Config
	store    PlanStore
	exporter *metrics.Exporter
	archive  string
	now      func() time.Time
}

func WithStore(s PlanStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

func WithExporter(exporter *metrics.Exporter) Option {
	return func(e *Engine) {
		e.exporter = exporter
	}
}

// WithArchive appends each session to a Parquet archive at path.
func WithArchive(path string) Option {
	return func(e *Engine) {
		e.archive = path
	}
}

func New(cfg config.Config, options ...Option) *Engine {
	e := &Engine{cfg: cfg, now: time.Now}
	for _, option := range options {
		option(e)
	}
	return e
}

type Result struct {
	RunID  string
	Plan   searcher.Plan
	Tree   *searcher.Tree
	PlanID int64 // zero when the plan was not saved
}

// Viable reports whether the plan has at least one step.
func (r Result) Viable() bool {
	return r.Plan.Len() > 0
}

// Run plans the configured mission. Empty plans are returned but not saved.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	logger := log.With().Str("run", res.RunID).Logger()

	if e.cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Search.Timeout)
		defer cancel()
	}

	rules := e.cfg.Rules()
	s := searcher.NewSearcher(rules,
		searcher.WithMaxDepth(e.cfg.Search.MaxDepth),
		searcher.WithMaxNodes(e.cfg.Search.MaxNodes),
		searcher.WithWorkers(e.cfg.Search.Workers),
		searcher.WithObjective(e.cfg.Objective()),
		searcher.WithMetrics(),
	)

	logger.Info().Msgf("planning mission for targets [%s] with %.2f fuel and %.2f time...",
		rules.Constraints().Targets, e.cfg.InitialFuel, e.cfg.MaxTime)

	tree, err := s.Build(ctx, rules.Initial())
	if err != nil {
		return Result{}, err
	}
	plan, err := tree.Plan()
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract plan: %w", err)
	}
	res.Tree = tree
	res.Plan = plan

	metric := tree.Metric()
	logger.Info().Msgf("searched %d nodes (%d leaves) in %s, best score %.2f over %d steps",
		metric.Nodes, metric.Leaves, metric.Duration, plan.Score, plan.Len())
	if tree.Truncated() {
		logger.Warn().Msgf("node ceiling of %d reached, plan may not be optimal", e.cfg.Search.MaxNodes)
	}

	if e.exporter != nil {
		e.exporter.Observe(metric, plan.Score)
	}

	timestamp := e.now()
	if res.Viable() && e.store != nil {
		id, err := e.store.SavePlan(ctx, e.record(res, timestamp))
		if err != nil {
			return res, fmt.Errorf("failed to save plan: %w", err)
		}
		res.PlanID = id
		logger.Info().Msgf("plan saved with id %d", id)
	}

	if e.archive != "" {
		if err := store.AppendArchive(e.archive, []store.ArchiveRow{e.archiveRow(res, timestamp)}); err != nil {
			return res, fmt.Errorf("failed to archive plan: %w", err)
		}
	}

	return res, nil
}

func (e *Engine) record(res Result, timestamp time.Time) store.PlanRecord {
	return store.PlanRecord{
		Timestamp:   timestamp,
		Score:       res.Plan.Score,
		InitialFuel: e.cfg.InitialFuel,
		MaxTime:     e.cfg.MaxTime,
		Targets:     e.cfg.Constraints().Targets.String(),
		Steps:       res.Plan.Labels(),
	}
}

func (e *Engine) archiveRow(res Result, timestamp time.Time) store.ArchiveRow {
	rec := e.record(res, timestamp)
	return store.ArchiveRow{
		RunID:       res.RunID,
		PlanID:      res.PlanID,
		Timestamp:   timestamp.Format(store.TimestampLayout),
		Score:       rec.Score,
		InitialFuel: rec.InitialFuel,
		MaxTime:     rec.MaxTime,
		Targets:     rec.Targets,
		Steps:       rec.Steps,
		MaxDepth:    int32(e.cfg.Search.MaxDepth),
		Nodes:       int64(res.Tree.Size()),
		Leaves:      int64(res.Tree.Leaves()),
		Truncated:   res.Tree.Truncated(),
	}
}

// Report prints the plan the way operators read it.
func Report(w io.Writer, res Result) error {
	var b strings.Builder
	if !res.Viable() {
		b.WriteString("No viable plan found within the given constraints.\n")
	} else {
		fmt.Fprintf(&b, "Plan Found! Score: %.2f\n", res.Plan.Score)
		b.WriteString("----------------------------\n")
		for i, label := range res.Plan.Labels() {
			fmt.Fprintf(&b, "Step %d: %s\n", i+1, label)
		}
	}
	if res.PlanID != 0 {
		fmt.Fprintf(&b, "\nPlan saved to database with ID: %d\n", res.PlanID)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
