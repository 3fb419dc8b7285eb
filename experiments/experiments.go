package experiments

import (
	"context"
	"fmt"

	"drone/config"
	"drone/experiments/metrics"
	"drone/searcher"

	"github.com/rs/zerolog/log"
)

// Sweep compares searcher configurations over the same random missions.
type Sweep struct {
	Name      string
	OutputDir string
	Scenarios int
	Sites     int
	Seed      uint64
	Configs   []metrics.SearcherConfig
}

// DepthConfigs sweeps the depth bound on a single worker.
func DepthConfigs(maxDepth int) []metrics.SearcherConfig {
	configs := []metrics.SearcherConfig{}
	for d := 1; d <= maxDepth; d++ {
		configs = append(configs, metrics.SearcherConfig{ID: d, MaxDepth: d, Workers: 1})
	}
	return configs
}

// WorkerConfigs sweeps the worker count at a fixed depth.
func WorkerConfigs(depth int, workers ...int) []metrics.SearcherConfig {
	configs := []metrics.SearcherConfig{}
	for i, w := range workers {
		configs = append(configs, metrics.SearcherConfig{ID: i + 1, MaxDepth: depth, Workers: w})
	}
	return configs
}

// Run plans every scenario with every config and writes the results as CSV
// under OutputDir. It returns the records it wrote.
func (s Sweep) Run(ctx context.Context) ([]metrics.RunRecord, string, error) {
	records := []metrics.RunRecord{}
	count := 0

	log.Info().Msgf("starting %s sweep over %d scenarios...", s.Name, s.Scenarios)

	for scenario := 0; scenario < s.Scenarios; scenario++ {
		cfg := RandomScenario(s.Seed+uint64(scenario), s.Sites)
		for _, sc := range s.Configs {
			record, err := run(ctx, cfg, sc)
			if err != nil {
				return nil, "", fmt.Errorf("scenario %d config %d: %w", scenario, sc.ID, err)
			}
			count++
			record.ID = count
			record.Scenario = scenario
			records = append(records, record)
		}
		log.Info().Msgf("completed scenario %d of %d", scenario+1, s.Scenarios)
	}

	log.Info().Msgf("completed %s sweep", s.Name)

	writer, err := metrics.NewWriter(s.OutputDir, s.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sweep writer: %w", err)
	}
	if err := writer.WriteSearcherConfigs(s.Configs); err != nil {
		return nil, "", fmt.Errorf("failed to store searcher configs: %w", err)
	}
	log.Info().Msg("stored searcher configs")
	if err := writer.WriteRunRecords(records); err != nil {
		return nil, "", fmt.Errorf("failed to store run records: %w", err)
	}
	log.Info().Msg("stored run records")

	return records, writer.Dir(), nil
}

func run(ctx context.Context, cfg config.Config, sc metrics.SearcherConfig) (metrics.RunRecord, error) {
	rules := cfg.Rules()
	tree, err := createSearcher(cfg, sc).Build(ctx, rules.Initial())
	if err != nil {
		return metrics.RunRecord{}, err
	}
	plan, err := tree.Plan()
	if err != nil {
		return metrics.RunRecord{}, err
	}
	return metrics.RunRecord{
		Config:       sc.ID,
		Score:        plan.Score,
		PlanLength:   plan.Len(),
		SearchMetric: tree.Metric(),
	}, nil
}

func createSearcher(cfg config.Config, sc metrics.SearcherConfig) *searcher.Searcher {
	options := []searcher.Option{}

	if sc.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(sc.MaxDepth))
	}
	if sc.Workers > 0 {
		options = append(options, searcher.WithWorkers(sc.Workers))
	}
	if sc.MaxNodes > 0 {
		options = append(options, searcher.WithMaxNodes(sc.MaxNodes))
	}
	options = append(options, searcher.WithObjective(cfg.Objective()), searcher.WithMetrics())
	return searcher.NewSearcher(cfg.Rules(), options...)
}
