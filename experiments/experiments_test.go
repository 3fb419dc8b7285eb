package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"drone/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func TestRandomScenario(t *testing.T) {
	t.Run("same seed, same mission", func(t *testing.T) {
		require.Equal(t, RandomScenario(7, 3), RandomScenario(7, 3))
	})

	t.Run("missions are valid and fully connected", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			cfg := RandomScenario(seed, 3)
			require.NoError(t, cfg.Validate())
			require.NotEmpty(t, cfg.Targets)
			require.Len(t, cfg.Moves, 12, "every ordered pair of 4 locations")
		}
	})
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	sweep := Sweep{
		Name:      "depth",
		OutputDir: dir,
		Scenarios: 2,
		Sites:     2,
		Seed:      1,
		Configs:   DepthConfigs(3),
	}

	records, out, err := sweep.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 6)
	for i, r := range records {
		require.Equal(t, i+1, r.ID)
		require.Positive(t, r.Nodes)
		require.LessOrEqual(t, r.PlanLength, r.MaxDepth)
	}
	require.Equal(t, []int{0, 0, 0, 1, 1, 1}, []int{
		records[0].Scenario, records[1].Scenario, records[2].Scenario,
		records[3].Scenario, records[4].Scenario, records[5].Scenario,
	})

	require.Equal(t, dir, filepath.Dir(filepath.Dir(out)))
	for _, name := range []string{"searcher_configs.csv", "run_records.csv"} {
		_, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err)
	}
}

func TestWorkerConfigs(t *testing.T) {
	require.Equal(t, []metrics.SearcherConfig{
		{ID: 1, MaxDepth: 5, Workers: 1},
		{ID: 2, MaxDepth: 5, Workers: 4},
	}, WorkerConfigs(5, 1, 4))
}
