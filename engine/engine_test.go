package engine

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"drone/config"
	"drone/experiments/metrics"
	"drone/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	saved []store.PlanRecord
	err   error
}

func (m *mockStore) SavePlan(_ context.Context, rec store.PlanRecord) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.saved = append(m.saved, rec)
	return int64(len(m.saved)), nil
}

func shuttleConfig() config.Config {
	cfg := config.Default()
	cfg.InitialFuel = 60
	cfg.MaxTime = 30
	cfg.Targets = []string{"A"}
	cfg.Moves = []config.Move{
		{From: "Base", To: "A", Fuel: 20, Time: 10},
		{From: "A", To: "Base", Fuel: 20, Time: 10},
	}
	return cfg
}

func TestRun(t *testing.T) {
	t.Run("plan is saved and reported", func(t *testing.T) {
		ms := &mockStore{}
		e := New(shuttleConfig(), WithStore(ms))
		fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
		e.now = func() time.Time { return fixed }

		res, err := e.Run(context.Background())

		require.NoError(t, err)
		require.NotEmpty(t, res.RunID)
		require.Equal(t, []string{"move_to_A()", "survey()", "move_to_Base()"}, res.Plan.Labels())
		require.Equal(t, int64(1), res.PlanID)
		require.Equal(t, []store.PlanRecord{{
			Timestamp:   fixed,
			Score:       560,
			InitialFuel: 60,
			MaxTime:     30,
			Targets:     "A",
			Steps:       []string{"move_to_A()", "survey()", "move_to_Base()"},
		}}, ms.saved)

		var out bytes.Buffer
		require.NoError(t, Report(&out, res))
		require.Equal(t, "Plan Found! Score: 560.00\n"+
			"----------------------------\n"+
			"Step 1: move_to_A()\n"+
			"Step 2: survey()\n"+
			"Step 3: move_to_Base()\n"+
			"\nPlan saved to database with ID: 1\n", out.String())
	})

	t.Run("empty plan is reported but not saved", func(t *testing.T) {
		cfg := shuttleConfig()
		cfg.InitialFuel = 10
		ms := &mockStore{}

		res, err := New(cfg, WithStore(ms)).Run(context.Background())

		require.NoError(t, err)
		require.False(t, res.Viable())
		require.Empty(t, ms.saved)
		var out bytes.Buffer
		require.NoError(t, Report(&out, res))
		require.Equal(t, "No viable plan found within the given constraints.\n", out.String())
	})

	t.Run("store failures surface", func(t *testing.T) {
		boom := errors.New("disk full")
		_, err := New(shuttleConfig(), WithStore(&mockStore{err: boom})).Run(context.Background())
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled sessions fail", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(config.Default()).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("metrics and archive sinks", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		path := filepath.Join(t.TempDir(), "archive.parquet")
		e := New(shuttleConfig(), WithExporter(metrics.NewExporter(reg)), WithArchive(path))

		res, err := e.Run(context.Background())
		require.NoError(t, err)
		_, err = e.Run(context.Background())
		require.NoError(t, err)

		rows, err := store.ReadArchive(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, res.RunID, rows[0].RunID)
		require.Equal(t, int64(res.Tree.Size()), rows[0].Nodes)
		require.Equal(t, "A", rows[0].Targets)

		families, err := reg.Gather()
		require.NoError(t, err)
		require.NotEmpty(t, families)
	})

	t.Run("parallel search finds the same plan", func(t *testing.T) {
		cfg := config.Default()
		sequential, err := New(cfg).Run(context.Background())
		require.NoError(t, err)

		cfg.Search.Workers = 4
		parallel, err := New(cfg).Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, sequential.Plan, parallel.Plan)
	})
}
