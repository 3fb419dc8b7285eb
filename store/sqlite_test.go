package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSavePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("plan and steps round trip", func(t *testing.T) {
		db := openTestDB(t)
		when := time.Date(2024, 3, 1, 12, 30, 5, 0, time.Local)
		rec := PlanRecord{
			Timestamp:   when,
			Score:       560,
			InitialFuel: 60,
			MaxTime:     30,
			Targets:     "A",
			Steps:       []string{"move_to_A()", "survey()", "move_to_Base()"},
		}

		id, err := db.SavePlan(ctx, rec)
		require.NoError(t, err)
		require.Equal(t, int64(1), id)

		got, err := db.GetPlan(ctx, id)
		require.NoError(t, err)
		rec.ID = id
		require.Equal(t, rec, got)
	})

	t.Run("steps are numbered from one", func(t *testing.T) {
		db := openTestDB(t)
		id, err := db.SavePlan(ctx, PlanRecord{Score: 1, Steps: []string{"survey()", "move_to_Base()"}})
		require.NoError(t, err)

		rows, err := db.conn.QueryContext(ctx, "SELECT step_number, action FROM plan_steps WHERE plan_id = ? ORDER BY step_number", id)
		require.NoError(t, err)
		defer rows.Close()
		var numbers []int
		for rows.Next() {
			var n int
			var action string
			require.NoError(t, rows.Scan(&n, &action))
			numbers = append(numbers, n)
		}
		require.Equal(t, []int{1, 2}, numbers)
	})

	t.Run("timestamp defaults to now in the stored layout", func(t *testing.T) {
		db := openTestDB(t)
		fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
		db.now = func() time.Time { return fixed }

		id, err := db.SavePlan(ctx, PlanRecord{Score: 1})
		require.NoError(t, err)

		var raw string
		require.NoError(t, db.conn.QueryRowContext(ctx, "SELECT timestamp FROM plans WHERE id = ?", id).Scan(&raw))
		require.Equal(t, "2025-01-02 03:04:05", raw)
	})

	t.Run("empty plan has no steps", func(t *testing.T) {
		db := openTestDB(t)
		id, err := db.SavePlan(ctx, PlanRecord{Score: -5})
		require.NoError(t, err)

		got, err := db.GetPlan(ctx, id)
		require.NoError(t, err)
		require.Empty(t, got.Steps)
	})
}

func TestGetPlanMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.GetPlan(context.Background(), 42)
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestListPlans(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	for i := 1; i <= 3; i++ {
		_, err := db.SavePlan(ctx, PlanRecord{Score: float64(i), Steps: []string{"survey()"}})
		require.NoError(t, err)
	}

	all, err := db.ListPlans(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, int64(3), all[0].ID, "newest plan comes first")
	require.Nil(t, all[0].Steps, "listing does not load steps")

	limited, err := db.ListPlans(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestNullableColumns(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := db.conn.ExecContext(ctx, "INSERT INTO plans (timestamp, score) VALUES (?, ?)", "2024-01-01 00:00:00", 3.5)
	require.NoError(t, err)

	got, err := db.GetPlan(ctx, 1)

	require.NoError(t, err)
	require.Equal(t, 3.5, got.Score)
	require.Zero(t, got.InitialFuel)
	require.Equal(t, "", got.Targets)
}

func TestReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "plans.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.SavePlan(ctx, PlanRecord{Score: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	plans, err := db.ListPlans(ctx, 10)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	var count int
	require.NoError(t, db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM plans").Scan(&count))
	require.Equal(t, 1, count)
}
