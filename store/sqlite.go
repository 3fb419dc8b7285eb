package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schema string

// TimestampLayout is how plan timestamps are stored.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrPlanNotFound = errors.New("plan not found")

// PlanRecord is a saved plan. Steps are the action labels in order.
type PlanRecord struct {
	ID          int64
	Timestamp   time.Time
	Score       float64
	InitialFuel float64
	MaxTime     float64
	Targets     string // sorted, ", " separated
	Steps       []string
}

// SQLite keeps the history of generated plans.
type SQLite struct {
	conn *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the plan database at path.
func Open(ctx context.Context, path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d", path, 5000)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &SQLite{conn: conn, path: path, now: time.Now}, nil
}

func (s *SQLite) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *SQLite) Path() string {
	return s.path
}

// SavePlan stores a plan and its steps in one transaction and returns the new
// plan ID. Steps are numbered from 1. A zero Timestamp is set to now.
func (s *SQLite) SavePlan(ctx context.Context, rec PlanRecord) (int64, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO plans (timestamp, score, initial_fuel, max_time, targets) VALUES (?, ?, ?, ?, ?)",
			rec.Timestamp.Format(TimestampLayout), rec.Score, rec.InitialFuel, rec.MaxTime, rec.Targets)
		if err != nil {
			return fmt.Errorf("failed to insert plan: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read plan id: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO plan_steps (plan_id, step_number, action) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare step insert: %w", err)
		}
		defer stmt.Close()
		for i, step := range rec.Steps {
			if _, err := stmt.ExecContext(ctx, id, i+1, step); err != nil {
				return fmt.Errorf("failed to insert step %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug().Int64("plan_id", id).Int("steps", len(rec.Steps)).Msg("saved plan")
	return id, nil
}

// GetPlan loads a plan with its steps.
func (s *SQLite) GetPlan(ctx context.Context, id int64) (PlanRecord, error) {
	row := s.conn.QueryRowContext(ctx,
		"SELECT id, timestamp, score, initial_fuel, max_time, targets FROM plans WHERE id = ?", id)
	rec, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PlanRecord{}, fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	if err != nil {
		return PlanRecord{}, fmt.Errorf("failed to load plan %d: %w", id, err)
	}

	rows, err := s.conn.QueryContext(ctx,
		"SELECT action FROM plan_steps WHERE plan_id = ? ORDER BY step_number", id)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("failed to load steps of plan %d: %w", id, err)
	}
	defer rows.Close()
	rec.Steps = []string{}
	for rows.Next() {
		var action string
		if err := rows.Scan(&action); err != nil {
			return PlanRecord{}, fmt.Errorf("failed to scan step: %w", err)
		}
		rec.Steps = append(rec.Steps, action)
	}
	if err := rows.Err(); err != nil {
		return PlanRecord{}, fmt.Errorf("failed to read steps of plan %d: %w", id, err)
	}
	return rec, nil
}

// ListPlans returns the most recent plans, newest first, without steps.
func (s *SQLite) ListPlans(ctx context.Context, limit int) ([]PlanRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, timestamp, score, initial_fuel, max_time, targets FROM plans ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (PlanRecord, error) {
	var (
		rec       PlanRecord
		timestamp string
		fuel      sql.NullFloat64
		maxTime   sql.NullFloat64
		targets   sql.NullString
	)
	if err := row.Scan(&rec.ID, &timestamp, &rec.Score, &fuel, &maxTime, &targets); err != nil {
		return PlanRecord{}, err
	}
	ts, err := time.ParseInLocation(TimestampLayout, timestamp, time.Local)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("bad timestamp %q: %w", timestamp, err)
	}
	rec.Timestamp = ts
	rec.InitialFuel = fuel.Float64
	rec.MaxTime = maxTime.Float64
	rec.Targets = targets.String
	return rec, nil
}

func (s *SQLite) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
