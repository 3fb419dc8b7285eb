package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type SearcherConfig struct {
	ID       int
	MaxDepth int
	Workers  int
	MaxNodes int
}

type RunRecord struct {
	ID         int
	Config     int // SearcherConfig.ID
	Scenario   int
	Score      float64
	PlanLength int
	SearchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes records there.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSearcherConfigs(configs []SearcherConfig) error {
	header := []string{"id", "max_depth", "workers", "max_nodes"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.MaxDepth),
			strconv.Itoa(config.Workers),
			strconv.Itoa(config.MaxNodes),
		})
	}
	return w.write("searcher_configs.csv", header, rows)
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	header := []string{"id", "config", "scenario", "score", "plan_length", "duration", "nodes", "leaves", "terminals", "dead_ends", "cutoffs", "truncated"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Config),
			strconv.Itoa(record.Scenario),
			strconv.FormatFloat(record.Score, 'f', 2, 64),
			strconv.Itoa(record.PlanLength),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Terminals),
			strconv.Itoa(record.DeadEnds),
			strconv.Itoa(record.Cutoffs),
			strconv.FormatBool(record.Truncated),
		})
	}
	return w.write("run_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
