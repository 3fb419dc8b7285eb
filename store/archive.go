package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ArchiveRow is one planning session, flattened for long-term storage.
type ArchiveRow struct {
	RunID       string   `parquet:"run_id"`
	PlanID      int64    `parquet:"plan_id"`
	Timestamp   string   `parquet:"timestamp"`
	Score       float64  `parquet:"score"`
	InitialFuel float64  `parquet:"initial_fuel"`
	MaxTime     float64  `parquet:"max_time"`
	Targets     string   `parquet:"targets,dict"`
	Steps       []string `parquet:"steps"`
	MaxDepth    int32    `parquet:"max_depth"`
	Nodes       int64    `parquet:"nodes"`
	Leaves      int64    `parquet:"leaves"`
	Truncated   bool     `parquet:"truncated"`
}

// WriteArchive writes rows to outPath, replacing any existing file.
func WriteArchive(outPath string, rows []ArchiveRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "plan_archive_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// AppendArchive adds rows to the archive at path, creating it if needed.
func AppendArchive(path string, rows []ArchiveRow) error {
	existing, err := ReadArchive(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return WriteArchive(path, append(existing, rows...))
}

// ReadArchive loads every row of an archive file.
func ReadArchive(path string) ([]ArchiveRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ArchiveRow](pf)
	defer reader.Close()

	rows := make([]ArchiveRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && n < len(rows) {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows[:n], nil
}
