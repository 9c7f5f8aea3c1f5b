// Package parquet exports Fair Developer Score results to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/fairdev/fds/schema"
	"github.com/parquet-go/parquet-go"
)

// RunRecord captures metadata about a single scoring run, the way the
// teacher's AnalysisRun table captures metadata about a hotspot analysis
// run.
type RunRecord struct {
	RunID int64 `parquet:"run_id,snappy"`

	StartTime time.Time `parquet:"start_time,snappy"`
	EndTime   time.Time `parquet:"end_time,snappy"`

	RunDurationMs int64 `parquet:"run_duration_ms,snappy"`

	TotalCommits   int32 `parquet:"total_commits,snappy"`
	TotalBatches   int32 `parquet:"total_batches,snappy"`
	TotalDeveloper int32 `parquet:"total_developers,snappy"`

	// ConfigParams is the JSON-encoded Config used for this run.
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DeveloperResultRecord is the Parquet row shape for a ranked
// schema.DeveloperResult.
type DeveloperResultRecord struct {
	RunID int64 `parquet:"run_id,snappy"`
	Rank  int32 `parquet:"rank,snappy"`

	AuthorEmail string `parquet:"author_email,snappy"`

	FDS           float64 `parquet:"fds,snappy"`
	AvgEffort     float64 `parquet:"avg_effort,snappy"`
	AvgImportance float64 `parquet:"avg_importance,snappy"`

	TotalChurn    float64 `parquet:"total_churn,snappy"`
	TotalFiles    int32   `parquet:"total_files,snappy"`
	CommitCount   int32   `parquet:"commit_count,snappy"`
	UniqueBatches int32   `parquet:"unique_batches,snappy"`

	FirstCommit int64 `parquet:"first_commit_ts_utc,snappy"`
	LastCommit  int64 `parquet:"last_commit_ts_utc,snappy"`
}

// WriteRunRecordsParquet writes a slice of RunRecord to a Parquet file.
func WriteRunRecordsParquet(data []RunRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RunRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteDeveloperResultsParquet writes a ranked slice of DeveloperResult to a
// Parquet file, tagging each row with runID and its 1-based rank.
func WriteDeveloperResultsParquet(results []schema.DeveloperResult, runID int64, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[DeveloperResultRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertDeveloperResults(results, runID)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertDeveloperResults converts ranked DeveloperResult rows into their
// Parquet record shape.
func ConvertDeveloperResults(results []schema.DeveloperResult, runID int64) []DeveloperResultRecord {
	out := make([]DeveloperResultRecord, len(results))
	for i, r := range results {
		out[i] = DeveloperResultRecord{
			RunID:         runID,
			Rank:          int32(i + 1),
			AuthorEmail:   r.AuthorEmail,
			FDS:           r.FDS,
			AvgEffort:     r.AvgEffort,
			AvgImportance: r.AvgImportance,
			TotalChurn:    r.TotalChurn,
			TotalFiles:    int32(r.TotalFiles),
			CommitCount:   int32(r.CommitCount),
			UniqueBatches: int32(r.UniqueBatches),
			FirstCommit:   r.FirstCommit,
			LastCommit:    r.LastCommit,
		}
	}
	return out
}
