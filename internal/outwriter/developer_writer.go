package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/internal/parquet"
	"github.com/fairdev/fds/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDeveloperResults outputs ranked developer results, dispatching on
// the configured output format.
func PrintDeveloperResults(results []schema.DeveloperResult, cfg *schema.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDeveloperJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDeveloperCSVResults(results, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeDeveloperParquetResults(results, cfg); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDeveloperTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

func maxFDS(results []schema.DeveloperResult) float64 {
	var max float64
	for _, r := range results {
		if r.FDS > max {
			max = r.FDS
		}
	}
	return max
}

func writeDeveloperTable(results []schema.DeveloperResult, cfg *schema.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Author", "FDS", "Label", "AvgEffort", "AvgImportance", "Commits", "Batches", "Churn"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	max := maxFDS(results)
	pathWidth := GetMaxTablePathWidth(cfg)

	var data [][]string
	for i, r := range results {
		label := contract.GetPlainLabel(r.FDS, max)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.FDS, max)
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateEmail(r.AuthorEmail, pathWidth),
			fmtFloat(r.FDS),
			label,
			fmtFloat(r.AvgEffort),
			fmtFloat(r.AvgImportance),
			fmt.Sprintf(intFmt, r.CommitCount),
			fmt.Sprintf(intFmt, r.UniqueBatches),
			fmtFloat(r.TotalChurn),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	var totalCommits, totalBatches int
	for _, r := range results {
		totalCommits += r.CommitCount
		totalBatches += r.UniqueBatches
	}
	if _, err := fmt.Fprintf(writer, "Showing %d developers (total commits: %d, total batches: %d)\n", len(results), totalCommits, totalBatches); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

func writeDeveloperCSVResults(results []schema.DeveloperResult, cfg *schema.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVWithHeader(w, []string{
			"rank", "author_email", "fds", "label", "avg_effort", "avg_importance",
			"total_churn", "total_files", "commit_count", "unique_batches",
			"first_commit", "last_commit",
		}, func(cw *csv.Writer) error {
			max := maxFDS(results)
			for i, r := range results {
				rec := []string{
					strconv.Itoa(i + 1),
					r.AuthorEmail,
					fmtFloat(r.FDS),
					contract.GetPlainLabel(r.FDS, max),
					fmtFloat(r.AvgEffort),
					fmtFloat(r.AvgImportance),
					fmtFloat(r.TotalChurn),
					fmt.Sprintf(intFmt, r.TotalFiles),
					fmt.Sprintf(intFmt, r.CommitCount),
					fmt.Sprintf(intFmt, r.UniqueBatches),
					strconv.FormatInt(r.FirstCommit, 10),
					strconv.FormatInt(r.LastCommit, 10),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

func writeDeveloperParquetResults(results []schema.DeveloperResult, cfg *schema.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	runID := time.Now().UnixNano()
	if err := parquet.WriteDeveloperResultsParquet(results, runID, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Wrote parquet to %s\n", cfg.OutputFile)
	return nil
}

func writeDeveloperJSONResults(results []schema.DeveloperResult, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type jsonDeveloperResult struct {
			Rank  int    `json:"rank"`
			Label string `json:"label"`
			schema.DeveloperResult
		}
		max := maxFDS(results)
		out := make([]jsonDeveloperResult, len(results))
		for i, r := range results {
			out[i] = jsonDeveloperResult{
				Rank:            i + 1,
				Label:           contract.GetPlainLabel(r.FDS, max),
				DeveloperResult: r,
			}
		}
		return writeJSON(w, out)
	}, "Wrote JSON")
}
