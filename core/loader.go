package core

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fairdev/fds/schema"
)

// csvColumns is the documented column order for CSV input (§3's Commit
// record fields, directory/file-type sets semicolon-joined).
var csvColumns = []string{
	"hash", "author_email", "commit_ts_utc", "dt_prev_commit_sec", "dt_prev_author_sec",
	"files_changed", "insertions", "deletions", "is_merge", "dirs_touched",
	"file_types", "msg_subject",
}

// LoadJSONL decodes one schema.Commit per line from r. A record missing its
// hash or author_email, or carrying a non-finite numeric field, fails the
// whole load with schema.ErrInvalidRecord (§7: the whole run fails, records
// are never silently dropped).
func LoadJSONL(r io.Reader) ([]schema.Commit, error) {
	var commits []schema.Commit
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var c schema.Commit
		c.BatchID = -1
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: decode commit: %w", lineNo, schema.ErrInvalidRecord)
		}
		if err := validateCommit(c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		commits = append(commits, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan commit stream: %w", err)
	}
	return commits, nil
}

// LoadCSV decodes commits from a CSV file with the header named in
// csvColumns (order-independent; unknown columns are ignored). dirs_touched
// and file_types are semicolon-joined lists.
func LoadCSV(r io.Reader) ([]schema.Commit, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"hash", "author_email", "commit_ts_utc"} {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q: %w", required, schema.ErrInvalidRecord)
		}
	}

	var commits []schema.Commit
	rowNo := 1
	for {
		rowNo++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNo, err)
		}
		c, err := parseCSVRow(row, colIdx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNo, err)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseCSVRow(row []string, colIdx map[string]int) (schema.Commit, error) {
	get := func(name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	ts, err := strconv.ParseInt(get("commit_ts_utc"), 10, 64)
	if err != nil {
		return schema.Commit{}, fmt.Errorf("parse commit_ts_utc: %w", schema.ErrInvalidRecord)
	}

	c := schema.Commit{
		Hash:            get("hash"),
		AuthorEmail:     strings.ToLower(get("author_email")),
		CommitTSUTC:     ts,
		DtPrevCommitSec: parseOptionalFloat(get("dt_prev_commit_sec")),
		DtPrevAuthorSec: parseOptionalFloat(get("dt_prev_author_sec")),
		FilesChanged:    parseIntDefault(get("files_changed")),
		Insertions:      parseIntDefault(get("insertions")),
		Deletions:       parseIntDefault(get("deletions")),
		IsMerge:         get("is_merge") == "true" || get("is_merge") == "1",
		DirsTouched:     splitNonEmpty(get("dirs_touched")),
		FileTypes:       splitNonEmpty(get("file_types")),
		MsgSubject:      get("msg_subject"),
		BatchID:         -1,
	}

	if err := validateCommit(c); err != nil {
		return schema.Commit{}, err
	}
	return c, nil
}

func parseOptionalFloat(s string) float64 {
	if s == "" {
		return -1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return v
}

func parseIntDefault(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateCommit enforces the §7 InvalidRecord rule: required fields
// present, numeric fields finite and non-negative where the record demands
// it.
func validateCommit(c schema.Commit) error {
	if c.Hash == "" {
		return fmt.Errorf("missing hash: %w", schema.ErrInvalidRecord)
	}
	if c.AuthorEmail == "" {
		return fmt.Errorf("missing author_email: %w", schema.ErrInvalidRecord)
	}
	if c.FilesChanged < 0 || c.Insertions < 0 || c.Deletions < 0 {
		return fmt.Errorf("negative size field on commit %s: %w", c.Hash, schema.ErrInvalidRecord)
	}
	if !isFinite(c.DtPrevCommitSec) || !isFinite(c.DtPrevAuthorSec) {
		return fmt.Errorf("non-finite gap field on commit %s: %w", c.Hash, schema.ErrInvalidRecord)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
