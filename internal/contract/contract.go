// Package contract holds the shared interfaces and config-processing glue
// between the cobra/viper CLI, the MCP surface, and the core pipeline.
package contract

import (
	"fmt"
	"os"

	"github.com/fairdev/fds/schema"
	"github.com/fatih/color"
)

// ProfileConfig mirrors the teacher's CPU/memory profiling flag handling.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig populates p from the raw --profile flag value: a
// non-empty prefix enables profiling.
func ProcessProfilingConfig(p *ProfileConfig, prefix string) error {
	p.Prefix = prefix
	p.Enabled = prefix != ""
	return nil
}

// ResultStore persists a full pipeline run (batches, developer results)
// keyed by a content hash of the input. It plays the role the teacher's
// CacheStore plays for git-log activity, here for FDS results.
type ResultStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// CacheManager owns the single active ResultStore for the process, the way
// the teacher's CacheManager owns its activity/analysis stores.
type CacheManager interface {
	GetResultStore() ResultStore
	Close() error
}

// SelectOutputFile opens outputFile for writing, or returns os.Stdout when
// outputFile is empty.
func SelectOutputFile(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", outputFile, err)
	}
	return file, nil
}

// LogFatal prints a terse error message to stderr and exits 1.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("error:"), msg, err)
	os.Exit(1)
}

// Warning prints a terse warning message to stderr.
func Warning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("warning:"), msg)
}
