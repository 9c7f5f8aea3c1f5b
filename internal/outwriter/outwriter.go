// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/fairdev/fds/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core pipeline's results.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDevelopers prints ranked developer results using the configured
// output format.
func (ow *OutWriter) WriteDevelopers(results []schema.DeveloperResult, cfg *schema.Config, duration time.Duration) error {
	return PrintDeveloperResults(results, cfg, duration)
}

// GetMaxTablePathWidth calculates the maximum width for the author-email
// column in table output, based on terminal width and an override.
func GetMaxTablePathWidth(cfg *schema.Config) int {
	var termWidth int

	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for Rank + FDS + AvgEffort + AvgImportance + Commits
	// columns with borders/padding.
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
