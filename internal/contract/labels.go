package contract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Relative-tier label constants. FDS has no fixed scale (it is an unbounded
// sum of per-commit contributions), so tiers are assigned relative to the
// top score in the result set being printed, not to an absolute threshold.
const (
	TopValue      = "Top"
	HighValue     = "High"
	ModerateValue = "Moderate"
	LowValue      = "Low"
)

var (
	topColor      = color.New(color.FgGreen, color.Bold)
	highColor     = color.New(color.FgCyan, color.Bold)
	moderateColor = color.New(color.FgYellow)
	lowColor      = color.New(color.FgWhite)
)

// GetPlainLabel buckets score against maxScore into a relative tier.
func GetPlainLabel(score, maxScore float64) string {
	if maxScore <= 0 {
		return LowValue
	}
	ratio := score / maxScore
	switch {
	case ratio >= 0.75:
		return TopValue
	case ratio >= 0.5:
		return HighValue
	case ratio >= 0.25:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns the same tier as GetPlainLabel, colorized for
// console output.
func GetColorLabel(score, maxScore float64) string {
	text := GetPlainLabel(score, maxScore)
	switch text {
	case TopValue:
		return topColor.Sprint(text)
	case HighValue:
		return highColor.Sprint(text)
	case ModerateValue:
		return moderateColor.Sprint(text)
	default:
		return lowColor.Sprint(text)
	}
}

// TruncateEmail shortens an author email to at most maxWidth runes, keeping
// the local part and eliding the domain when it doesn't fit.
func TruncateEmail(email string, maxWidth int) string {
	runes := []rune(email)
	if len(runes) <= maxWidth || maxWidth <= 3 {
		return email
	}
	if at := strings.IndexRune(email, '@'); at > 0 {
		local := email[:at]
		if len(local) <= maxWidth-3 {
			return local + "..."
		}
	}
	return string(runes[:maxWidth-3]) + "..."
}

// GetDBFilePath returns the default SQLite result-cache file path under the
// user's home directory.
func GetDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fds_cache.db"
	}
	return filepath.Join(home, ".fds_cache.db")
}
