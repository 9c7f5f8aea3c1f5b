package contract

import (
	"fmt"
	"strings"

	"github.com/fairdev/fds/schema"
)

// ValidateDatabaseConnectionString rejects a mysql/postgresql backend with
// no connection string; sqlite and none never need one.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("%s backend requires a connection string: %w", backend, schema.ErrInvalidConfig)
		}
	case schema.SQLiteBackend, schema.NoneBackend:
		// no connection string required
	default:
		return fmt.Errorf("unknown cache backend %q: %w", backend, schema.ErrInvalidConfig)
	}
	return nil
}

// ParseColorFlag interprets the --color flag's yes/no/true/false/1/0 values.
func ParseColorFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "no", "false", "0", "off":
		return false
	default:
		return true
	}
}

// ProcessAndValidate promotes a raw, unmarshalled ConfigRawInput into a
// validated schema.Config, applying defaults for anything left at its zero
// value and rejecting configuration values the clusterer/preprocessor/
// scorers could not run with (§7 InvalidConfig).
func ProcessAndValidate(cfg *schema.Config, input *schema.ConfigRawInput) error {
	*cfg = *schema.DefaultConfig()

	if input.ClusterMode != "" {
		cfg.ClusterMode = schema.ClusterMode(input.ClusterMode)
	}
	if input.Alpha != 0 {
		cfg.Alpha = input.Alpha
	}
	if input.Beta != 0 {
		cfg.Beta = input.Beta
	}
	if input.Gap != 0 {
		cfg.Gap = input.Gap
	}
	cfg.BreakOnMerge = input.BreakOnMerge
	cfg.BreakOnAuthor = input.BreakOnAuthor

	if input.VendorNoiseFactor != 0 {
		cfg.VendorNoiseFactor = input.VendorNoiseFactor
	}
	if input.WhitespaceNoiseFactor != 0 {
		cfg.WhitespaceNoiseFactor = input.WhitespaceNoiseFactor
	}
	if input.MinChurnForEdge != 0 {
		cfg.MinChurnForEdge = input.MinChurnForEdge
	}
	if input.PageRankDamping != 0 {
		cfg.PageRankDamping = input.PageRankDamping
	}
	if input.PageRankMaxIter != 0 {
		cfg.PageRankMaxIter = input.PageRankMaxIter
	}
	if len(input.KeyDirs) > 0 {
		cfg.KeyDirs = make(map[string]struct{}, len(input.KeyDirs))
		for _, d := range input.KeyDirs {
			cfg.KeyDirs[strings.ToLower(d)] = struct{}{}
		}
	}
	if len(input.VendorPatterns) > 0 {
		cfg.VendorPatterns = input.VendorPatterns
	}

	if input.NoveltyCap != 0 {
		cfg.NoveltyCap = input.NoveltyCap
	}
	if input.SpeedHalfLifeHours != 0 {
		cfg.SpeedHalfLifeHours = input.SpeedHalfLifeHours
	}
	if input.MinBatchSize != 0 {
		cfg.MinBatchSize = input.MinBatchSize
	}

	if input.ReleaseProximityDays != 0 {
		cfg.ReleaseProximityDays = input.ReleaseProximityDays
	}
	if input.ComplexityScaleFactor != 0 {
		cfg.ComplexityScaleFactor = input.ComplexityScaleFactor
	}
	if input.MinBatchChurn != 0 {
		cfg.MinBatchChurn = input.MinBatchChurn
	}
	if len(input.ReleaseCalendar) > 0 {
		cfg.ReleaseCalendar = input.ReleaseCalendar
	}

	if input.TimeWindowDays != 0 {
		cfg.TimeWindowDays = input.TimeWindowDays
	}
	if input.ContributionThreshold != 0 {
		cfg.ContributionThreshold = input.ContributionThreshold
	}

	if input.CacheBackend != "" {
		cfg.CacheBackend = schema.DatabaseBackend(input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if input.Output != "" {
		cfg.Output = schema.OutputMode(input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	if input.Workers != 0 {
		cfg.Workers = input.Workers
	}
	if input.Precision != 0 {
		cfg.Precision = input.Precision
	}
	if input.Color != "" {
		cfg.UseColors = ParseColorFlag(input.Color)
	}

	return validateConfig(cfg)
}

func validateConfig(cfg *schema.Config) error {
	if cfg.Alpha < 0 || cfg.Beta < 0 {
		return fmt.Errorf("alpha/beta must be non-negative: %w", schema.ErrInvalidConfig)
	}
	if cfg.Gap <= 0 {
		return fmt.Errorf("gap must be positive: %w", schema.ErrInvalidConfig)
	}
	if cfg.PageRankDamping <= 0 || cfg.PageRankDamping >= 1 {
		return fmt.Errorf("pagerank damping must be in (0,1): %w", schema.ErrInvalidConfig)
	}
	if cfg.PageRankMaxIter <= 0 {
		return fmt.Errorf("pagerank max iterations must be positive: %w", schema.ErrInvalidConfig)
	}
	if cfg.MinBatchSize < 1 {
		return fmt.Errorf("min batch size must be at least 1: %w", schema.ErrInvalidConfig)
	}
	if cfg.NoveltyCap <= 0 {
		return fmt.Errorf("novelty cap must be positive: %w", schema.ErrInvalidConfig)
	}
	if cfg.SpeedHalfLifeHours <= 0 {
		return fmt.Errorf("speed half-life must be positive: %w", schema.ErrInvalidConfig)
	}
	if cfg.ReleaseProximityDays <= 0 {
		return fmt.Errorf("release proximity days must be positive: %w", schema.ErrInvalidConfig)
	}
	if cfg.ComplexityScaleFactor < 0 {
		return fmt.Errorf("complexity scale factor must be non-negative: %w", schema.ErrInvalidConfig)
	}
	if cfg.MinBatchChurn < 0 {
		return fmt.Errorf("min batch churn must be non-negative: %w", schema.ErrInvalidConfig)
	}
	if cfg.TimeWindowDays <= 0 {
		return fmt.Errorf("time window days must be positive: %w", schema.ErrInvalidConfig)
	}
	if cfg.ContributionThreshold < 0 {
		return fmt.Errorf("contribution threshold must be non-negative: %w", schema.ErrInvalidConfig)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1: %w", schema.ErrInvalidConfig)
	}
	if cfg.Precision < 0 {
		return fmt.Errorf("precision must be non-negative: %w", schema.ErrInvalidConfig)
	}
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}
	switch cfg.ClusterMode {
	case schema.ForwardCluster, schema.HierarchicalCluster:
	default:
		return fmt.Errorf("unknown cluster mode %q: %w", cfg.ClusterMode, schema.ErrInvalidConfig)
	}
	switch cfg.Output {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
	default:
		return fmt.Errorf("unknown output mode %q: %w", cfg.Output, schema.ErrInvalidConfig)
	}
	return nil
}
