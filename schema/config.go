package schema

// ClusterMode selects which Torque Clustering variant the pipeline runs.
type ClusterMode string

const (
	// ForwardCluster is the single-pass, left-to-right clusterer (§4.1) and
	// is the production default.
	ForwardCluster ClusterMode = "forward"
	// HierarchicalCluster is the alternative nearest-neighbor merge variant
	// named in spec.md's closing note under §4.1; never selected by RunAll
	// unless the caller asks for it explicitly.
	HierarchicalCluster ClusterMode = "hierarchical"
)

// DatabaseBackend selects the result-cache storage engine.
type DatabaseBackend string

const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// OutputMode selects the report writer's output format.
type OutputMode string

const (
	TextOut    OutputMode = "text"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// ConfigRawInput is the shape viper unmarshals flags/env/config-file into,
// before validation promotes it to a Config. Every field is a primitive or
// a slice of primitives so that mapstructure can decode it directly.
type ConfigRawInput struct {
	ClusterMode   string  `mapstructure:"cluster-mode"`
	Alpha         float64 `mapstructure:"alpha"`
	Beta          float64 `mapstructure:"beta"`
	Gap           float64 `mapstructure:"gap"`
	BreakOnMerge  bool    `mapstructure:"break-on-merge"`
	BreakOnAuthor bool    `mapstructure:"break-on-author"`

	VendorNoiseFactor     float64  `mapstructure:"vendor-noise-factor"`
	WhitespaceNoiseFactor float64  `mapstructure:"whitespace-noise-factor"`
	MinChurnForEdge       float64  `mapstructure:"min-churn-for-edge"`
	PageRankDamping       float64  `mapstructure:"pagerank-damping"`
	PageRankMaxIter       int      `mapstructure:"pagerank-max-iter"`
	KeyDirs               []string `mapstructure:"key-dirs"`
	VendorPatterns        []string `mapstructure:"vendor-patterns"`

	NoveltyCap         float64 `mapstructure:"novelty-cap"`
	SpeedHalfLifeHours float64 `mapstructure:"speed-half-life-hours"`
	MinBatchSize       int     `mapstructure:"min-batch-size"`

	ReleaseProximityDays  float64 `mapstructure:"release-proximity-days"`
	ComplexityScaleFactor float64 `mapstructure:"complexity-scale-factor"`
	MinBatchChurn         float64 `mapstructure:"min-batch-churn"`
	ReleaseCalendar       []int64 `mapstructure:"release-calendar"`

	TimeWindowDays        float64 `mapstructure:"time-window-days"`
	ContributionThreshold float64 `mapstructure:"contribution-threshold"`

	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Color          string `mapstructure:"color"`
}

// Config is the validated, typed runtime configuration. Every pipeline
// stage receives it by value or via a read-only pointer; nothing in the
// core mutates it after ProcessAndValidate returns.
type Config struct {
	ClusterMode   ClusterMode
	Alpha         float64
	Beta          float64
	Gap           float64
	BreakOnMerge  bool
	BreakOnAuthor bool

	VendorNoiseFactor     float64
	WhitespaceNoiseFactor float64
	MinChurnForEdge       float64
	PageRankDamping       float64
	PageRankMaxIter       int
	KeyDirs               map[string]struct{}
	VendorPatterns        []string

	NoveltyCap         float64
	SpeedHalfLifeHours float64
	MinBatchSize       int

	ReleaseProximityDays  float64
	ComplexityScaleFactor float64
	MinBatchChurn         float64
	ReleaseCalendar       []int64

	TimeWindowDays        float64
	ContributionThreshold float64

	CacheBackend   DatabaseBackend
	CacheDBConnect string
	Output         OutputMode
	OutputFile     string
	Width          int
	Workers        int
	Precision      int
	UseColors      bool
}

// Clone returns a deep-enough copy of cfg safe to mutate independently
// (the MCP surface clones a shared base config per request).
func (c *Config) Clone() *Config {
	clone := *c
	clone.KeyDirs = make(map[string]struct{}, len(c.KeyDirs))
	for k := range c.KeyDirs {
		clone.KeyDirs[k] = struct{}{}
	}
	clone.VendorPatterns = append([]string(nil), c.VendorPatterns...)
	clone.ReleaseCalendar = append([]int64(nil), c.ReleaseCalendar...)
	return &clone
}

// DefaultKeyDirs is the fixed vocabulary of architecturally central
// directory names (§4.2.3), case-insensitive.
var DefaultKeyDirs = []string{
	"kernel", "core", "src", "lib", "include", "drivers", "arch", "fs", "net",
	"security", "crypto", "mm", "ipc", "init", "api", "engine", "framework",
	"service", "controller", "model", "database", "config", "auth", "middleware",
}

// DefaultVendorPatterns is the fixed set of vendor/generated path indicators
// (§4.2.1).
var DefaultVendorPatterns = []string{
	"vendor/", "third_party/", "node_modules/", ".min.", "generated/",
	"build/", "dist/", ".lock",
}

// Default numeric knobs, named per §6.
const (
	DefaultAlpha                 = 1.0
	DefaultBeta                  = 0.0
	DefaultGap                   = 1800.0
	DefaultVendorNoiseFactor     = 0.1
	DefaultWhitespaceNoiseFactor = 0.3
	DefaultMinChurnForEdge       = 2.0
	DefaultPageRankDamping       = 0.85
	DefaultPageRankMaxIter       = 100
	DefaultNoveltyCap            = 2.0
	DefaultSpeedHalfLifeHours    = 24.0
	DefaultMinBatchSize          = 1
	DefaultReleaseProximityDays  = 30.0
	DefaultComplexityScaleFactor = 1.0
	DefaultMinBatchChurn         = 1.0
	DefaultTimeWindowDays        = 90.0
	DefaultContributionThreshold = 0.01
	DefaultWorkers               = 4
	DefaultPrecision             = 3
)

// DefaultConfig returns a Config populated with every default named in
// spec.md §6.
func DefaultConfig() *Config {
	keyDirs := make(map[string]struct{}, len(DefaultKeyDirs))
	for _, d := range DefaultKeyDirs {
		keyDirs[d] = struct{}{}
	}
	return &Config{
		ClusterMode:           ForwardCluster,
		Alpha:                 DefaultAlpha,
		Beta:                  DefaultBeta,
		Gap:                   DefaultGap,
		BreakOnMerge:          false,
		BreakOnAuthor:         false,
		VendorNoiseFactor:     DefaultVendorNoiseFactor,
		WhitespaceNoiseFactor: DefaultWhitespaceNoiseFactor,
		MinChurnForEdge:       DefaultMinChurnForEdge,
		PageRankDamping:       DefaultPageRankDamping,
		PageRankMaxIter:       DefaultPageRankMaxIter,
		KeyDirs:               keyDirs,
		VendorPatterns:        append([]string(nil), DefaultVendorPatterns...),
		NoveltyCap:            DefaultNoveltyCap,
		SpeedHalfLifeHours:    DefaultSpeedHalfLifeHours,
		MinBatchSize:          DefaultMinBatchSize,
		ReleaseProximityDays:  DefaultReleaseProximityDays,
		ComplexityScaleFactor: DefaultComplexityScaleFactor,
		MinBatchChurn:         DefaultMinBatchChurn,
		TimeWindowDays:        DefaultTimeWindowDays,
		ContributionThreshold: DefaultContributionThreshold,
		CacheBackend:          SQLiteBackend,
		Output:                TextOut,
		Workers:               DefaultWorkers,
		Precision:             DefaultPrecision,
		UseColors:             true,
	}
}
