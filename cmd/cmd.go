package cmd

import (
	"github.com/fairdev/fds/core"
	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scoreCmd runs the full pipeline and prints ranked developer results.
var scoreCmd = &cobra.Command{
	Use:     "score <commits-path>",
	Short:   "Score every developer in a commit stream and print the ranked results.",
	Long:    `The score command runs clustering, preprocessing, effort/importance scoring, and FDS aggregation over a commit stream file, then prints the ranked per-developer results.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteScore(rootCtx, args[0], cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot score developers", err)
		}
	},
}

// batchesCmd prints the work-session batches a commit stream clusters into.
var batchesCmd = &cobra.Command{
	Use:     "batches <commits-path>",
	Short:   "Cluster a commit stream into work-session batches and print each batch's stats.",
	Long:    `The batches command runs Torque Clustering over a commit stream and prints each resulting batch's commit count, importance, and effort sum.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteBatches(rootCtx, args[0], cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot cluster batches", err)
		}
	},
}

// graphCmd prints the directory co-change centrality scores for a commit stream.
var graphCmd = &cobra.Command{
	Use:     "graph <commits-path>",
	Short:   "Compute directory co-change centrality for a commit stream.",
	Long:    `The graph command builds the directory co-change graph from a commit stream and prints each directory's PageRank centrality score.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteCentrality(rootCtx, args[0], cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute directory centrality", err)
		}
	},
}

// init defines and binds all flags.
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(batchesCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	cacheMigrateCmd.Flags().Int("target-version", -1, "Migration version to reach: -1 for latest, 0 to roll back every migration")

	rootCmd.PersistentFlags().String("cluster-mode", string(schema.ForwardCluster), "Clustering variant: forward or hierarchical")
	rootCmd.PersistentFlags().Float64("alpha", schema.DefaultAlpha, "Weight applied to the seconds between consecutive commits in the batch distance")
	rootCmd.PersistentFlags().Float64("beta", schema.DefaultBeta, "Weight applied to the line-count difference (|Δinsertions|+|Δdeletions|) in the batch distance")
	rootCmd.PersistentFlags().Float64("gap", schema.DefaultGap, "Batch distance (alpha*seconds + beta*line difference) at or above which a new batch starts")
	rootCmd.PersistentFlags().Bool("break-on-merge", false, "Always start a new batch at a merge commit")
	rootCmd.PersistentFlags().Bool("break-on-author", false, "Always start a new batch on author change")

	rootCmd.PersistentFlags().Float64("vendor-noise-factor", schema.DefaultVendorNoiseFactor, "Churn discount applied to vendor/generated paths")
	rootCmd.PersistentFlags().Float64("whitespace-noise-factor", schema.DefaultWhitespaceNoiseFactor, "Churn discount applied to whitespace-only changes")
	rootCmd.PersistentFlags().Float64("min-churn-for-edge", schema.DefaultMinChurnForEdge, "Minimum effective churn before two directories co-change an edge")
	rootCmd.PersistentFlags().Float64("pagerank-damping", schema.DefaultPageRankDamping, "PageRank damping factor for directory centrality, in (0,1)")
	rootCmd.PersistentFlags().Int("pagerank-max-iter", schema.DefaultPageRankMaxIter, "Maximum PageRank iterations")
	rootCmd.PersistentFlags().StringSlice("key-dirs", schema.DefaultKeyDirs, "Directory names considered architecturally central")
	rootCmd.PersistentFlags().StringSlice("vendor-patterns", schema.DefaultVendorPatterns, "Path substrings marking vendor/generated content")

	rootCmd.PersistentFlags().Float64("novelty-cap", schema.DefaultNoveltyCap, "Cap on the novelty ratio (new-file plus key-path lines over churn)")
	rootCmd.PersistentFlags().Float64("speed-half-life-hours", schema.DefaultSpeedHalfLifeHours, "Half-life in hours for the speed decay factor")
	rootCmd.PersistentFlags().Int("min-batch-size", schema.DefaultMinBatchSize, "Minimum commits a batch must have to count toward effort")

	rootCmd.PersistentFlags().Float64("release-proximity-days", schema.DefaultReleaseProximityDays, "Decay scale in days: release proximity is exp(-days to nearest release / this value)")
	rootCmd.PersistentFlags().Float64("complexity-scale-factor", schema.DefaultComplexityScaleFactor, "Scale factor applied to directory-spread complexity")
	rootCmd.PersistentFlags().Float64("min-batch-churn", schema.DefaultMinBatchChurn, "Minimum effective churn a batch must have to count toward importance")
	rootCmd.PersistentFlags().Int64Slice("release-calendar", nil, "Unix timestamps of release dates, comma-separated")

	rootCmd.PersistentFlags().Float64("time-window-days", schema.DefaultTimeWindowDays, "Only commits within this many days of the latest commit are aggregated (365 or more keeps all)")
	rootCmd.PersistentFlags().Float64("contribution-threshold", schema.DefaultContributionThreshold, "Minimum total FDS a developer needs to be listed")

	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", schema.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", schema.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Result cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
