package schema

// DeveloperResult is the final per-author aggregate produced by the FDS
// Aggregator (C5).
type DeveloperResult struct {
	AuthorEmail    string
	FDS            float64
	AvgEffort      float64
	AvgImportance  float64
	TotalChurn     float64
	TotalFiles     int
	CommitCount    int
	UniqueBatches  int
	FirstCommit    int64
	LastCommit     int64
}
