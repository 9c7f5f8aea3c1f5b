package schema

import "time"

// CacheStatus reports connection and occupancy information for the result
// cache (C6), mirroring the status struct the teacher prints for its own
// activity cache.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}
