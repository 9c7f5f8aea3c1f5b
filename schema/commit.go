// Package schema defines the data model for the Fair Developer Score pipeline.
package schema

// Commit is the immutable input record consumed by every pipeline stage.
// Fields mirror the documented commit record: a hash, an author, a
// timestamp, and the raw size/shape of the change.
type Commit struct {
	Hash             string          // opaque, unique identifier
	AuthorEmail      string          // normalized lowercase
	CommitTSUTC      int64           // seconds since epoch
	DtPrevCommitSec  float64         // seconds since the previous commit in the stream; -1 if absent
	DtPrevAuthorSec  float64         // seconds since this author's previous commit; -1 if absent
	FilesChanged     int             // non-negative
	Insertions       int             // non-negative
	Deletions        int             // non-negative
	IsMerge          bool            //
	DirsTouched      []string        // directories touched by this commit, may be empty
	FileTypes        []string        // file extensions touched, may be empty
	MsgSubject       string          // short commit message subject, may be empty

	// BatchID is assigned by the Torque Clusterer (C1) and is -1 until then.
	BatchID int

	// Derived fields attached by the Preprocessor (C2).
	NoiseFactor         float64
	EffectiveChurn      float64
	DirectoryCentrality float64
	NewFileLines        int
	KeyPathLines        int

	// Derived scalars attached by the Effort Scorer (C3) and Importance
	// Scorer (C4).
	Effort     float64
	Importance float64
}

// HasPrevCommitGap reports whether DtPrevCommitSec carries a real value.
func (c Commit) HasPrevCommitGap() bool {
	return c.DtPrevCommitSec >= 0
}

// HasPrevAuthorGap reports whether DtPrevAuthorSec carries a real value.
func (c Commit) HasPrevAuthorGap() bool {
	return c.DtPrevAuthorSec >= 0
}

// RawChurn is insertions+deletions before any noise discount.
func (c Commit) RawChurn() int {
	return c.Insertions + c.Deletions
}

// Contribution is the per-commit product of effort and importance (C5),
// clamped to be non-negative.
type Contribution struct {
	Hash        string
	AuthorEmail string
	CommitTSUTC int64
	BatchID     int
	Value       float64
}
