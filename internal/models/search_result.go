package models

// SearchResults holds the counters collected while walking a tree.
//
// Counters are only ever added to, so per-directory contributions can be
// combined with Merge in whatever order directories were expanded.
type SearchResults struct {
	DirectoriesMatched int // matched entries that are directories
	FilesMatched       int // matched entries that are not directories
	ObjectsScanned     int // children evaluated against the matcher
	DirectoriesPushed  int // directories enqueued for expansion, root included
}

// Merge returns the field-wise sum of r and other.
// It is commutative and associative, and the zero value is its identity.
func (r SearchResults) Merge(other SearchResults) SearchResults {
	return SearchResults{
		DirectoriesMatched: r.DirectoriesMatched + other.DirectoriesMatched,
		FilesMatched:       r.FilesMatched + other.FilesMatched,
		ObjectsScanned:     r.ObjectsScanned + other.ObjectsScanned,
		DirectoriesPushed:  r.DirectoriesPushed + other.DirectoriesPushed,
	}
}

// Matched returns the total number of matches.
func (r SearchResults) Matched() int {
	return r.DirectoriesMatched + r.FilesMatched
}

// Valid reports whether every match was also counted as scanned.
func (r SearchResults) Valid() bool {
	return r.ObjectsScanned >= r.Matched() &&
		r.DirectoriesMatched >= 0 &&
		r.FilesMatched >= 0 &&
		r.DirectoriesPushed >= 0
}
