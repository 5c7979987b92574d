// Package query derives the ordered, filtered task view the UI renders.
// Everything here is pure: functions take the full task set and produce a
// new slice, so they can run concurrently with themselves and hold no state.
package query

import (
	"fmt"
	"strings"
)

// Bucket is one of the three top-level task groupings.
type Bucket string

const (
	// BucketMain selects every task regardless of state.
	BucketMain Bucket = "main"
	// BucketInstance selects pending (not done) tasks.
	BucketInstance Bucket = "instance"
	// BucketClassed selects done tasks.
	BucketClassed Bucket = "classed"
)

// Selector scopes a view to a bucket, optionally narrowed to one folder.
type Selector struct {
	Bucket Bucket
	Folder string
}

// ParseSelector decodes "<bucket>" or "<bucket>-<folderID>". Folder ids
// never contain dashes (they are derived from names with non-alphanumerics
// stripped), so the first dash is the split point.
func ParseSelector(raw string) (Selector, error) {
	bucket, folderID, _ := strings.Cut(raw, "-")
	switch Bucket(bucket) {
	case BucketMain, BucketInstance, BucketClassed:
		return Selector{Bucket: Bucket(bucket), Folder: folderID}, nil
	default:
		return Selector{}, fmt.Errorf("query: unknown bucket %q", bucket)
	}
}

// String re-encodes the selector.
func (s Selector) String() string {
	if s.Folder == "" {
		return string(s.Bucket)
	}
	return fmt.Sprintf("%s-%s", s.Bucket, s.Folder)
}
