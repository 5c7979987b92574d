package query

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/inbox/pkg/task"
)

// Field names a searchable task field.
type Field string

const (
	FieldFrom     Field = "from"
	FieldService  Field = "service"
	FieldDate     Field = "date"
	FieldDetails  Field = "details"
	FieldComments Field = "comments"
)

// AllSearchFields is the default global-search field subset.
var AllSearchFields = []Field{FieldFrom, FieldService, FieldDate, FieldDetails, FieldComments}

// Filters holds the per-column filter patterns. String values are
// case-insensitive wildcard patterns where * matches any substring; the
// date filter matches calendar-day equality only.
type Filters struct {
	From    string
	Txt     string
	Details string
	Service string
	Date    *time.Time
}

// Sort names a column and direction. Both must be set for an explicit
// ordering to apply.
type Sort struct {
	Column    string
	Direction string // "asc" or "desc"
}

func (s Sort) active() bool {
	return s.Column != "" && (s.Direction == "asc" || s.Direction == "desc")
}

// View produces the filtered, ordered task list for the given scope.
// Folder restriction applies first, then the bucket predicate, then global
// search, then the per-column filters, all ANDed. Ordering follows the
// explicit sort when set; otherwise input order is preserved, except that
// the pending bucket defaults to oldest-first by date so triage order is
// stable.
func View(tasks []*task.Task, sel Selector, filters Filters, search string, fields []Field, srt Sort) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, tk := range tasks {
		if tk == nil {
			continue
		}
		if sel.Folder != "" && tk.Folder != sel.Folder {
			continue
		}
		switch sel.Bucket {
		case BucketInstance:
			if tk.Done {
				continue
			}
		case BucketClassed:
			if !tk.Done {
				continue
			}
		}
		if search != "" && !matchesSearch(tk, search, fields) {
			continue
		}
		if !matchesFilters(tk, filters) {
			continue
		}
		out = append(out, tk)
	}

	switch {
	case srt.active():
		sortTasks(out, srt)
	case sel.Bucket == BucketInstance:
		// Pending default: oldest first, invalid dates treated as epoch 0.
		sort.SliceStable(out, func(i, j int) bool {
			return clampDate(out[i].Date) < clampDate(out[j].Date)
		})
	}
	return out
}

func matchesSearch(tk *task.Task, search string, fields []Field) bool {
	needle := strings.ToLower(search)
	for _, f := range fields {
		var value string
		switch f {
		case FieldFrom:
			value = tk.From
		case FieldService:
			value = tk.Service
		case FieldDate:
			value = tk.Day()
		case FieldDetails:
			value = tk.Details
		case FieldComments:
			value = tk.Comments
		}
		if value == "" {
			// An empty or unparseable value never matches on that field.
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

func matchesFilters(tk *task.Task, f Filters) bool {
	if !matchesPattern(tk.From, f.From) {
		return false
	}
	if !matchesPattern(tk.Txt, f.Txt) {
		return false
	}
	if !matchesPattern(tk.Details, f.Details) {
		return false
	}
	if !matchesPattern(tk.Service, f.Service) {
		return false
	}
	if f.Date != nil {
		day := tk.Day()
		if day == "" || day != f.Date.Format("2006-01-02") {
			return false
		}
	}
	return true
}

// matchesPattern implements the wildcard filter: * matches any substring,
// every other regex metacharacter in user input is escaped, and the match
// is case-insensitive over the whole value.
func matchesPattern(value, pattern string) bool {
	if pattern == "" {
		return true
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for i, part := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// sortTasks orders tasks by the named column. A task with a null value
// for the column sorts as greater than one with a defined value; ties keep
// their relative order (the sort is stable). Descending negates the
// comparator wholesale, nulls included.
//
// The collator carries per-comparison state, so each sort gets its own;
// independent callers must not need coordination.
func sortTasks(tasks []*task.Task, srt Sort) {
	col := collate.New(language.Und, collate.Loose)
	desc := srt.Direction == "desc"
	sort.SliceStable(tasks, func(i, j int) bool {
		c := compareColumn(col, tasks[i], tasks[j], srt.Column)
		if desc {
			c = -c
		}
		return c < 0
	})
}

func compareColumn(col *collate.Collator, a, b *task.Task, column string) int {
	switch column {
	case "date":
		return compareNullable(a.Date <= 0, b.Date <= 0, func() int {
			switch {
			case a.Date < b.Date:
				return -1
			case a.Date > b.Date:
				return 1
			default:
				return 0
			}
		})
	case "done":
		// true sorts before false: done tasks first in ascending order.
		av, bv := boolRank(a.Done), boolRank(b.Done)
		return av - bv
	default:
		av, bv := stringColumn(a, column), stringColumn(b, column)
		return compareNullable(av == "", bv == "", func() int {
			return col.CompareString(av, bv)
		})
	}
}

func compareNullable(aNull, bNull bool, cmp func() int) int {
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	default:
		return cmp()
	}
}

func boolRank(v bool) int {
	if v {
		return 0
	}
	return 1
}

func stringColumn(tk *task.Task, column string) string {
	switch column {
	case "from":
		return tk.From
	case "txt":
		return tk.Txt
	case "service":
		return tk.Service
	case "details":
		return tk.Details
	case "comments":
		return tk.Comments
	default:
		return ""
	}
}

func clampDate(d int64) int64 {
	if d < 0 {
		return 0
	}
	return d
}
