// Package task defines the filed-message document and its validation rules.
package task

import (
	"fmt"
	"strings"
	"time"
)

// DefaultFolder is the sentinel folder id used for tasks that were never
// filed into a user-defined folder.
const DefaultFolder = "ALL"

const (
	maxComments = 500
	maxDetails  = 200
)

// Task is a single filed message. Date is persisted as epoch milliseconds.
type Task struct {
	ID       string `json:"id"`
	Done     bool   `json:"done"`
	From     string `json:"from"`
	Service  string `json:"service"`
	Txt      string `json:"txt"`
	Date     int64  `json:"date"`
	Comments string `json:"comments,omitempty"`
	Details  string `json:"details,omitempty"`
	Folder   string `json:"folder"`
	Schema   int    `json:"schema"`
}

// New builds a pending task with the given fields. The caller assigns the id.
func New(from, service, txt string, date time.Time) *Task {
	return &Task{
		From:    from,
		Service: service,
		Txt:     txt,
		Date:    date.UnixMilli(),
		Folder:  DefaultFolder,
	}
}

// Time converts the stored epoch-millisecond date. Invalid (zero or
// negative) dates map to the epoch.
func (t *Task) Time() time.Time {
	if t.Date <= 0 {
		return time.UnixMilli(0).UTC()
	}
	return time.UnixMilli(t.Date).UTC()
}

// Day renders the task date as yyyy-MM-dd, the form used for date search
// and date filtering. Empty for invalid dates.
func (t *Task) Day() string {
	if t.Date <= 0 {
		return ""
	}
	return t.Time().Format("2006-01-02")
}

// FieldError reports a document that fails a schema constraint.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("task: field %s: %s", e.Field, e.Reason)
}

// Validate checks every schema constraint on the document. The first
// violation is returned as a *FieldError.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return &FieldError{Field: "id", Reason: "required"}
	}
	if strings.TrimSpace(t.From) == "" {
		return &FieldError{Field: "from", Reason: "required"}
	}
	if strings.TrimSpace(t.Service) == "" {
		return &FieldError{Field: "service", Reason: "required"}
	}
	if _, err := ParseCode(t.Txt); err != nil {
		return &FieldError{Field: "txt", Reason: "format must be NNN/CCC/DDMMYY"}
	}
	if t.Date <= 0 {
		return &FieldError{Field: "date", Reason: "a valid date is required"}
	}
	if len(t.Comments) > maxComments {
		return &FieldError{Field: "comments", Reason: fmt.Sprintf("cannot exceed %d characters", maxComments)}
	}
	if len(t.Details) > maxDetails {
		return &FieldError{Field: "details", Reason: fmt.Sprintf("cannot exceed %d characters", maxDetails)}
	}
	if strings.TrimSpace(t.Folder) == "" {
		return &FieldError{Field: "folder", Reason: "required"}
	}
	return nil
}

// Key is the primary key the store files the document under.
func (t *Task) Key() string {
	return t.ID
}

// Clone returns an independent copy.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
