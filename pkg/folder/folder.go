// Package folder defines the user-named bucket documents tasks are filed into.
package folder

import (
	"fmt"
	"strings"
)

// Folder is a user-defined named bucket. The id is derived from the name
// at creation time and is stable afterwards; renaming changes only Name.
type Folder struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Schema int    `json:"schema"`
}

// DeriveID maps a display name to a folder id: uppercased with every
// non-alphanumeric rune stripped.
func DeriveID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the document constraints.
func (f *Folder) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("folder: id required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("folder: name required")
	}
	return nil
}

// Key is the primary key the store files the document under.
func (f *Folder) Key() string {
	return f.ID
}

// Clone returns an independent copy.
func (f *Folder) Clone() *Folder {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
