// Package schema tracks per-collection document versions and the ordered
// migration chain that upgrades stored documents to the current shape.
//
// Migrations run over the raw decoded JSON document, before the value is
// bound to a typed struct, so older documents with renamed or missing
// fields can be repaired without the typed layer ever seeing them. Every
// migration must be total (it never fails) and safe to re-apply.
package schema

// Doc is a raw decoded JSON document.
type Doc = map[string]any

// Migration upgrades a document from version N to N+1.
type Migration func(Doc) Doc

// Chain is the full migration history for one collection. Steps[i]
// upgrades a version-i document to version i+1; the current version is
// len(Steps).
type Chain struct {
	Name  string
	Steps []Migration
}

// Current is the version documents are written at.
func (c Chain) Current() int {
	return len(c.Steps)
}

// Apply upgrades doc to the current version and stamps it. Documents with
// no schema field are treated as version 0. Documents already at (or past)
// the current version pass through untouched apart from the stamp, so
// re-applying is a no-op.
func (c Chain) Apply(doc Doc) Doc {
	if doc == nil {
		return nil
	}
	from := docVersion(doc)
	for v := from; v < c.Current(); v++ {
		doc = c.Steps[v](doc)
	}
	doc["schema"] = c.Current()
	return doc
}

// Outdated reports whether doc was written under an older version.
func (c Chain) Outdated(doc Doc) bool {
	return docVersion(doc) < c.Current()
}

func docVersion(doc Doc) int {
	switch v := doc["schema"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
