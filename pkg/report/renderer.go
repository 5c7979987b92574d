package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"text/template"
)

// FileSource fetches the template document from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.Path, err)
	}
	return data, nil
}

// StaticSource serves an in-memory template, typically DefaultTemplate.
type StaticSource struct {
	Raw []byte
}

func (s StaticSource) Fetch(_ context.Context) ([]byte, error) {
	return s.Raw, nil
}

// TextRenderer renders through text/template. It is the default
// collaborator for the CLI path; richer office-document renderers satisfy
// the same interface.
type TextRenderer struct {
	tmpl *template.Template
}

func (r *TextRenderer) Load(raw []byte) error {
	tmpl, err := template.New("report").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}
	r.tmpl = tmpl
	return nil
}

func (r *TextRenderer) Render(data Data) ([]byte, error) {
	if r.tmpl == nil {
		return nil, fmt.Errorf("render: no template loaded")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultTemplate is used when the user supplies no template file.
const DefaultTemplate = `{{.Title}} - {{.Today}}
{{range .Tasks}}
{{.Service}} | {{.From}} | {{.Txt}}
  {{.Details}}
  {{.Comments}}
{{end}}`
