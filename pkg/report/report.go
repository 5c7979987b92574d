// Package report renders the currently visible task list into a document
// through an injected templating collaborator, reporting per-stage
// progress so a UI can show how far the export got and where it failed.
package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"tableflip.dev/inbox/pkg/task"
)

// Status is the lifecycle of one pipeline stage.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Stage is one step of the export pipeline.
type Stage struct {
	Name    string
	Status  Status
	Message string
}

// Progress receives a copy of all stages plus percent complete after
// every stage transition.
type Progress func(stages []Stage, percent float64)

// Row is one task mapped into the template's field names.
type Row struct {
	Service  string
	From     string
	Details  string
	Txt      string
	Comments string
}

// Data is what the template renders.
type Data struct {
	Today string
	Title string
	Tasks []Row
}

// TemplateSource fetches the raw template document.
type TemplateSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Renderer is the external templating collaborator.
type Renderer interface {
	Load(template []byte) error
	Render(data Data) ([]byte, error)
}

// ExternalToolError reports which pipeline stage failed and why.
type ExternalToolError struct {
	Stage string
	Err   error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("report: %s: %v", e.Stage, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

var stageNames = []string{
	"Fetching template",
	"Loading template",
	"Preparing data",
	"Rendering document",
	"Generating output file",
}

// Pipeline wires the collaborators for one export run.
type Pipeline struct {
	Source     TemplateSource
	Renderer   Renderer
	OutPath    string
	OnProgress Progress

	// Now is overridable for tests; zero means time.Now.
	Now func() time.Time
}

// Run exports the given (already filtered and sorted) tasks under the
// provided title. A failure marks the failing stage, leaves completed
// stages completed, skips the rest, and returns an *ExternalToolError.
func (p *Pipeline) Run(ctx context.Context, tasks []*task.Task, title string) error {
	stages := make([]Stage, len(stageNames))
	for i, name := range stageNames {
		stages[i] = Stage{Name: name, Status: StatusPending}
	}

	update := func(i int, status Status, message string) {
		stages[i].Status = status
		stages[i].Message = message
		if p.OnProgress != nil {
			completed := 0
			for _, s := range stages {
				if s.Status == StatusCompleted {
					completed++
				}
			}
			p.OnProgress(append([]Stage(nil), stages...), float64(completed)/float64(len(stages))*100)
		}
	}

	run := func(i int, fn func() error) error {
		if err := ctx.Err(); err != nil {
			update(i, StatusFailed, err.Error())
			return &ExternalToolError{Stage: stages[i].Name, Err: err}
		}
		update(i, StatusInProgress, "")
		if err := fn(); err != nil {
			update(i, StatusFailed, err.Error())
			return &ExternalToolError{Stage: stages[i].Name, Err: err}
		}
		update(i, StatusCompleted, "")
		return nil
	}

	var template []byte
	if err := run(0, func() (err error) {
		template, err = p.Source.Fetch(ctx)
		return err
	}); err != nil {
		return err
	}

	if err := run(1, func() error {
		return p.Renderer.Load(template)
	}); err != nil {
		return err
	}

	var data Data
	if err := run(2, func() error {
		data = p.prepare(tasks, title)
		return nil
	}); err != nil {
		return err
	}

	var out []byte
	if err := run(3, func() (err error) {
		out, err = p.Renderer.Render(data)
		return err
	}); err != nil {
		return err
	}

	return run(4, func() error {
		return os.WriteFile(p.OutPath, out, 0o644)
	})
}

func (p *Pipeline) prepare(tasks []*task.Task, title string) Data {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	rows := make([]Row, 0, len(tasks))
	for _, tk := range tasks {
		if tk == nil {
			continue
		}
		rows = append(rows, Row{
			Service:  tk.Service,
			From:     tk.From,
			Details:  tk.Details,
			Txt:      tk.Txt,
			Comments: tk.Comments,
		})
	}
	return Data{
		Today: fmt.Sprintf("%d/%d/%d", now.Day(), int(now.Month()), now.Year()),
		Title: title,
		Tasks: rows,
	}
}
