// Package printers renders inbox contents for the terminal.
package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/inbox/pkg/folder"
	"tableflip.dev/inbox/pkg/query"
	"tableflip.dev/inbox/pkg/report"
	"tableflip.dev/inbox/pkg/task"
	"tableflip.dev/inbox/pkg/transfer"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" task")
	default:
		_, _ = c.Println(" tasks")
	}
}

// Tasks renders the task table. Done tasks show a filled marker; pending
// tasks an open one.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 48
	tbl.Wrap = true
	if pp.ShowID {
		tbl.AddRow("", "ID", "FROM", "TXT", "DATE", "SERVICE", "FOLDER", "COMMENTS")
	} else {
		tbl.AddRow("", "FROM", "TXT", "DATE", "SERVICE", "FOLDER", "COMMENTS")
	}
	for _, t := range tasks {
		mark := "◦"
		if t.Done {
			mark = "✔"
		}
		day := t.Day()
		if day == "" {
			day = "invalid"
		}
		if pp.ShowID {
			tbl.AddRow(mark, t.ID, t.From, t.Txt, day, t.Service, t.Folder, t.Comments)
		} else {
			tbl.AddRow(mark, t.From, t.Txt, day, t.Service, t.Folder, t.Comments)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)

	d := color.New(color.Faint)
	for _, t := range tasks {
		if t.Details != "" {
			_, _ = d.Printf("  %s: %s\n", t.Txt, t.Details)
		}
	}
	fmt.Println("")
}

// Counts renders the folder badge tallies.
func (pp *PrettyPrint) Counts(tally query.Tally, folders []*folder.Folder) {
	tbl := uitable.New()
	tbl.AddRow("FOLDER", "TOTAL", "PENDING", "DONE")
	tbl.AddRow("(all)", tally.All.Total, tally.All.Pending, tally.All.Done)

	names := make(map[string]string, len(folders))
	for _, f := range folders {
		names[f.ID] = f.Name
	}
	for id, c := range tally.Folders {
		name := names[id]
		if name == "" {
			name = id
		}
		tbl.AddRow(name, c.Total, c.Pending, c.Done)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Conflict renders one import conflict for interactive resolution.
func (pp *PrettyPrint) Conflict(c transfer.Conflict) {
	w := color.New(color.FgHiYellow)
	_, _ = w.Printf("conflict: %s %s\n", c.Type, c.ID)
	fmt.Printf("  existing: %+v\n", c.Original)
	fmt.Printf("  incoming: %+v\n", c.New)
}

// Stages renders the print pipeline progress after a transition.
func (pp *PrettyPrint) Stages(stages []report.Stage, percent float64) {
	for _, s := range stages {
		switch s.Status {
		case report.StatusCompleted:
			g := color.New(color.FgGreen)
			_, _ = g.Printf("  ✔ %s\n", s.Name)
		case report.StatusInProgress:
			fmt.Printf("  … %s\n", s.Name)
		case report.StatusFailed:
			r := color.New(color.FgRed)
			_, _ = r.Printf("  ✘ %s: %s\n", s.Name, s.Message)
		default:
			f := color.New(color.Faint)
			_, _ = f.Printf("    %s\n", s.Name)
		}
	}
	fmt.Printf("  %.0f%%\n\n", percent)
}
