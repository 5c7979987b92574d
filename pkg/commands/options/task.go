// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"
)

const layoutISO = "2006-01-02"

// TaskOptions captures the fields of the task form.
type TaskOptions struct {
	From       string
	Service    string
	Number     string
	Ref        string
	CodeDay    string
	DateString string
	Details    string
	Folder     string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVar(&o.From, "from", "", "Sender entity, example: SECMAR.")
	cmd.Flags().StringVar(&o.Service, "service", "", "Service tag, example: ELEC.")
	cmd.Flags().StringVar(&o.Number, "number", "", "Reference sequence number; zero-padded to three digits on save.")
	cmd.Flags().StringVar(&o.Ref, "ref", "", "Reference code, example: DEF.")
	cmd.Flags().StringVar(&o.CodeDay, "code-day", "", "Reference date part, six digits DDMMYY.")
	cmd.Flags().StringVar(&o.DateString, "date", "", `Task date, example: --date="2024-06-25". Defaults to today.`)
	cmd.Flags().StringVar(&o.Details, "details", "", "Free text details (max 200 characters).")
	cmd.Flags().StringVar(&o.Folder, "folder", "", "Folder id to file the task under.")
}

// GetDate parses the date flag; empty means now.
func (o *TaskOptions) GetDate() (time.Time, error) {
	if o.DateString == "" {
		return time.Now(), nil
	}
	return time.Parse(layoutISO, o.DateString)
}
