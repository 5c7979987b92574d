package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/commands/options"
	"tableflip.dev/inbox/pkg/printers"
	"tableflip.dev/inbox/pkg/task"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "File a new task",
		Example: `
inbox add --from SECMAR --service ELEC --number 456 --ref DEF --code-day 150223
inbox add --from 3BN --service PROP --number 7 --ref ABC --code-day 010124 --folder URGENT
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to.From == "" || to.Service == "" {
				return errors.New("--from and --service are required")
			}
			date, err := to.GetDate()
			if err != nil {
				return err
			}
			code := task.Code{Number: to.Number, Ref: to.Ref, Day: to.CodeDay}
			if _, err := task.ParseCode(code.Compose()); err != nil {
				return err
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			tk, err := svc.AddTask(cmd.Context(), to.From, to.Service, code, date, to.Details, to.Folder)
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{ShowID: true}
			pp.Title("added")
			pp.Tasks(tk)
			return nil
		},
	}

	options.AddTaskArgs(cmd, to)
	topLevel.AddCommand(cmd)
}
