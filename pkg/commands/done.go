package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/printers"
)

func addDone(topLevel *cobra.Command) {
	undo := false

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Classify a task (or reopen it with --undo)",
		Example: `
inbox done TASK-1A2B3C4D
inbox done --undo TASK-1A2B3C4D
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one task id")
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			if err := svc.SetDone(cmd.Context(), args[0], !undo); err != nil {
				return err
			}

			tk, err := svc.Store.Tasks.Get(args[0])
			if err != nil {
				return err
			}
			pp := printers.PrettyPrint{}
			pp.Tasks(tk)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task pending again.")
	topLevel.AddCommand(cmd)
}
