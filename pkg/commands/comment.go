package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/printers"
)

func addComment(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "comment <task-id> [text...]",
		Short: "Set a task's comment (no text clears it)",
		Example: `
inbox comment TASK-1A2B3C4D waiting on reply
inbox comment TASK-1A2B3C4D
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("expected a task id")
			}
			id := args[0]
			text := strings.Join(args[1:], " ")

			svc, err := newService()
			if err != nil {
				return err
			}
			if err := svc.SetComments(cmd.Context(), id, text); err != nil {
				return err
			}

			tk, err := svc.Store.Tasks.Get(id)
			if err != nil {
				return err
			}
			pp := printers.PrettyPrint{}
			pp.Tasks(tk)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
