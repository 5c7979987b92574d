package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <task-id>...",
		Short: "Delete tasks permanently",
		Example: `
inbox delete TASK-1A2B3C4D
inbox delete TASK-1A2B3C4D TASK-5E6F7A8B
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("expected at least one task id")
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := svc.DeleteTask(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Printf("deleted %s\n", id)
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
