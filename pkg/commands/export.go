package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/transfer"
)

func addExport(topLevel *cobra.Command) {
	out := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workspace to a JSON file",
		Example: `
inbox export
inbox export --out backup.json
inbox -w archive export
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			snap, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = transfer.Filename(svc.Store.Name())
			}
			if err := transfer.WriteFile(snap, path); err != nil {
				return err
			}
			fmt.Printf("wrote %d tasks and %d folders to %s\n", len(snap.Tasks), len(snap.Folders), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to <workspace>-data.json).")
	topLevel.AddCommand(cmd)
}
