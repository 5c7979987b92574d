package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/printers"
)

func addCounts(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show the per-folder badge tallies",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			tally, err := svc.Counts(cmd.Context())
			if err != nil {
				return err
			}
			folders, err := svc.Folders(cmd.Context())
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{}
			pp.Title(svc.Store.Name())
			pp.Counts(tally, folders)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
