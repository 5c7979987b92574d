package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/commands/options"
	"tableflip.dev/inbox/pkg/printers"
)

func addGet(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	showID := false

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List the tasks a view selects",
		Example: `
inbox get
inbox get -s instance
inbox get -s classed-URGENT --from "SEC*" --sort date --dir desc
inbox get -q elec --search-fields from,service
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, filters, search, fields, srt, err := vo.Resolve()
			if err != nil {
				return err
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			tasks, err := svc.ViewTasks(cmd.Context(), sel, filters, search, fields, srt)
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{ShowID: showID}
			pp.TitleWithCount(sel.String(), len(tasks))
			pp.Tasks(tasks...)
			return nil
		},
	}

	options.AddViewArgs(cmd, vo)
	cmd.Flags().BoolVar(&showID, "id", false, "Show task ids.")
	topLevel.AddCommand(cmd)
}
