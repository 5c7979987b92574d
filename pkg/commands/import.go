package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/printers"
	"tableflip.dev/inbox/pkg/transfer"
)

func addImport(topLevel *cobra.Command) {
	keep := ""

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON export into the workspace",
		Long: `Merge a JSON export into the workspace. Records whose id is free are
inserted; identical records are skipped; records whose id exists with
different contents are reported as conflicts. Pass --keep to resolve
every conflict the same way, or omit it to list them and decide later.`,
		Example: `
inbox import team-data.json
inbox import team-data.json --keep new
inbox import team-data.json --keep original
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one file")
			}
			var choice transfer.Choice
			switch keep {
			case "":
			case string(transfer.KeepOriginal), string(transfer.KeepNew):
				choice = transfer.Choice(keep)
			default:
				return fmt.Errorf("bad --keep %q: want original or new", keep)
			}

			snap, err := transfer.ReadFile(args[0])
			if err != nil {
				return err
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			conflicts, err := svc.Import(cmd.Context(), snap)
			if err != nil {
				return err
			}
			if len(conflicts) == 0 {
				fmt.Println("imported with no conflicts")
				return nil
			}

			pp := printers.PrettyPrint{}
			if choice == "" {
				pp.Title(fmt.Sprintf("%d conflicts (not resolved)", len(conflicts)))
				for _, c := range conflicts {
					pp.Conflict(c)
				}
				return nil
			}
			for _, c := range conflicts {
				if err := svc.ResolveConflict(cmd.Context(), c, choice); err != nil {
					return err
				}
			}
			fmt.Printf("resolved %d conflicts keeping the %s side\n", len(conflicts), keep)
			return nil
		},
	}

	cmd.Flags().StringVar(&keep, "keep", "", "Resolve every conflict the same way: original or new.")
	topLevel.AddCommand(cmd)
}
