package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/store"
)

func addWorkspace(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "List or switch workspace databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := store.NewManager(nil)
			if err != nil {
				return err
			}
			names, err := m.List()
			if err != nil {
				return err
			}
			active := m.Active()
			for _, n := range names {
				if n == active {
					_, _ = color.New(color.Bold).Printf("* %s\n", n)
				} else {
					fmt.Printf("  %s\n", n)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use <name>",
		Short: "Select the workspace later commands operate on",
		Example: `
inbox workspace use archive
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one workspace name")
			}
			m, err := store.NewManager(nil)
			if err != nil {
				return err
			}
			if err := m.SetActive(args[0]); err != nil {
				return err
			}
			// Opening it now surfaces path problems immediately.
			if _, err := m.Get(args[0]); err != nil {
				return err
			}
			fmt.Printf("workspace: %s\n", args[0])
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}
