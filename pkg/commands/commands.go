// Package commands assembles the inbox CLI.
package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/inbox/pkg/app"
	"tableflip.dev/inbox/pkg/store"
)

var workspaceFlag string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "File, filter, and print task messages from the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "",
		"Workspace database to operate on (defaults to the selected one).")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addDone(topLevel)
	addComment(topLevel)
	addDelete(topLevel)
	addFolders(topLevel)
	addCounts(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWorkspace(topLevel)
	addPrint(topLevel)
	addVersion(topLevel)
}

// newService opens the active (or flag-selected) workspace.
func newService() (*app.Service, error) {
	m, err := store.NewManager(nil)
	if err != nil {
		return nil, err
	}
	s, err := m.Get(workspaceFlag)
	if err != nil {
		return nil, err
	}
	return &app.Service{Store: s}, nil
}
