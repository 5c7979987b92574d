package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/fatih/color"

	"tableflip.dev/inbox/pkg/printers"
)

func addFolders(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFolders(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name...>",
		Short: "Create a folder; the id derives from the name",
		Example: `
inbox folders add Urgent Q2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("expected a folder name")
			}
			name := strings.Join(args, " ")

			svc, err := newService()
			if err != nil {
				return err
			}
			f, err := svc.SaveFolder(cmd.Context(), "", name)
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{}
			pp.Title("added")
			_, _ = color.New(color.Faint).Printf("  %s (%s)\n\n", f.Name, f.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <folder-id> <name...>",
		Short: "Rename a folder; the id stays stable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("expected a folder id and a new name")
			}
			id := args[0]
			name := strings.Join(args[1:], " ")

			svc, err := newService()
			if err != nil {
				return err
			}
			if _, err := svc.SaveFolder(cmd.Context(), id, name); err != nil {
				return err
			}
			return listFolders(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Delete a folder; its tasks keep their filing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one folder id")
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			return svc.DeleteFolder(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <task-id> [folder-id]",
		Short: "Refile a task; no folder id refiles to the default",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("expected a task id and an optional folder id")
			}
			folderID := ""
			if len(args) == 2 {
				folderID = args[1]
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			if err := svc.MoveToFolder(cmd.Context(), args[0], folderID); err != nil {
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
	})

	topLevel.AddCommand(cmd)
}

func listFolders(cmd *cobra.Command) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	folders, err := svc.Folders(cmd.Context())
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("folders")
	if len(folders) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Print(" none\n\n")
		return nil
	}
	tbl := uitable.New()
	tbl.AddRow("ID", "NAME")
	for _, f := range folders {
		tbl.AddRow(f.ID, f.Name)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}
