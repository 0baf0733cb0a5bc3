package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docvault/docvault/internal/vault"
)

// NewFoldersCommand creates the folders command group.
func NewFoldersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage folders",
	}

	cmd.AddCommand(newFoldersListCommand(opts))
	cmd.AddCommand(newFoldersCreateCommand(opts))
	cmd.AddCommand(newFoldersRenameCommand(opts))
	cmd.AddCommand(newFoldersRemoveCommand(opts))

	return cmd
}

func newFoldersListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			folders, err := svc.ListFolders()
			if err != nil {
				return WrapExitError(ExitFailure, "list folders", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newFolderListView(folders))
		},
	}
}

func newFoldersCreateCommand(opts *RootOptions) *cobra.Command {
	var (
		color string
		icon  string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			f, err := svc.CreateFolder(args[0], vault.FolderColor(color), icon)
			if err != nil {
				return WrapExitError(ExitFailure, "create folder", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newFolderView(f))
		},
	}

	cmd.Flags().StringVar(&color, "color", string(vault.ColorBlue), "cover color (blue|dark-blue|cyan|orange)")
	cmd.Flags().StringVar(&icon, "icon", "file", "icon name")

	return cmd
}

func newFoldersRenameCommand(opts *RootOptions) *cobra.Command {
	var (
		color string
		icon  string
	)

	cmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder, optionally changing its color or icon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			folders, err := svc.ListFolders()
			if err != nil {
				return WrapExitError(ExitFailure, "list folders", err)
			}

			var target *vault.Folder
			for i := range folders {
				if folders[i].ID == args[0] {
					target = &folders[i]
					break
				}
			}
			if target == nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("folder %s", args[0]), vault.ErrFolderNotFound)
			}

			target.Name = args[1]
			if color != "" {
				target.CoverColor = vault.FolderColor(color)
			}
			if icon != "" {
				target.Icon = icon
			}

			if err := svc.UpdateFolder(*target); err != nil {
				return WrapExitError(ExitFailure, "update folder", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newFolderView(*target))
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "new cover color")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon name")

	return cmd
}

func newFoldersRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a folder and every document it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.RemoveFolderCascade(cmd.Context(), args[0]); err != nil {
				var partial *vault.PartialCascadeError
				if errors.As(err, &partial) {
					return WrapExitError(ExitFailure,
						fmt.Sprintf("folder removed but %d document(s) remain orphaned; remove them with 'docs rm'", len(partial.Orphaned)),
						err)
				}
				return WrapExitError(ExitFailure, "remove folder", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(fmt.Sprintf("removed folder %s", args[0]))
		},
	}
}
