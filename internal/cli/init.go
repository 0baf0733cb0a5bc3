package cli

import (
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the vault with the default folder set",
		Long: `Creates the vault directory for the current owner and seeds the
default folders (Identities, Bills, Passwords, Receipts). A vault
that already has folders is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.BootstrapDefaults(); err != nil {
				return WrapExitError(ExitFailure, "initialize vault", err)
			}

			folders, err := svc.ListFolders()
			if err != nil {
				return WrapExitError(ExitFailure, "list folders", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newFolderListView(folders))
		},
	}
}
