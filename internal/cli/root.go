// Package cli implements the docvault command tree. The CLI is a thin
// caller of the vault service: it resolves configuration, opens the
// stores, invokes one operation, and renders the result.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Vault   string // vault directory
	Owner   string // owner namespace inside the vault directory
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the docvault CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "docvault",
		Short: "docvault - local-first personal document vault",
		Long: `A local-first personal document vault: organizes documents
(scans, PDFs, text notes) into folders and persists them on-device.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveConfig(cmd, opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Vault, "vault", "", "vault directory (default $HOME/.docvault)")
	cmd.PersistentFlags().StringVar(&opts.Owner, "owner", "", "owner namespace (default \"default\")")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewFoldersCommand(opts))
	cmd.AddCommand(NewDocsCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewMergeCommand(opts))

	return cmd
}

// resolveConfig layers flags over environment variables over the
// optional config file: flags win, then DOCVAULT_* env vars, then
// $HOME/.docvault.yaml, then defaults.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) error {
	v := viper.New()
	v.SetEnvPrefix("docvault")
	v.AutomaticEnv()

	v.SetDefault("owner", "default")
	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault("vault", filepath.Join(home, ".docvault"))
		v.SetConfigName(".docvault")
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
		// Config file is optional; only a malformed one is an error.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.BindPFlag("vault", cmd.Flags().Lookup("vault")); err != nil {
		return err
	}
	if err := v.BindPFlag("owner", cmd.Flags().Lookup("owner")); err != nil {
		return err
	}

	if opts.Vault == "" {
		opts.Vault = v.GetString("vault")
	}
	if opts.Owner == "" {
		opts.Owner = v.GetString("owner")
	}
	if opts.Vault == "" {
		return fmt.Errorf("no vault directory: set --vault, DOCVAULT_VAULT, or a home directory")
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
