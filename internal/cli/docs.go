package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docvault/docvault/internal/vault"
)

// NewDocsCommand creates the docs command group.
func NewDocsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage documents",
	}

	cmd.AddCommand(newDocsListCommand(opts))
	cmd.AddCommand(newDocsAddCommand(opts))
	cmd.AddCommand(newDocsAddNoteCommand(opts))
	cmd.AddCommand(newDocsEditCommand(opts))
	cmd.AddCommand(newDocsRemoveCommand(opts))

	return cmd
}

func newDocsListCommand(opts *RootOptions) *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, optionally scoped to one folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			docs, err := svc.ListDocuments(cmd.Context(), folderID)
			if err != nil {
				return WrapExitError(ExitFailure, "list documents", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newDocListView(docs))
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "only documents in this folder")

	return cmd
}

func newDocsAddCommand(opts *RootOptions) *cobra.Command {
	var (
		folderID    string
		title       string
		description string
		due         string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a document from an image or PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("read %s", args[0]), err)
			}
			mime := mimeForFile(args[0])

			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			d := vault.NewDocument(vault.SystemClock{}, folderID, title, mime, payload)
			d.Description = description
			d.Tags = vault.NormalizeTags(tags)
			if due != "" {
				dd, err := parseDueDate(due)
				if err != nil {
					return WrapExitError(ExitCommandError, "parse due date", err)
				}
				d.DueDate = &dd
			}

			if err := svc.InsertDocument(cmd.Context(), d); err != nil {
				return WrapExitError(ExitFailure, "add document", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newDocView(d))
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "owning folder id (required)")
	cmd.Flags().StringVar(&title, "title", "", "document title (default: file name)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

func newDocsAddNoteCommand(opts *RootOptions) *cobra.Command {
	var (
		folderID string
		due      string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add-note <title> <text>",
		Short: "Add a text note document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			d := vault.NewDocument(vault.SystemClock{}, folderID, args[0], vault.MimeNote, nil)
			d.Description = args[1]
			d.Tags = vault.NormalizeTags(tags)
			if due != "" {
				dd, err := parseDueDate(due)
				if err != nil {
					return WrapExitError(ExitCommandError, "parse due date", err)
				}
				d.DueDate = &dd
			}

			if err := svc.InsertDocument(cmd.Context(), d); err != nil {
				return WrapExitError(ExitFailure, "add note", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newDocView(d))
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "owning folder id (required)")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

func newDocsEditCommand(opts *RootOptions) *cobra.Command {
	var (
		folderID    string
		title       string
		description string
		due         string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a document's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			d, err := svc.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("document %s", args[0]), err)
			}

			if folderID != "" {
				d.FolderID = folderID
			}
			if title != "" {
				d.Title = title
			}
			if cmd.Flags().Changed("description") {
				d.Description = description
			}
			if cmd.Flags().Changed("tag") {
				d.Tags = vault.NormalizeTags(tags)
			}
			if cmd.Flags().Changed("due") {
				if due == "" {
					d.DueDate = nil
				} else {
					dd, err := parseDueDate(due)
					if err != nil {
						return WrapExitError(ExitCommandError, "parse due date", err)
					}
					d.DueDate = &dd
				}
			}

			if err := svc.UpdateDocument(cmd.Context(), d); err != nil {
				return WrapExitError(ExitFailure, "update document", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(newDocView(d))
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "move to folder id")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date, empty to clear")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replacement tag set (repeatable)")

	return cmd
}

func newDocsRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.RemoveDocument(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "remove document", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(fmt.Sprintf("removed document %s", args[0]))
		},
	}
}

// mimeForFile classifies a payload file by extension. Anything that is
// not a PDF is treated as an image; the pipeline rejects undecodable
// images later with a real error.
func mimeForFile(path string) vault.MimeType {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return vault.MimePDF
	}
	return vault.MimeImage
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
