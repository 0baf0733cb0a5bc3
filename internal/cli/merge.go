package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewMergeCommand creates the merge command.
func NewMergeCommand(opts *RootOptions) *cobra.Command {
	var (
		folderID string
		title    string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "merge <pdf>...",
		Short: "Merge PDF files into one document",
		Long: `Concatenates the pages of the given PDFs in argument order. Inputs
that fail validation are skipped and reported; the command fails when
no input validates.

The result is stored as a new document in --folder, or written to
--out instead of the vault.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raws, err := readInputFiles(args)
			if err != nil {
				return err
			}

			svc, closer, err := openService(opts)
			if err != nil {
				return err
			}
			defer closer()

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			if out != "" {
				pdf, report, err := svc.MergePdfs(raws)
				if err != nil {
					return WrapExitError(ExitFailure, "merge pdfs", err)
				}
				if err := os.WriteFile(out, pdf, 0o644); err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("write %s", out), err)
				}
				return formatter.SuccessAnnotated(
					fmt.Sprintf("wrote %s (%d bytes)", out, len(pdf)),
					report.Dropped(), dropNotes(report, args)...)
			}

			if folderID == "" {
				return WrapExitError(ExitCommandError, "either --folder or --out is required", nil)
			}
			if title == "" {
				title = "Merged document"
			}

			d, report, err := svc.MergeToDocument(cmd.Context(), folderID, title, raws)
			if err != nil {
				return WrapExitError(ExitFailure, "merge", err)
			}
			return formatter.SuccessAnnotated(newDocView(d), report.Dropped(), dropNotes(report, args)...)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "store the merged PDF as a document in this folder")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.Flags().StringVar(&out, "out", "", "write the merged PDF to this file instead of the vault")

	return cmd
}
