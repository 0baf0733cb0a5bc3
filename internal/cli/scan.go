package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docvault/docvault/internal/pipeline"
)

// NewScanCommand creates the scan command.
func NewScanCommand(opts *RootOptions) *cobra.Command {
	var (
		folderID string
		title    string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "scan <image>...",
		Short: "Compose images into a single PDF document",
		Long: `Normalizes each image (bounded to 1024x1400, flattened onto white,
re-encoded as JPEG) and lays one per A4 page. Images that cannot be
decoded are skipped and reported; the command fails only when no
image survives.

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
				pdf, report, err := svc.ComposePdfFromImages(raws)
				if err != nil {
					return WrapExitError(ExitFailure, "compose pdf", err)
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
				title = "Scanned document"
			}

			d, report, err := svc.ScanToDocument(cmd.Context(), folderID, title, raws)
			if err != nil {
				return WrapExitError(ExitFailure, "scan", err)
			}
			return formatter.SuccessAnnotated(newDocView(d), report.Dropped(), dropNotes(report, args)...)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "store the PDF as a document in this folder")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.Flags().StringVar(&out, "out", "", "write the PDF to this file instead of the vault")

	return cmd
}

// readInputFiles loads every named file, failing fast on the first
// unreadable path. Unreadable is a caller mistake, undecodable content
// is a pipeline outcome; the two fail differently on purpose.
func readInputFiles(paths []string) ([][]byte, error) {
	raws := make([][]byte, 0, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("read %s", p), err)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// dropNotes pairs dropped input indexes back with their file names.
func dropNotes(report *pipeline.Report, paths []string) []string {
	var notes []string
	for _, i := range report.Dropped() {
		if i < len(paths) {
			notes = append(notes, fmt.Sprintf("skipped %s: not decodable", paths[i]))
		}
	}
	return notes
}
