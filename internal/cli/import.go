package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var reimport bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Ingest a communication export into the spine",
		Long: `Parse a CSV export, categorize each record, and append new records to
the spine. Re-importing a known file is safe: record-level deduplication
guarantees zero net change, but it must be confirmed with --reimport.

The summary always reports inserted, skipped and row-level errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			return withApp(rootOpts, func(a *app) error {
				existing, err := a.importSvc.ExistingSource(cmd.Context(), content)
				if err != nil {
					return err
				}
				if existing != nil && !reimport {
					fmt.Fprintf(cmd.OutOrStdout(),
						"file already imported as %s (%s); re-run with --reimport to confirm\n",
						existing.ID, existing.Filename)
					return nil
				}
				res, err := a.importSvc.Import(cmd.Context(), filepath.Base(args[0]), content)
				if err != nil {
					return err
				}
				return printJSON(res)
			})
		},
	}

	cmd.Flags().BoolVar(&reimport, "reimport", false, "confirm re-import of an already-known file")
	return cmd
}
