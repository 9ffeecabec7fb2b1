package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"casespine/internal/ports"
)

func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		format         string
		out            string
		includePrivate bool
	)

	cmd := &cobra.Command{
		Use:   "export <spine|timeline|full>",
		Short: "Export case data with the privacy partition applied",
		Long: `Export a bundle. "spine" is the full-fidelity disaster-recovery
snapshot. "timeline" and "full" exclude private sticky notes unless
--include-private-notes is passed explicitly.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"spine", "timeline", "full"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				var (
					b   ports.ExportBundle
					err error
				)
				switch args[0] {
				case "spine":
					b, err = a.export.SpineBackup(cmd.Context())
				case "timeline":
					b, err = a.export.Timeline(cmd.Context(), includePrivate)
				case "full":
					b, err = a.export.FullDatabase(cmd.Context(), includePrivate)
				default:
					return fmt.Errorf("unknown export target %q", args[0])
				}
				if err != nil {
					return err
				}
				if out == "" {
					data, err := a.export.Encode(b, format)
					if err != nil {
						return err
					}
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				return a.export.WriteFile(b, format, out)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format (json|csv)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&includePrivate, "include-private-notes", false, "include private sticky notes (explicit opt-in)")
	return cmd
}
