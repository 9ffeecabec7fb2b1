package cli

import (
	"github.com/spf13/cobra"
)

func NewNeutralizeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		hint  string
		human string
	)
	cmd := &cobra.Command{
		Use:   "neutralize <spine-id>",
		Short: "Produce or set the neutral rendering of a spine record",
		Long: "Produces a court-safe neutral rendering of the record's content and " +
			"stores it alongside the untouched original. Uses the configured AI " +
			"endpoint when available, falling back to deterministic rules, or " +
			"accepts a human-authored rendering via --set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				if human != "" {
					return a.neutralize.SetHumanNeutral(cmd.Context(), args[0], human)
				}
				rec, err := a.neutralize.NeutralizeRecord(cmd.Context(), args[0], hint)
				if err != nil {
					return err
				}
				return printJSON(rec)
			})
		},
	}
	cmd.Flags().StringVar(&hint, "hint", "", "context hint passed to the neutralizer")
	cmd.Flags().StringVar(&human, "set", "", "store this human-authored neutral rendering verbatim")
	return cmd
}
