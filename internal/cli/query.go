package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"casespine/internal/domain"
)

func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		counterpart, source, search string
		from, to                    string
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query spine records",
		Long: "Lists spine records in chronological order. Records without a " +
			"confirmed timestamp sort last and are excluded from date-range queries.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				recs, err := queryRecords(cmd, a, counterpart, source, search, from, to)
				if err != nil {
					return err
				}
				return printJSON(recs)
			})
		},
	}
	cmd.Flags().StringVar(&counterpart, "counterpart", "", "filter to one conversation partner")
	cmd.Flags().StringVar(&source, "source", "", "filter to one source file id")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive substring search")
	cmd.Flags().StringVar(&from, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "range end (YYYY-MM-DD, inclusive)")
	return cmd
}

func queryRecords(cmd *cobra.Command, a *app, counterpart, source, search, from, to string) ([]*domain.SpineRecord, error) {
	ctx := cmd.Context()
	switch {
	case search != "":
		return a.spine.Search(ctx, search)
	case counterpart != "":
		return a.spine.ListByCounterpart(ctx, counterpart)
	case source != "":
		return a.spine.ListBySource(ctx, source)
	case from != "" || to != "":
		fromT, toT, err := parseRange(from, to)
		if err != nil {
			return nil, err
		}
		return a.spine.ListRange(ctx, fromT, toT)
	default:
		return a.spine.ListAll(ctx)
	}
}

// parseRange widens day-granular bounds to cover the full days named: the
// start is midnight UTC and the end is the last instant of its day.
func parseRange(from, to string) (time.Time, time.Time, error) {
	fromT := time.Time{}
	toT := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --from: %w", err)
		}
		fromT = t.UTC()
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --to: %w", err)
		}
		toT = t.UTC().Add(24*time.Hour - time.Second)
	}
	return fromT, toT, nil
}
