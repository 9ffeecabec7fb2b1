package cli

import (
	"github.com/spf13/cobra"

	"casespine/internal/domain"
	timelineuc "casespine/internal/usecase/timeline"
)

func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Curate judge-facing timeline events",
	}
	cmd.AddCommand(newTimelineAddCommand(rootOpts))
	cmd.AddCommand(newTimelineLinkCommand(rootOpts))
	cmd.AddCommand(newTimelinePromoteCommand(rootOpts))
	cmd.AddCommand(newTimelineStatusCommand(rootOpts))
	cmd.AddCommand(newTimelineExhibitCommand(rootOpts))
	cmd.AddCommand(newTimelineListCommand(rootOpts))
	return cmd
}

func newTimelineAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		date, lane, title, description, status string
		spineRefs, exhibitRefs                 []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a timeline event",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				e, err := a.timeline.Build(cmd.Context(), timelineuc.BuildArgs{
					Date:        date,
					Lane:        lane,
					Title:       title,
					Description: description,
					Status:      domain.EventStatus(status),
					SpineRefs:   spineRefs,
					ExhibitRefs: exhibitRefs,
				})
				if err != nil {
					return err
				}
				return printJSON(e)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&lane, "lane", "", "lane identifier")
	cmd.Flags().StringVar(&title, "title", "", "event title")
	cmd.Flags().StringVar(&description, "description", "", "neutral summary, never raw spine text")
	cmd.Flags().StringVar(&status, "status", "", "status (defaults to asserted)")
	cmd.Flags().StringSliceVar(&spineRefs, "spine-ref", nil, "spine record id (repeatable)")
	cmd.Flags().StringSliceVar(&exhibitRefs, "exhibit-ref", nil, "exhibit code (repeatable)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("lane")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTimelineLinkCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "link <event-id> <spine-id>...",
		Short: "Merge additional spine references into an event",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				e, err := a.timeline.LinkSpineRecords(cmd.Context(), args[0], args[1:])
				if err != nil {
					return err
				}
				return printJSON(e)
			})
		},
	}
}

func newTimelinePromoteCommand(rootOpts *RootOptions) *cobra.Command {
	var lane, title, description string
	cmd := &cobra.Command{
		Use:   "promote <spine-id>...",
		Short: "Promote spine records into a new event dated at their earliest timestamp",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				e, err := a.timeline.Promote(cmd.Context(), args, lane, title, description)
				if err != nil {
					return err
				}
				return printJSON(e)
			})
		},
	}
	cmd.Flags().StringVar(&lane, "lane", "", "lane identifier")
	cmd.Flags().StringVar(&title, "title", "", "event title")
	cmd.Flags().StringVar(&description, "description", "", "neutral summary")
	_ = cmd.MarkFlagRequired("lane")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTimelineStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <event-id> <asserted|denied|withdrawn|pending|resolved|fact>",
		Short: "Set an event's status label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				return a.timeline.SetStatus(cmd.Context(), args[0], domain.EventStatus(args[1]))
			})
		},
	}
}

func newTimelineExhibitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exhibit <event-id> <exhibit-code>",
		Short: "Attach an exhibit code and record the cross-reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				e, err := a.timeline.PromoteExhibit(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return printJSON(e)
			})
		},
	}
}

func newTimelineListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List timeline events in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				events, err := a.timeline.List(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(events)
			})
		},
	}
}
