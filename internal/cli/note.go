package cli

import (
	"github.com/spf13/cobra"

	"casespine/internal/domain"
	"casespine/internal/usecase/annotations"
)

func NewNoteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage sticky notes (private by default)",
	}
	cmd.AddCommand(newNoteAddCommand(rootOpts))
	cmd.AddCommand(newNoteListCommand(rootOpts))
	cmd.AddCommand(newNoteEditCommand(rootOpts))
	cmd.AddCommand(newNoteShareCommand(rootOpts))
	cmd.AddCommand(newNoteRmCommand(rootOpts))
	return cmd
}

func newNoteAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		color  string
		shared bool
	)
	cmd := &cobra.Command{
		Use:   "add <spine|timeline|date|lane> <target-id> <text>",
		Short: "Attach a note to a target",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				private := !shared
				n, err := a.notes.Create(cmd.Context(), annotations.CreateArgs{
					TargetType: domain.TargetType(args[0]),
					TargetID:   args[1],
					Text:       args[2],
					Color:      color,
					IsPrivate:  &private,
				})
				if err != nil {
					return err
				}
				return printJSON(n)
			})
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().BoolVar(&shared, "shared", false, "mark the note shareable in exports")
	return cmd
}

func newNoteListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <spine|timeline|date|lane> <target-id>",
		Short: "List notes attached to a target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				notes, err := a.notes.ListFor(cmd.Context(), domain.TargetType(args[0]), args[1])
				if err != nil {
					return err
				}
				return printJSON(notes)
			})
		},
	}
}

func newNoteEditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		text, color string
	)
	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Update a note's text or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				var upd annotations.UpdateArgs
				if cmd.Flags().Changed("text") {
					upd.Text = &text
				}
				if cmd.Flags().Changed("color") {
					upd.Color = &color
				}
				n, err := a.notes.Update(cmd.Context(), args[0], upd)
				if err != nil {
					return err
				}
				return printJSON(n)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "replacement text")
	cmd.Flags().StringVar(&color, "color", "", "replacement color")
	return cmd
}

func newNoteShareCommand(rootOpts *RootOptions) *cobra.Command {
	var private bool
	cmd := &cobra.Command{
		Use:   "share <note-id>",
		Short: "Toggle whether a note appears in shareable exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				isPrivate := private
				n, err := a.notes.Update(cmd.Context(), args[0], annotations.UpdateArgs{IsPrivate: &isPrivate})
				if err != nil {
					return err
				}
				return printJSON(n)
			})
		},
	}
	cmd.Flags().BoolVar(&private, "private", false, "make the note private again instead")
	return cmd
}

func newNoteRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, func(a *app) error {
				return a.notes.Delete(cmd.Context(), args[0])
			})
		},
	}
}
