package main

import (
	"github.com/spf13/cobra"

	"members-service/internal/model"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show organization members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return opts.render(cmd, app)
		},
	}
}

func newEditCmd(opts *options) *cobra.Command {
	var (
		name  string
		email string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "edit <member-id>",
		Short: "Change member name and role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if cmd.Flags().Changed("role") && !model.Role(role).Valid() {
				return errInvalidRole(role)
			}

			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ws := app.Workspace

			if err := ws.OpenEdit(id); err != nil {
				return err
			}
			draft, err := ws.Draft(id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				draft.Name = name
			}
			if cmd.Flags().Changed("email") {
				draft.Email = email
			}
			if cmd.Flags().Changed("role") {
				draft.Role = model.Role(role)
			}
			if err := ws.SetDraft(id, draft); err != nil {
				return err
			}

			toast, err := ws.ConfirmEdit(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.finish(cmd, app, toast)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New member name")
	cmd.Flags().StringVar(&email, "email", "", "New member email (kept locally only)")
	cmd.Flags().StringVar(&role, "role", "", "New role: ADMIN, EDITOR or VIEWER")
	cmd.MarkFlagsOneRequired("name", "email", "role")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <member-id>",
		Short: "Remove a member from the organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			app, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if err := app.Workspace.OpenDelete(id); err != nil {
				return err
			}
			toast, err := app.Workspace.ConfirmDelete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.finish(cmd, app, toast)
		},
	}
}
