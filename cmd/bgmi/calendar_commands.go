package main

import (
	"github.com/spf13/cobra"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/terminal"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
)

func newCalCommand(ctx *commandContext) *cobra.Command {
	var today, force, noSave bool

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Print the weekly schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, ctx, app.CalendarOptions{
				ForceUpdate: force,
				Today:       today,
				Save:        !noSave,
			})
		},
	}
	cmd.Flags().BoolVar(&today, "today", false, "Only print today's shows")
	cmd.Flags().BoolVar(&force, "force-update", false, "Fetch the schedule again from the source")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store a fetched schedule")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var today bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the schedule of followed shows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, ctx, app.CalendarOptions{Today: today, Followed: true, Save: true})
		},
	}
	cmd.Flags().BoolVar(&today, "today", false, "Only print today's shows")
	return cmd
}

func runCalendar(cmd *cobra.Command, ctx *commandContext, opts app.CalendarOptions) error {
	env, err := ctx.ensureEnv(cmd.Context())
	if err != nil {
		return err
	}
	view, err := env.Calendar.Calendar(cmd.Context(), opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return terminal.NewRenderer(env.Logger, ctx.renderConfig(env.Config, out)).Render(out, view)
}
