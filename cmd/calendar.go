package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/takt/pkg/auth"
	"github.com/harrisonrobin/takt/pkg/colors"
	"github.com/harrisonrobin/takt/pkg/config"
	"github.com/harrisonrobin/takt/pkg/google"
	"github.com/harrisonrobin/takt/pkg/index"
)

var calendarName string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Google Calendar commands",
}

var calendarPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Create or update one all-day event per task",
	Args:  cobra.NoArgs,
	RunE:  runCalendarPush,
}

var calendarAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Discard the cached token and sign in again",
	Args:  cobra.NoArgs,
	RunE:  runCalendarAuth,
}

var calendarSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Store the calendar used by push",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarSet,
}

func init() {
	calendarPushCmd.Flags().StringVar(&calendarName, "calendar", "", "calendar name (default from config)")
	calendarCmd.AddCommand(calendarPushCmd, calendarAuthCmd, calendarSetCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarPush(cmd *cobra.Command, _ []string) error {
	e, err := setup("calendar")
	if err != nil {
		return err
	}
	p, err := e.plan()
	if err != nil {
		return err
	}
	palette, err := colors.ParsePalette(e.cfg.Palette)
	if err != nil {
		return err
	}

	name := e.cfg.Calendar
	if calendarName != "" {
		name = calendarName
	}

	idx, err := index.NewEventIndex()
	if err != nil {
		e.log.Warnf("failed to initialize event index: %v", err)
		idx = nil
	}

	client, err := google.NewClient(cmd.Context(), name, idx, e.log)
	if err != nil {
		return fmt.Errorf("google calendar: %w", err)
	}
	res, pushErr := client.Push(cmd.Context(), p.ID, p.Tasks, colors.Assign(p.Tasks, palette))
	if idx != nil {
		if err := idx.Save(); err != nil {
			e.log.Warnf("failed to save event index: %v", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d synced, %d skipped, %d failed\n", name, res.Synced, res.Skipped, res.Failed)
	return pushErr
}

func runCalendarAuth(cmd *cobra.Command, _ []string) error {
	e, err := setup("auth")
	if err != nil {
		return err
	}
	if err := auth.Reauthorize(cmd.Context(), google.Scopes, e.log); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Authorized.")
	return nil
}

func runCalendarSet(cmd *cobra.Command, args []string) error {
	e, err := setup("config")
	if err != nil {
		return err
	}
	e.cfg.Calendar = args[0]
	if cfgPath != "" {
		err = config.SaveTo(cfgPath, e.cfg)
	} else {
		err = config.Save(e.cfg)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Calendar set to %q\n", args[0])
	return nil
}
