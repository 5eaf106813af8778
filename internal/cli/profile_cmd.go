package cli

import (
	"fmt"

	"github.com/alexanderramin/tably/internal/cli/formatter"
	"github.com/alexanderramin/tably/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change saved recommendation defaults",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profile.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		term, strategy          string
		credits                 int
		tracks, interests       []string
		avoidMorning, keepLunch bool
		avoidDays               weekdayList
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change saved defaults; only the flags given are updated",
		Example: `  tably profile set --credits 15 --strategy MAJOR_FOCUS --track systems
  tably profile set --avoid-day fri --avoid-morning`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var upd service.ProfileUpdate
			if flags.Changed("term") {
				upd.DefaultTerm = &term
			}
			if flags.Changed("credits") {
				upd.DefaultTargetCredits = &credits
			}
			if flags.Changed("strategy") {
				upd.DefaultStrategy = &strategy
			}
			if flags.Changed("track") {
				upd.Tracks = &tracks
			}
			if flags.Changed("interest") {
				upd.Interests = &interests
			}
			if flags.Changed("avoid-morning") {
				upd.AvoidMorning = &avoidMorning
			}
			if flags.Changed("keep-lunch") {
				upd.KeepLunchTime = &keepLunch
			}
			if flags.Changed("avoid-day") {
				days := avoidDays.Values()
				if days == nil {
					days = []string{}
				}
				upd.AvoidDays = &days
			}
			if upd == (service.ProfileUpdate{}) {
				return fmt.Errorf("nothing to update: pass at least one flag")
			}

			p, err := app.Profile.Update(cmd.Context(), upd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&term, "term", "", "Default term")
	f.IntVar(&credits, "credits", 0, "Default target credits")
	f.StringVar(&strategy, "strategy", "", "Default strategy: MAJOR_FOCUS, MIX or INTEREST_FOCUS")
	f.StringSliceVar(&tracks, "track", nil, "Major tracks (repeatable or comma-separated)")
	f.StringSliceVar(&interests, "interest", nil, "Interest keywords (repeatable or comma-separated)")
	f.BoolVar(&avoidMorning, "avoid-morning", false, "Prefer no classes before 10:00")
	f.BoolVar(&keepLunch, "keep-lunch", false, "Prefer 12:00-13:00 kept free")
	f.Var(&avoidDays, "avoid-day", "Days to keep free (repeatable; pass \"\" to clear)")
	return cmd
}
