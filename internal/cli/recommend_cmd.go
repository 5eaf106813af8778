package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type recommendFlags struct {
	term           string
	credits        int
	strategy       string
	tracks         []string
	interests      []string
	avoidDays      weekdayList
	avoidMorning   bool
	keepLunch      bool
	maxPerDay      int
	maxConsecutive int
	avoidTeam      bool
	preferOnline   bool
	onlineDays     bool
	hard           []string
	constraints    string
	top            int

	interactive bool
	browse      bool
	grid        bool
	explain     bool
}

func newRecommendCmd(app *App) *cobra.Command {
	var f recommendFlags

	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"rec"},
		Short:   "Rank conflict-free timetables for a credit target",
		Long: `Build timetables whose credits land between the target and the target
plus the configured slack (credit_slack, default 3), rank them by how well
they fit your strategy and preferences, and show the best few. Unset options
fall back to the saved profile.

Preferences are soft unless listed in --hard, in which case courses that
break them are never considered. Hard keys: avoid_days, avoid_morning,
keep_lunch, max_per_day, max_consecutive, avoid_team, online_only.`,
		Example: `  tably recommend --credits 15 --strategy MAJOR_FOCUS --track systems
  tably recommend --avoid-day fri --hard avoid_days --grid
  tably recommend --constraints prefs.yaml --browse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req, err := buildRecommendRequest(cmd, &f)
			if err != nil {
				return err
			}

			if f.interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				ok, err := runRecommendWizard(ctx, app, &req)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			stop := func() {}
			if app.interactive() && !f.browse {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Searching timetables...")
			}
			resp, err := app.Recommend.Recommend(ctx, req)
			stop()
			if err != nil {
				return err
			}

			if f.browse && app.interactive() && len(resp.Candidates) > 0 {
				p := tea.NewProgram(newBrowseModel(resp),
					tea.WithAltScreen(),
					tea.WithContext(ctx),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				_, err := p.Run()
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecommendation(resp, formatter.RecommendOptions{
				Grid:        f.grid,
				Breakdown:   f.explain,
				Diagnostics: f.explain,
			}))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.term, "term", "", "Term to plan (defaults to config, profile, or the only imported term)")
	fl.IntVarP(&f.credits, "credits", "c", 0, "Target credits (defaults to the profile)")
	fl.StringVarP(&f.strategy, "strategy", "s", "", "MAJOR_FOCUS, MIX or INTEREST_FOCUS")
	fl.StringSliceVar(&f.tracks, "track", nil, "Major tracks to favor (repeatable)")
	fl.StringSliceVar(&f.interests, "interest", nil, "Interest keywords to favor (repeatable)")
	fl.Var(&f.avoidDays, "avoid-day", "Days to keep free (repeatable)")
	fl.BoolVar(&f.avoidMorning, "avoid-morning", false, "Avoid classes before 10:00")
	fl.BoolVar(&f.keepLunch, "keep-lunch", false, "Keep 12:00-13:00 free")
	fl.IntVar(&f.maxPerDay, "max-per-day", 0, "Maximum classes per day")
	fl.IntVar(&f.maxConsecutive, "max-consecutive", 0, "Maximum back-to-back classes")
	fl.BoolVar(&f.avoidTeam, "avoid-team", false, "Avoid team-project courses")
	fl.BoolVar(&f.preferOnline, "prefer-online", false, "Prefer online and hybrid courses")
	fl.BoolVar(&f.onlineDays, "online-days", false, "Prefer days with only online classes")
	fl.StringSliceVar(&f.hard, "hard", nil, "Preferences to enforce as hard rules (repeatable)")
	fl.StringVar(&f.constraints, "constraints", "", "YAML, JSON or TOML file with constraint settings; flags override it")
	fl.IntVarP(&f.top, "top", "n", 0, "Number of timetables to show (defaults to config)")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Fill in the request with a form")
	fl.BoolVar(&f.browse, "browse", false, "Browse results in a full-screen pager")
	fl.BoolVar(&f.grid, "grid", false, "Show a weekly grid for each timetable")
	fl.BoolVar(&f.explain, "explain", false, "Show score breakdowns and search diagnostics")

	return cmd
}

// buildRecommendRequest merges the constraints file with the flags. Only
// flags that were given override file values or profile defaults.
func buildRecommendRequest(cmd *cobra.Command, f *recommendFlags) (app.RecommendRequest, error) {
	req := app.NewRecommendRequest()
	req.Term = strings.TrimSpace(f.term)
	req.Strategy = f.strategy
	req.Tracks = f.tracks
	req.Interests = f.interests
	req.TopN = f.top

	if f.constraints != "" {
		in, err := loadConstraintsFile(f.constraints)
		if err != nil {
			return req, err
		}
		req.Constraints = in
	}

	flags := cmd.Flags()
	c := &req.Constraints
	if flags.Changed("credits") {
		req.TargetCredits = &f.credits
	}
	if flags.Changed("avoid-day") {
		c.AvoidDays = f.avoidDays.Values()
	}
	if flags.Changed("avoid-morning") {
		c.AvoidMorning = &f.avoidMorning
	}
	if flags.Changed("keep-lunch") {
		c.KeepLunchTime = &f.keepLunch
	}
	if flags.Changed("max-per-day") {
		c.MaxClassesPerDay = &f.maxPerDay
	}
	if flags.Changed("max-consecutive") {
		c.MaxConsecutiveClasses = &f.maxConsecutive
	}
	if flags.Changed("avoid-team") {
		c.AvoidTeamProjects = &f.avoidTeam
	}
	if flags.Changed("prefer-online") {
		c.PreferOnlineClasses = &f.preferOnline
	}
	if flags.Changed("online-days") {
		c.PreferOnlineOnlyDays = &f.onlineDays
	}
	for _, h := range f.hard {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && !c.IsHard(h) {
			c.Hard = append(c.Hard, h)
		}
	}
	return req, nil
}

// loadConstraintsFile reads a constraints document. Unknown keys are
// rejected so a typo never silently drops a preference.
func loadConstraintsFile(path string) (app.ConstraintInput, error) {
	var in app.ConstraintInput
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return in, fmt.Errorf("reading constraints file: %w", err)
	}
	if err := v.UnmarshalExact(&in); err != nil {
		return in, fmt.Errorf("invalid constraints file %s: %w", path, err)
	}
	return in, nil
}
