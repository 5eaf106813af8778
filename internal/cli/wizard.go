package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/cli/formatter"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tablyHuhTheme returns a custom huh theme using the Gruvbox palette.
func tablyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// recommendWizardValues holds the form state as strings, the way huh binds
// inputs. It is seeded from the request first and the profile second.
type recommendWizardValues struct {
	Term           string
	Credits        string
	Strategy       string
	Tracks         string
	Interests      string
	AvoidDays      []string
	AvoidMorning   bool
	KeepLunch      bool
	MaxPerDay      string
	MaxConsecutive string
	AvoidTeam      bool
	PreferOnline   bool
	Hard           []string
	Confirmed      bool
}

func newRecommendWizardValues(req app.RecommendRequest, profile *domain.UserProfile) *recommendWizardValues {
	if profile == nil {
		profile = &domain.UserProfile{}
	}
	c := req.Constraints
	w := &recommendWizardValues{
		Term:      domain.Coalesce(req.Term, profile.DefaultTerm),
		Strategy:  domain.Coalesce(req.Strategy, string(profile.DefaultStrategy), string(domain.StrategyMix)),
		Tracks:    strings.Join(domain.NonEmpty(req.Tracks, profile.Tracks), ", "),
		Interests: strings.Join(domain.NonEmpty(req.Interests, profile.Interests), ", "),
		Hard:      append([]string(nil), c.Hard...),
	}
	switch {
	case req.TargetCredits != nil:
		w.Credits = strconv.Itoa(*req.TargetCredits)
	case profile.DefaultTargetCredits > 0:
		w.Credits = strconv.Itoa(profile.DefaultTargetCredits)
	}
	if len(c.AvoidDays) > 0 {
		w.AvoidDays = append([]string(nil), c.AvoidDays...)
	} else {
		for _, d := range profile.AvoidDays {
			w.AvoidDays = append(w.AvoidDays, d.String())
		}
	}
	w.AvoidMorning = boolOr(c.AvoidMorning, profile.AvoidMorning)
	w.KeepLunch = boolOr(c.KeepLunchTime, profile.KeepLunchTime)
	w.AvoidTeam = boolOr(c.AvoidTeamProjects, false)
	w.PreferOnline = boolOr(c.PreferOnlineClasses, false)
	if c.MaxClassesPerDay != nil {
		w.MaxPerDay = strconv.Itoa(*c.MaxClassesPerDay)
	}
	if c.MaxConsecutiveClasses != nil {
		w.MaxConsecutive = strconv.Itoa(*c.MaxConsecutiveClasses)
	}
	return w
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

// apply writes the form answers back into req. Every answer becomes an
// explicit request value so the form is what the user sees.
func (w *recommendWizardValues) apply(req *app.RecommendRequest) {
	req.Term = strings.TrimSpace(w.Term)
	if n, err := strconv.Atoi(strings.TrimSpace(w.Credits)); err == nil {
		req.TargetCredits = &n
	}
	req.Strategy = w.Strategy
	req.Tracks = splitCSV(w.Tracks)
	req.Interests = splitCSV(w.Interests)

	c := &req.Constraints
	c.AvoidDays = append([]string{}, w.AvoidDays...)
	c.AvoidMorning = &w.AvoidMorning
	c.KeepLunchTime = &w.KeepLunch
	c.AvoidTeamProjects = &w.AvoidTeam
	c.PreferOnlineClasses = &w.PreferOnline
	c.MaxClassesPerDay = optionalInt(w.MaxPerDay)
	c.MaxConsecutiveClasses = optionalInt(w.MaxConsecutive)
	c.Hard = append([]string(nil), w.Hard...)
}

func optionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func recommendWizardForm(w *recommendWizardValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Term").Placeholder("2026-fall").Value(&w.Term),
			creditsInput("Target Credits", &w.Credits),
			strategySelect(&w.Strategy),
			listInput("Major Tracks", "systems, theory", &w.Tracks),
			listInput("Interests", "design, music", &w.Interests),
		),
		huh.NewGroup(
			weekdayMultiSelect("Days to Keep Free", &w.AvoidDays),
			huh.NewConfirm().Title("Avoid classes before 10:00?").Value(&w.AvoidMorning),
			huh.NewConfirm().Title("Keep 12:00-13:00 free?").Value(&w.KeepLunch),
		),
		huh.NewGroup(
			huh.NewInput().Title("Max Classes per Day").Placeholder("blank for no limit").
				Value(&w.MaxPerDay).Validate(validateOptionalLimit),
			huh.NewInput().Title("Max Back-to-Back Classes").Placeholder("blank for no limit").
				Value(&w.MaxConsecutive).Validate(validateOptionalLimit),
			huh.NewConfirm().Title("Avoid team-project courses?").Value(&w.AvoidTeam),
			huh.NewConfirm().Title("Prefer online classes?").Value(&w.PreferOnline),
		),
		huh.NewGroup(
			hardRuleMultiSelect(&w.Hard),
			huh.NewConfirm().Title("Search now?").Affirmative("Search").Negative("Cancel").Value(&w.Confirmed),
		),
	).WithTheme(tablyHuhTheme()).WithShowHelp(false)
}

// runRecommendWizard fills req through a form seeded from the saved profile.
// It reports false when the user cancels.
func runRecommendWizard(ctx context.Context, a *App, req *app.RecommendRequest) (bool, error) {
	profile, err := a.Profile.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	w := newRecommendWizardValues(*req, profile)
	w.Confirmed = true

	if err := recommendWizardForm(w).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	if !w.Confirmed {
		return false, nil
	}
	w.apply(req)
	return true, nil
}
