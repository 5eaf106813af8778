package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/charmbracelet/huh"
)

const maxFormCredits = 60

// creditsInput returns a huh.Input for a target credit count.
func creditsInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("15").
		Value(value).
		Validate(validateCredits)
}

// listInput returns a huh.Input for a comma-separated list.
func listInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description("Comma-separated, blank for none").
		Placeholder(placeholder).
		Value(value)
}

func strategySelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Strategy").
		Options(
			huh.NewOption("Major focus (favor your tracks)", string(domain.StrategyMajorFocus)),
			huh.NewOption("Mix", string(domain.StrategyMix)),
			huh.NewOption("Interest focus (favor your interests)", string(domain.StrategyInterestFocus)),
		).
		Value(value)
}

func weekdayMultiSelect(title string, value *[]string) *huh.MultiSelect[string] {
	options := make([]huh.Option[string], 0, len(domain.AllWeekdays))
	for _, d := range domain.AllWeekdays {
		options = append(options, huh.NewOption(d.String(), d.String()))
	}
	return huh.NewMultiSelect[string]().
		Title(title).
		Options(options...).
		Value(value)
}

func hardRuleMultiSelect(value *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().
		Title("Enforce as hard rules").
		Description("Courses breaking these are never considered").
		Options(
			huh.NewOption("Avoided days", app.HardKeyAvoidDays),
			huh.NewOption("No mornings", app.HardKeyAvoidMorning),
			huh.NewOption("Lunch break", app.HardKeyKeepLunch),
			huh.NewOption("Classes per day", app.HardKeyMaxPerDay),
			huh.NewOption("Back-to-back limit", app.HardKeyMaxConsecutive),
			huh.NewOption("No team projects", app.HardKeyAvoidTeam),
			huh.NewOption("Online only", app.HardKeyOnlineOnly),
		).
		Value(value)
}

func validateCredits(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 || v > maxFormCredits {
		return fmt.Errorf("enter a number between 1 and %d", maxFormCredits)
	}
	return nil
}

// validateOptionalLimit accepts empty or a positive integer.
func validateOptionalLimit(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number or leave blank")
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
