package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return boxStyle.Render(strings.TrimRight(content, "\n"))
}

// TruncID returns the first 8 characters of an id, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func FormatCredits(n int) string {
	if n == 1 {
		return "1 credit"
	}
	return fmt.Sprintf("%d credits", n)
}

// TermLabel shows a placeholder for the unnamed term.
func TermLabel(term string) string {
	if term == "" {
		return Dim("(no term)")
	}
	return StylePurple.Render(term)
}

func DeliveryBadge(d domain.Delivery) string {
	switch d {
	case domain.DeliveryOnline:
		return StyleAqua.Render("online")
	case domain.DeliveryHybrid:
		return StyleBlue.Render("hybrid")
	default:
		return Dim("on-site")
	}
}

// FormatSlots joins slots as "MON 09:00-10:15, WED 09:00-10:15".
func FormatSlots(slots []domain.TimeSlot) string {
	if len(slots) == 0 {
		return Dim("no meetings")
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func FormatList(items []string) string {
	if len(items) == 0 {
		return Dim("--")
	}
	return strings.Join(items, ", ")
}

func FormatWeekdays(days []domain.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return FormatList(names)
}

var warningText = map[app.WarningCode]string{
	app.WarnTeamProjectIncluded:   "includes a team-project course",
	app.WarnNoOnlineClasses:       "no online classes",
	app.WarnNoOnlineOnlyDay:       "no day is fully online",
	app.WarnAvoidedDayScheduled:   "meets on a day you wanted free",
	app.WarnMorningClass:          "has morning classes",
	app.WarnLunchOverlap:          "runs through lunch",
	app.WarnTooManyClassesPerDay:  "exceeds your classes-per-day limit",
	app.WarnConsecutiveExceeded:   "exceeds your back-to-back limit",
	app.WarnCreditsAboveTarget:    "above the credit target",
	app.WarnStrategyWeakAlignment: "no course matches your strategy",
}

// WarningText returns a short human description of a warning code.
func WarningText(code app.WarningCode) string {
	if s, ok := warningText[code]; ok {
		return s
	}
	return strings.ToLower(strings.ReplaceAll(string(code), "_", " "))
}
