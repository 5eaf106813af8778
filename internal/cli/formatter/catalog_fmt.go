package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
)

// FormatCourseList renders the catalog of one term as a table.
func FormatCourseList(term string, courses []domain.Course) string {
	if len(courses) == 0 {
		return Dim(fmt.Sprintf("No courses in %s. Import a catalog with 'tably course import'.", term)) + "\n"
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		name := c.Name
		if c.TeamProject {
			name += " " + StyleYellow.Render("[team]")
		}
		rows = append(rows, []string{
			StyleFg.Render(c.ID),
			name,
			fmt.Sprintf("%d", c.Credits),
			DeliveryBadge(c.Delivery),
			FormatSlots(c.MeetingTimes),
			FormatList(c.Tracks),
		})
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Catalog %s (%d)", term, len(courses))) + "\n")
	b.WriteString(RenderAlignedTable(
		[]string{"ID", "NAME", "CR", "MODE", "MEETS", "TRACKS"},
		[]Align{AlignLeft, AlignLeft, AlignRight},
		rows,
	))
	return b.String()
}

func FormatCourseDetail(c *domain.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", Bold(c.ID), c.Name)
	fmt.Fprintf(&b, "%s %s\n", Dim("Term:    "), TermLabel(c.Term))
	fmt.Fprintf(&b, "%s %s\n", Dim("Credits: "), FormatCredits(c.Credits))
	fmt.Fprintf(&b, "%s %s\n", Dim("Delivery:"), DeliveryBadge(c.Delivery))
	team := "no"
	if c.TeamProject {
		team = StyleYellow.Render("yes")
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Team:    "), team)
	fmt.Fprintf(&b, "%s %s\n", Dim("Tracks:  "), FormatList(c.Tracks))
	fmt.Fprintf(&b, "%s %s\n", Dim("Tags:    "), FormatList(c.Tags))
	b.WriteString("\n" + Header("Meetings") + "\n")
	if len(c.MeetingTimes) == 0 {
		b.WriteString(Dim("none") + "\n")
	}
	for _, s := range c.MeetingTimes {
		fmt.Fprintf(&b, "  %s  %d min\n", s.String(), s.Duration())
	}
	return RenderBox("Course", b.String())
}

// FormatTermList lists the terms that hold courses.
func FormatTermList(terms []repository.TermSummary) string {
	if len(terms) == 0 {
		return Dim("No catalog imported yet.") + "\n"
	}
	rows := make([][]string, len(terms))
	for i, t := range terms {
		rows[i] = []string{TermLabel(t.Term), fmt.Sprintf("%d", t.Courses)}
	}
	return Header("Terms") + "\n" + RenderAlignedTable([]string{"TERM", "COURSES"}, []Align{AlignLeft, AlignRight}, rows)
}

func FormatImportResult(res *app.ImportResult) string {
	return fmt.Sprintf("%s Imported %d course(s) into %s %s\n",
		StyleGreen.Render("✔"), res.Courses, TermLabel(res.Term),
		Dim(fmt.Sprintf("(%d new, %d updated)", res.Created, res.Updated)))
}

func FormatCommitmentList(term string, items []domain.FixedCommitment) string {
	if len(items) == 0 {
		return Dim(fmt.Sprintf("No fixed commitments for %s.", term)) + "\n"
	}
	total := 0
	rows := make([][]string, 0, len(items))
	for _, f := range items {
		total += f.Credits
		course := f.CourseID
		if course == "" {
			course = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(f.ID),
			f.Title,
			course,
			fmt.Sprintf("%d", f.Credits),
			FormatSlots(f.MeetingTimes),
		})
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Fixed commitments %s", term)) + "\n")
	b.WriteString(RenderAlignedTable(
		[]string{"ID", "TITLE", "COURSE", "CR", "MEETS"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
		rows,
	))
	b.WriteString(Dim("Total: "+FormatCredits(total)) + "\n")
	return b.String()
}

func FormatBlockList(items []domain.BlockedInterval) string {
	if len(items) == 0 {
		return Dim("No blocked times.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, bi := range items {
		rows = append(rows, []string{TruncID(bi.ID), bi.Label, bi.Slot.String()})
	}
	return Header("Blocked times") + "\n" + RenderTable([]string{"ID", "LABEL", "WHEN"}, rows)
}

// FormatProfile renders the saved defaults. Zero values are shown as unset.
func FormatProfile(p *domain.UserProfile) string {
	unset := Dim("(unset)")
	orUnset := func(s string) string {
		if s == "" {
			return unset
		}
		return s
	}
	onOff := func(v bool) string {
		if v {
			return StyleGreen.Render("on")
		}
		return Dim("off")
	}
	weight := func(w float64) string {
		if w <= 0 {
			return Dim("default")
		}
		return fmt.Sprintf("%.1f", w)
	}

	var b strings.Builder
	credits := unset
	if p.DefaultTargetCredits > 0 {
		credits = FormatCredits(p.DefaultTargetCredits)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Term:          "), orUnset(p.DefaultTerm))
	fmt.Fprintf(&b, "%s %s\n", Dim("Target credits:"), credits)
	fmt.Fprintf(&b, "%s %s\n", Dim("Strategy:      "), orUnset(string(p.DefaultStrategy)))
	fmt.Fprintf(&b, "%s %s\n", Dim("Tracks:        "), FormatList(p.Tracks))
	fmt.Fprintf(&b, "%s %s\n", Dim("Interests:     "), FormatList(p.Interests))
	b.WriteString("\n" + Header("Preferences") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Avoid mornings:"), onOff(p.AvoidMorning))
	fmt.Fprintf(&b, "%s %s\n", Dim("Keep lunch:    "), onOff(p.KeepLunchTime))
	fmt.Fprintf(&b, "%s %s\n", Dim("Avoid days:    "), FormatWeekdays(p.AvoidDays))
	b.WriteString("\n" + Header("Weights") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Credit deviation:"), weight(p.WeightCreditDeviation))
	fmt.Fprintf(&b, "%s %s\n", Dim("Strategy bonus:  "), weight(p.WeightStrategyBonus))
	fmt.Fprintf(&b, "%s %s\n", Dim("Free day:        "), weight(p.WeightFreeDay))
	return RenderBox("Profile", b.String())
}
