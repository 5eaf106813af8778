package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
)

// RecommendOptions toggles the optional sections of a recommendation.
type RecommendOptions struct {
	Grid        bool
	Breakdown   bool
	Diagnostics bool
}

// FormatRecommendation renders the full recommend response in a box.
func FormatRecommendation(resp *app.RecommendResponse, opts RecommendOptions) string {
	var b strings.Builder

	b.WriteString(FormatRequestSummary(resp))
	b.WriteString("\n")

	if len(resp.Candidates) == 0 {
		b.WriteString(FormatInfeasibility(resp.Infeasibility))
	}
	for i, c := range resp.Candidates {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatCandidate(c, resp, opts))
	}

	if opts.Diagnostics {
		b.WriteString("\n")
		b.WriteString(FormatDiagnostics(resp.Diagnostics))
	} else {
		b.WriteString("\n")
		b.WriteString(Dim(searchLine(resp.Diagnostics)))
		b.WriteString("\n")
	}

	title := "Timetable Recommendations"
	if len(resp.Candidates) == 0 {
		title = "No Timetable Found"
	}
	return RenderBox(title, b.String())
}

// FormatRequestSummary lists the resolved inputs of the request.
func FormatRequestSummary(resp *app.RecommendResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		Dim("Term:"), TermLabel(resp.Term),
		Dim("Target:"), Bold(FormatCredits(resp.TargetCredits)),
		Dim("Strategy:"), StylePurple.Render(string(resp.Strategy)),
	)
	if len(resp.Tracks) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Tracks:"), FormatList(resp.Tracks))
	}
	if len(resp.Interests) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Interests:"), FormatList(resp.Interests))
	}
	for _, line := range DescribeConstraints(resp.Constraints) {
		fmt.Fprintf(&b, "%s %s\n", Dim("•"), line)
	}
	if len(resp.Fixed) > 0 {
		credits := 0
		titles := make([]string, len(resp.Fixed))
		for i, f := range resp.Fixed {
			credits += f.Credits
			titles[i] = f.Title
		}
		fmt.Fprintf(&b, "%s %s %s\n", Dim("Fixed:"), strings.Join(titles, ", "), Dim("("+FormatCredits(credits)+")"))
	}
	if len(resp.Blocked) > 0 {
		fmt.Fprintf(&b, "%s %d interval(s)\n", Dim("Blocked:"), len(resp.Blocked))
	}
	return b.String()
}

// DescribeConstraints returns one line per active preference.
func DescribeConstraints(cs domain.ConstraintSet) []string {
	var lines []string
	mode := func(hard bool) string {
		if hard {
			return StyleRed.Render("hard")
		}
		return Dim("soft")
	}
	if cs.HasAvoidDays() {
		lines = append(lines, fmt.Sprintf("Avoid %s [%s]", FormatWeekdays(cs.AvoidDays.Value), mode(cs.AvoidDays.Hard)))
	}
	if cs.WantsNoMornings() {
		lines = append(lines, fmt.Sprintf("No classes before 10:00 [%s]", mode(cs.AvoidMorning.Hard)))
	}
	if cs.WantsLunchBreak() {
		lines = append(lines, fmt.Sprintf("Keep 12:00-13:00 free [%s]", mode(cs.KeepLunchTime.Hard)))
	}
	if cs.HasMaxClassesPerDay() {
		lines = append(lines, fmt.Sprintf("At most %d classes per day [%s]", cs.MaxClassesPerDay.Value, mode(cs.MaxClassesPerDay.Hard)))
	}
	if cs.HasMaxConsecutive() {
		lines = append(lines, fmt.Sprintf("At most %d back-to-back classes [%s]", cs.MaxConsecutiveClasses.Value, mode(cs.MaxConsecutiveClasses.Hard)))
	}
	if cs.WantsNoTeamProjects() {
		lines = append(lines, fmt.Sprintf("Avoid team projects [%s]", mode(cs.AvoidTeamProjects.Hard)))
	}
	if cs.WantsOnline() {
		label := "Prefer online classes"
		if cs.PreferOnlineClasses.Hard {
			label = "Online classes only"
		}
		lines = append(lines, fmt.Sprintf("%s [%s]", label, mode(cs.PreferOnlineClasses.Hard)))
	}
	if cs.WantsOnlineOnlyDays() {
		lines = append(lines, fmt.Sprintf("Prefer fully online days [%s]", mode(false)))
	}
	return lines
}

// FormatCandidate renders one ranked timetable.
func FormatCandidate(c app.TimetableCandidate, resp *app.RecommendResponse, opts RecommendOptions) string {
	var b strings.Builder

	credits := FormatCredits(c.TotalCredits)
	if c.FixedCredits > 0 {
		credits = fmt.Sprintf("%s (%d fixed)", credits, c.FixedCredits)
	}
	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(fmt.Sprintf("#%d", c.Rank)), ScoreBadge(c.Score), StyleBlue.Render(credits))

	rows := make([][]string, 0, len(c.Courses))
	for _, course := range c.Courses {
		name := course.Name
		if course.TeamProject {
			name += " " + StyleYellow.Render("[team]")
		}
		rows = append(rows, []string{
			StyleFg.Render(course.ID),
			name,
			fmt.Sprintf("%d", course.Credits),
			DeliveryBadge(course.Delivery),
			FormatSlots(course.MeetingTimes),
		})
	}
	b.WriteString(indent(RenderAlignedTable(
		[]string{"ID", "COURSE", "CR", "MODE", "MEETS"},
		[]Align{AlignLeft, AlignLeft, AlignRight},
		rows,
	), "   "))

	for _, w := range c.Warnings {
		fmt.Fprintf(&b, "   %s %s\n", StyleYellow.Render("!"), WarningText(w))
	}

	if opts.Breakdown {
		b.WriteString("   " + Dim("Score:") + " " + FormatBreakdown(c.Breakdown) + "\n")
	}
	if opts.Grid {
		var fixed []domain.FixedCommitment
		var blocked []domain.BlockedInterval
		if resp != nil {
			fixed, blocked = resp.Fixed, resp.Blocked
		}
		b.WriteString("\n")
		b.WriteString(indent(RenderWeekGrid(CandidateGrid(c, fixed, blocked)), "   "))
	}
	return b.String()
}

// FormatBreakdown renders score terms as "BASE +100.0, FREE_DAYS +16.0".
func FormatBreakdown(terms []app.ScoreTerm) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		style := StyleGreen
		if t.Delta < 0 {
			style = StyleRed
		}
		parts[i] = fmt.Sprintf("%s %s", Dim(t.Code), style.Render(fmt.Sprintf("%+.1f", t.Delta)))
	}
	return strings.Join(parts, Dim(", "))
}

// FormatInfeasibility explains an empty result.
func FormatInfeasibility(r *app.InfeasibilityReport) string {
	if r == nil {
		return Dim("No timetable could be built.") + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render("No combination of courses fits your constraints.") + "\n")
	fmt.Fprintf(&b, "%s %d eligible course(s) worth %s; fixed commitments give %s; accepted window %d-%d credits\n",
		Dim("Supply:"), r.EligibleCourses, FormatCredits(r.EligibleCredits), FormatCredits(r.FixedCredits),
		r.TargetCredits, r.MaxWindowCredits)
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Coverage:"), RenderCreditMeter(r.FixedCredits+r.EligibleCredits, r.TargetCredits, 20))
	if len(r.Factors) == 0 {
		b.WriteString(Dim("No single factor stands out.") + "\n")
		return b.String()
	}
	b.WriteString(Bold("Contributing factors") + "\n")
	for _, f := range r.Factors {
		fmt.Fprintf(&b, "  %s %s %s\n", StyleYellow.Render("•"), f.Message, Dim("["+f.Code+"]"))
	}
	return b.String()
}

// FormatDiagnostics renders search statistics and the per-reason removals.
func FormatDiagnostics(d app.RecommendDiagnostics) string {
	var b strings.Builder
	b.WriteString(Header("Diagnostics") + "\n")
	b.WriteString(searchLine(d) + "\n")
	if len(d.RemovedByReason) > 0 {
		reasons := make([]string, 0, len(d.RemovedByReason))
		for r := range d.RemovedByReason {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Fprintf(&b, "  %s %-26s %d\n", Dim("-"), r, d.RemovedByReason[r])
		}
	}
	for _, e := range d.Exclusions {
		fmt.Fprintf(&b, "  %s %s\n", StyleFg.Render(e.CourseID), Dim(e.Message))
	}
	return b.String()
}

func searchLine(d app.RecommendDiagnostics) string {
	line := fmt.Sprintf("%d of %d courses eligible, %d removed by hard rules; %d combinations generated in %d steps",
		d.EligibleCourses, d.CatalogSize, d.RemovedByHardFilter, d.Generated, d.NodesVisited)
	switch {
	case d.Cancelled:
		line += " (search cancelled)"
	case d.BudgetExhausted:
		line += " (search budget exhausted)"
	case d.CapHit:
		line += " (candidate cap reached)"
	}
	return line
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
