package scheduler

import "fmt"

type InfeasibilityCode string

const (
	FactorEmptyCatalog         InfeasibilityCode = "EMPTY_CATALOG"
	FactorInvalidCourses       InfeasibilityCode = "INVALID_COURSES"
	FactorNoMeetingTimes       InfeasibilityCode = "NO_MEETING_TIMES"
	FactorBlockedTimes         InfeasibilityCode = "BLOCKED_TIMES"
	FactorFixedCommitments     InfeasibilityCode = "FIXED_COMMITMENTS"
	FactorHardAvoidDays        InfeasibilityCode = "HARD_AVOID_DAYS"
	FactorHardAvoidMorning     InfeasibilityCode = "HARD_AVOID_MORNING"
	FactorHardKeepLunch        InfeasibilityCode = "HARD_KEEP_LUNCH"
	FactorHardAvoidTeam        InfeasibilityCode = "HARD_AVOID_TEAM_PROJECTS"
	FactorHardOnlineOnly       InfeasibilityCode = "HARD_ONLINE_ONLY"
	FactorHardDailyLimits      InfeasibilityCode = "HARD_DAILY_LIMITS"
	FactorTargetExceedsSupply  InfeasibilityCode = "TARGET_EXCEEDS_SUPPLY"
	FactorNoCombinationInRange InfeasibilityCode = "NO_COMBINATION_IN_WINDOW"
	FactorSearchBudget         InfeasibilityCode = "SEARCH_BUDGET_EXHAUSTED"
	FactorSearchCancelled      InfeasibilityCode = "SEARCH_CANCELLED"
)

// InfeasibilityFactor is one hard factor that observably contributed to an
// empty result. Count is the number of courses or events behind it.
type InfeasibilityFactor struct {
	Code    InfeasibilityCode
	Message string
	Count   int
}

// InfeasibilityReport replaces the candidate list when nothing could be
// recommended. It is a normal result, not an error.
type InfeasibilityReport struct {
	TargetCredits    int
	FixedCredits     int
	EligibleCourses  int
	EligibleCredits  int
	MaxWindowCredits int
	Factors          []InfeasibilityFactor
}

// HasFactor reports whether code was cited.
func (r *InfeasibilityReport) HasFactor(code InfeasibilityCode) bool {
	for _, f := range r.Factors {
		if f.Code == code {
			return true
		}
	}
	return false
}

// explainInfeasibility lists only factors that are true of the inputs; it
// never guesses which single factor was decisive.
func explainInfeasibility(req Request, filtered FilterResult, diag Diagnostics, opts Options) *InfeasibilityReport {
	report := &InfeasibilityReport{
		TargetCredits:    req.TargetCredits,
		EligibleCourses:  len(filtered.Valid),
		MaxWindowCredits: req.TargetCredits + opts.CreditSlack,
	}
	for _, f := range req.FixedCommitments {
		report.FixedCredits += f.Credits
	}
	for _, c := range filtered.Valid {
		report.EligibleCredits += c.Credits
	}

	add := func(code InfeasibilityCode, count int, format string, args ...any) {
		report.Factors = append(report.Factors, InfeasibilityFactor{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
			Count:   count,
		})
	}
	by := filtered.ByReason

	if len(req.Courses) == 0 {
		add(FactorEmptyCatalog, 0, "The course catalog is empty")
	}
	if n := by[ExcludedInvalidCourse]; n > 0 {
		add(FactorInvalidCourses, n, "%d course(s) had malformed credit or meeting data and were skipped", n)
	}
	if n := by[ExcludedNoMeetingTimes]; n > 0 {
		add(FactorNoMeetingTimes, n, "%d course(s) have no scheduled meeting times", n)
	}
	if n := by[ExcludedBlockedOverlap]; n > 0 && len(req.BlockedIntervals) > 0 {
		add(FactorBlockedTimes, n, "%d course(s) overlap your %d blocked time(s)", n, len(req.BlockedIntervals))
	}
	if len(req.FixedCommitments) > 0 {
		n := by[ExcludedFixedOverlap]
		switch {
		case report.FixedCredits >= req.TargetCredits:
			add(FactorFixedCommitments, n, "Fixed commitments already provide %d credits of the %d-credit target", report.FixedCredits, req.TargetCredits)
		case n > 0:
			add(FactorFixedCommitments, n, "%d course(s) overlap your fixed commitments", n)
		}
	}
	hardRules := []struct {
		reason ExclusionReason
		code   InfeasibilityCode
		label  string
	}{
		{ExcludedHardAvoidDay, FactorHardAvoidDays, "the hard avoid-days rule"},
		{ExcludedHardAvoidMorning, FactorHardAvoidMorning, "the hard no-mornings rule"},
		{ExcludedHardKeepLunch, FactorHardKeepLunch, "the hard lunch-break rule"},
		{ExcludedHardAvoidTeam, FactorHardAvoidTeam, "the hard no-team-projects rule"},
		{ExcludedHardOnlineOnly, FactorHardOnlineOnly, "the hard online-only rule"},
	}
	for _, r := range hardRules {
		if n := by[r.reason]; n > 0 {
			add(r.code, n, "%d course(s) removed by %s", n, r.label)
		}
	}
	if diag.HardLimitPrunes > 0 {
		add(FactorHardDailyLimits, diag.HardLimitPrunes, "Hard per-day class limits rejected %d combination step(s)", diag.HardLimitPrunes)
	}

	needed := req.TargetCredits - report.FixedCredits
	if needed > 0 && report.EligibleCredits < needed {
		add(FactorTargetExceedsSupply, 0, "Target needs %d more credits but eligible courses total only %d", needed, report.EligibleCredits)
	} else if needed > 0 && len(filtered.Valid) > 0 && !diag.BudgetExhausted && !diag.Cancelled {
		add(FactorNoCombinationInRange, 0, "No non-overlapping combination lands between %d and %d credits", req.TargetCredits, report.MaxWindowCredits)
	}
	if diag.BudgetExhausted {
		add(FactorSearchBudget, diag.NodesVisited, "Search stopped after visiting %d combinations without a match", diag.NodesVisited)
	}
	if diag.Cancelled {
		add(FactorSearchCancelled, diag.NodesVisited, "Search was cancelled before a match was found")
	}
	return report
}
