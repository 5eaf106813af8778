package scheduler

import (
	"math"

	"github.com/alexanderramin/tably/internal/domain"
)

// ScoringInput is everything the scorer reads besides the candidate itself.
type ScoringInput struct {
	Fixed         []domain.FixedCommitment
	TargetCredits int
	Prefs         Preferences
	Options       Options
}

type scoringContext struct {
	cand      *Candidate
	grid      weekGrid
	target    int
	strategy  domain.Strategy
	tracks    []string
	interests []string
	cs        domain.ConstraintSet
	opts      Options
	w         ScoringWeights
}

type scoringFactor func(sc *scoringContext) (ScoreTerm, WarningCode)

// ScoreCandidate fills Score, Warnings and Breakdown. Every term is
// independent; soft-constraint shortfalls lower the score and add a warning
// but never drop the candidate. The final score is clamped at zero.
func ScoreCandidate(c *Candidate, in ScoringInput) {
	opts := in.Options.withDefaults()
	sc := &scoringContext{
		cand:      c,
		grid:      buildWeekGrid(in.Fixed, c.Courses),
		target:    in.TargetCredits,
		strategy:  in.Prefs.Strategy,
		tracks:    normalizeTerms(in.Prefs.Tracks),
		interests: normalizeTerms(in.Prefs.Interests),
		cs:        in.Prefs.Constraints,
		opts:      opts,
		w:         opts.Weights,
	}

	factors := []scoringFactor{
		scoreCreditDeviation,
		scoreStrategy,
		scoreFreeDays,
		scoreTeamProjects,
		scoreOnline,
		scoreOnlineOnlyDays,
		scoreAvoidedDays,
		scoreMornings,
		scoreLunch,
		scoreDailyOverload,
		scoreConsecutive,
	}

	score := opts.BaseScore
	c.Breakdown = []ScoreTerm{{Code: TermBase, Delta: opts.BaseScore}}
	c.Warnings = nil
	for _, f := range factors {
		term, warn := f(sc)
		if term.Delta != 0 {
			score += term.Delta
			c.Breakdown = append(c.Breakdown, term)
		}
		if warn != "" {
			c.Warnings = append(c.Warnings, warn)
		}
	}
	c.Score = math.Max(0, score)
}

func scoreCreditDeviation(sc *scoringContext) (ScoreTerm, WarningCode) {
	dev := sc.cand.TotalCredits - sc.target
	if dev == 0 {
		return ScoreTerm{}, ""
	}
	term := ScoreTerm{Code: TermCreditDeviation, Delta: -sc.w.CreditDeviation * math.Abs(float64(dev))}
	if dev > 0 {
		return term, WarnCreditsAboveTarget
	}
	return term, ""
}

func scoreStrategy(sc *scoringContext) (ScoreTerm, WarningCode) {
	if len(sc.cand.Courses) == 0 {
		return ScoreTerm{}, ""
	}
	aligned := 0
	for _, c := range sc.cand.Courses {
		if sc.aligned(c) {
			aligned++
		}
	}
	if aligned == 0 {
		if sc.expectsAlignment() {
			return ScoreTerm{}, WarnStrategyWeakAlignment
		}
		return ScoreTerm{}, ""
	}
	fraction := float64(aligned) / float64(len(sc.cand.Courses))
	return ScoreTerm{Code: TermStrategy, Delta: sc.w.StrategyBonus * fraction}, ""
}

func (sc *scoringContext) aligned(c *domain.Course) bool {
	switch sc.strategy {
	case domain.StrategyMajorFocus:
		return trackMatches(c, sc.tracks) > 0
	case domain.StrategyInterestFocus:
		return interestMatches(c, sc.interests) > 0
	default:
		return trackMatches(c, sc.tracks) > 0 || interestMatches(c, sc.interests) > 0
	}
}

// expectsAlignment reports whether the request supplied the terms the active
// strategy matches against.
func (sc *scoringContext) expectsAlignment() bool {
	switch sc.strategy {
	case domain.StrategyMajorFocus:
		return len(sc.tracks) > 0
	case domain.StrategyInterestFocus:
		return len(sc.interests) > 0
	default:
		return false
	}
}

func scoreFreeDays(sc *scoringContext) (ScoreTerm, WarningCode) {
	free := sc.grid.freeDays(domain.SchoolDays)
	return ScoreTerm{Code: TermFreeDays, Delta: sc.w.FreeDay * float64(free)}, ""
}

func scoreTeamProjects(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.WantsNoTeamProjects() {
		return ScoreTerm{}, ""
	}
	n := 0
	for _, c := range sc.cand.Courses {
		if c.TeamProject {
			n++
		}
	}
	if n == 0 {
		return ScoreTerm{}, ""
	}
	return ScoreTerm{Code: TermTeamProjects, Delta: -sc.w.TeamProject * float64(n)}, WarnTeamProjectIncluded
}

func scoreOnline(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.WantsOnline() {
		return ScoreTerm{}, ""
	}
	var units float64
	for _, c := range sc.cand.Courses {
		switch c.Delivery {
		case domain.DeliveryOnline:
			units++
		case domain.DeliveryHybrid:
			units += 0.5
		}
	}
	if units == 0 {
		return ScoreTerm{}, WarnNoOnlineClasses
	}
	return ScoreTerm{Code: TermOnline, Delta: sc.w.Online * units}, ""
}

// scoreOnlineOnlyDays rewards days whose every meeting is an ONLINE course.
// Fixed commitments carry no delivery mode and count as on-site.
func scoreOnlineOnlyDays(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.WantsOnlineOnlyDays() {
		return ScoreTerm{}, ""
	}
	var onlineSlots [7]int
	for _, c := range sc.cand.Courses {
		if c.Delivery != domain.DeliveryOnline {
			continue
		}
		for _, s := range c.MeetingTimes {
			onlineSlots[s.Day]++
		}
	}
	days := 0
	for d, slots := range sc.grid {
		if len(slots) > 0 && onlineSlots[d] == len(slots) {
			days++
		}
	}
	if days == 0 {
		return ScoreTerm{}, WarnNoOnlineOnlyDay
	}
	return ScoreTerm{Code: TermOnlineOnlyDays, Delta: sc.w.OnlineOnlyDay * float64(days)}, ""
}

func scoreAvoidedDays(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.HasAvoidDays() {
		return ScoreTerm{}, ""
	}
	n := 0
	for _, c := range sc.cand.Courses {
		if meetsOnAvoidedDay(c, sc.cs) {
			n++
		}
	}
	if n == 0 {
		return ScoreTerm{}, ""
	}
	return ScoreTerm{Code: TermAvoidedDays, Delta: -sc.w.AvoidedDay * float64(n)}, WarnAvoidedDayScheduled
}

func scoreMornings(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.WantsNoMornings() {
		return ScoreTerm{}, ""
	}
	n := 0
	for _, c := range sc.cand.Courses {
		for _, s := range c.MeetingTimes {
			if isMorning(s, sc.opts) {
				n++
			}
		}
	}
	if n == 0 {
		return ScoreTerm{}, ""
	}
	return ScoreTerm{Code: TermMornings, Delta: -sc.w.Morning * float64(n)}, WarnMorningClass
}

func scoreLunch(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.WantsLunchBreak() {
		return ScoreTerm{}, ""
	}
	var blocked [7]bool
	n := 0
	for _, c := range sc.cand.Courses {
		for _, s := range c.MeetingTimes {
			if coversLunch(s, sc.opts) && !blocked[s.Day] {
				blocked[s.Day] = true
				n++
			}
		}
	}
	if n == 0 {
		return ScoreTerm{}, ""
	}
	return ScoreTerm{Code: TermLunch, Delta: -sc.w.Lunch * float64(n)}, WarnLunchOverlap
}

func scoreDailyOverload(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.HasMaxClassesPerDay() {
		return ScoreTerm{}, ""
	}
	over := sc.grid.overloadCount(sc.cs.MaxClassesPerDay.Value)
	if over == 0 {
		return ScoreTerm{}, ""
	}
	return ScoreTerm{Code: TermDailyOverload, Delta: -sc.w.DailyOverload * float64(over)}, WarnTooManyClassesPerDay
}

func scoreConsecutive(sc *scoringContext) (ScoreTerm, WarningCode) {
	if !sc.cs.HasMaxConsecutive() {
		return ScoreTerm{}, ""
	}
	v := sc.grid.consecutiveViolations(sc.cs.MaxConsecutiveClasses.Value, sc.opts.ConsecutiveGap)
	if v == 0 {
		return ScoreTerm{}, ""
	}
	return ScoreTerm{Code: TermConsecutive, Delta: -sc.w.Consecutive * float64(v)}, WarnConsecutiveExceeded
}
