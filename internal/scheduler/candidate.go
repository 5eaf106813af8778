package scheduler

import (
	"sort"
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
)

type WarningCode string

const (
	WarnTeamProjectIncluded   WarningCode = "TEAM_PROJECT_INCLUDED"
	WarnNoOnlineClasses       WarningCode = "NO_ONLINE_CLASSES"
	WarnNoOnlineOnlyDay       WarningCode = "NO_ONLINE_ONLY_DAY"
	WarnAvoidedDayScheduled   WarningCode = "AVOIDED_DAY_SCHEDULED"
	WarnMorningClass          WarningCode = "MORNING_CLASS"
	WarnLunchOverlap          WarningCode = "LUNCH_OVERLAP"
	WarnTooManyClassesPerDay  WarningCode = "TOO_MANY_CLASSES_PER_DAY"
	WarnConsecutiveExceeded   WarningCode = "CONSECUTIVE_LIMIT_EXCEEDED"
	WarnCreditsAboveTarget    WarningCode = "CREDITS_ABOVE_TARGET"
	WarnStrategyWeakAlignment WarningCode = "STRATEGY_WEAK_ALIGNMENT"
)

type ScoreTermCode string

const (
	TermBase            ScoreTermCode = "BASE"
	TermCreditDeviation ScoreTermCode = "CREDIT_DEVIATION"
	TermStrategy        ScoreTermCode = "STRATEGY_ALIGNMENT"
	TermFreeDays        ScoreTermCode = "FREE_DAYS"
	TermTeamProjects    ScoreTermCode = "TEAM_PROJECTS"
	TermOnline          ScoreTermCode = "ONLINE_CLASSES"
	TermOnlineOnlyDays  ScoreTermCode = "ONLINE_ONLY_DAYS"
	TermAvoidedDays     ScoreTermCode = "AVOIDED_DAYS"
	TermMornings        ScoreTermCode = "MORNINGS"
	TermLunch           ScoreTermCode = "LUNCH"
	TermDailyOverload   ScoreTermCode = "DAILY_OVERLOAD"
	TermConsecutive     ScoreTermCode = "CONSECUTIVE"
)

// ScoreTerm is one signed contribution to a candidate's score.
type ScoreTerm struct {
	Code  ScoreTermCode
	Delta float64
}

// Candidate is one feasible combination of courses. The generator fills
// Courses and credits; ScoreCandidate fills the rest.
type Candidate struct {
	Courses       []*domain.Course
	CourseCredits int
	FixedCredits  int
	TotalCredits  int

	Score     float64
	Warnings  []WarningCode
	Breakdown []ScoreTerm
}

// CourseIDs returns the ids in generation order.
func (c *Candidate) CourseIDs() []string {
	ids := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		ids[i] = course.ID
	}
	return ids
}

// setKey identifies the course set independent of order.
func (c *Candidate) setKey() string {
	ids := c.CourseIDs()
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

// HasWarning reports whether code was raised for this candidate.
func (c *Candidate) HasWarning(code WarningCode) bool {
	for _, w := range c.Warnings {
		if w == code {
			return true
		}
	}
	return false
}

type ExclusionReason string

const (
	ExcludedInvalidCourse    ExclusionReason = "INVALID_COURSE"
	ExcludedNoMeetingTimes   ExclusionReason = "NO_MEETING_TIMES"
	ExcludedDuplicateID      ExclusionReason = "DUPLICATE_ID"
	ExcludedFixedOverlap     ExclusionReason = "FIXED_COMMITMENT_OVERLAP"
	ExcludedBlockedOverlap   ExclusionReason = "BLOCKED_INTERVAL_OVERLAP"
	ExcludedHardAvoidDay     ExclusionReason = "HARD_AVOID_DAY"
	ExcludedHardAvoidMorning ExclusionReason = "HARD_AVOID_MORNING"
	ExcludedHardKeepLunch    ExclusionReason = "HARD_KEEP_LUNCH"
	ExcludedHardAvoidTeam    ExclusionReason = "HARD_AVOID_TEAM_PROJECT"
	ExcludedHardOnlineOnly   ExclusionReason = "HARD_ONLINE_ONLY"
)

// Exclusion records why the hard filter dropped a course.
type Exclusion struct {
	CourseID string
	Reason   ExclusionReason
	Message  string
}
