package app

import "github.com/alexanderramin/tably/internal/domain"

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

type ScoreTerm struct {
	Code  string
	Delta float64
}

type CandidateCourse struct {
	ID           string
	Name         string
	Credits      int
	Delivery     domain.Delivery
	TeamProject  bool
	Tracks       []string
	MeetingTimes []domain.TimeSlot
}

// TimetableCandidate is one ranked recommendation. Fixed commitments are not
// repeated here; they are listed once on the response.
type TimetableCandidate struct {
	Rank          int
	Courses       []CandidateCourse
	CourseCredits int
	FixedCredits  int
	TotalCredits  int
	Score         float64
	Warnings      []WarningCode
	Breakdown     []ScoreTerm
}

type CourseExclusion struct {
	CourseID string
	Reason   string
	Message  string
}

type RecommendDiagnostics struct {
	CatalogSize         int
	EligibleCourses     int
	RemovedByHardFilter int
	RemovedByReason     map[string]int
	Exclusions          []CourseExclusion
	Generated           int
	CapHit              bool
	NodesVisited        int
	BudgetExhausted     bool
	Cancelled           bool
}

type InfeasibilityFactor struct {
	Code    string
	Message string
	Count   int
}

type InfeasibilityReport struct {
	TargetCredits    int
	FixedCredits     int
	EligibleCourses  int
	EligibleCredits  int
	MaxWindowCredits int
	Factors          []InfeasibilityFactor
}
