package app

import (
	"time"

	"github.com/alexanderramin/tably/internal/domain"
)

// Hard rule keys accepted in ConstraintInput.Hard.
const (
	HardKeyAvoidDays      = "avoid_days"
	HardKeyAvoidMorning   = "avoid_morning"
	HardKeyKeepLunch      = "keep_lunch"
	HardKeyMaxPerDay      = "max_per_day"
	HardKeyMaxConsecutive = "max_consecutive"
	HardKeyAvoidTeam      = "avoid_team"
	HardKeyOnlineOnly     = "online_only"
)

// ConstraintInput is the structured preference input of one request, from
// CLI flags or a constraints file. Nil members fall back to the saved profile.
type ConstraintInput struct {
	AvoidDays             []string `json:"avoid_days,omitempty" mapstructure:"avoid_days"`
	AvoidMorning          *bool    `json:"avoid_morning,omitempty" mapstructure:"avoid_morning"`
	KeepLunchTime         *bool    `json:"keep_lunch_time,omitempty" mapstructure:"keep_lunch_time"`
	MaxClassesPerDay      *int     `json:"max_classes_per_day,omitempty" mapstructure:"max_classes_per_day" validate:"omitempty,min=1,max=12"`
	MaxConsecutiveClasses *int     `json:"max_consecutive_classes,omitempty" mapstructure:"max_consecutive_classes" validate:"omitempty,min=1,max=12"`
	AvoidTeamProjects     *bool    `json:"avoid_team_projects,omitempty" mapstructure:"avoid_team_projects"`
	PreferOnlineClasses   *bool    `json:"prefer_online_classes,omitempty" mapstructure:"prefer_online_classes"`
	PreferOnlineOnlyDays  *bool    `json:"prefer_online_only_days,omitempty" mapstructure:"prefer_online_only_days"`

	// Hard lists the members enforced as hard rules.
	Hard []string `json:"hard,omitempty" mapstructure:"hard" validate:"dive,oneof=avoid_days avoid_morning keep_lunch max_per_day max_consecutive avoid_team online_only"`
}

// IsHard reports whether key was marked hard.
func (in ConstraintInput) IsHard(key string) bool {
	for _, h := range in.Hard {
		if h == key {
			return true
		}
	}
	return false
}

type RecommendRequest struct {
	Term          string
	TargetCredits *int
	Strategy      string
	Tracks        []string
	Interests     []string
	Constraints   ConstraintInput
	TopN          int
	Now           *time.Time
}

func NewRecommendRequest() RecommendRequest {
	return RecommendRequest{}
}

type RecommendResponse struct {
	GeneratedAt   time.Time
	Term          string
	TargetCredits int
	Strategy      domain.Strategy
	Tracks        []string
	Interests     []string
	Constraints   domain.ConstraintSet
	Fixed         []domain.FixedCommitment
	Blocked       []domain.BlockedInterval
	Candidates    []TimetableCandidate
	Diagnostics   RecommendDiagnostics
	Infeasibility *InfeasibilityReport
}

type RecommendErrorCode string

const (
	ErrInvalidTargetCredits RecommendErrorCode = "INVALID_TARGET_CREDITS"
	ErrInvalidStrategy      RecommendErrorCode = "INVALID_STRATEGY"
	ErrInvalidConstraints   RecommendErrorCode = "INVALID_CONSTRAINTS"
	ErrInternalError        RecommendErrorCode = "INTERNAL_ERROR"
)

type RecommendError struct {
	Code    RecommendErrorCode
	Message string
}

func (e *RecommendError) Error() string {
	return string(e.Code) + ": " + e.Message
}
