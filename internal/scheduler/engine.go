package scheduler

import (
	"context"

	"github.com/alexanderramin/tably/internal/domain"
)

// Request is one recommendation problem. All slices are read-only inputs.
type Request struct {
	Courses          []domain.Course
	FixedCommitments []domain.FixedCommitment
	BlockedIntervals []domain.BlockedInterval
	TargetCredits    int
	Constraints      domain.ConstraintSet
	Strategy         domain.Strategy
	Tracks           []string
	Interests        []string
}

// Diagnostics describes how the pipeline arrived at its result.
type Diagnostics struct {
	CatalogSize         int
	EligibleCourses     int
	RemovedByHardFilter int
	RemovedByReason     map[ExclusionReason]int
	Exclusions          []Exclusion
	Generated           int
	CapHit              bool
	NodesVisited        int
	BudgetExhausted     bool
	Cancelled           bool
	HardLimitPrunes     int
}

// Result is the ranked top-N. Infeasibility is set only when Candidates is empty.
type Result struct {
	Candidates    []Candidate
	Diagnostics   Diagnostics
	Infeasibility *InfeasibilityReport
}

// Engine runs the recommendation pipeline. It holds only immutable options,
// so one Engine can serve concurrent requests.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// GenerateCandidates runs HardFilter → PrioritySort → GenerateCombinations →
// ScoreCandidate → RankCandidates. Identical requests produce identical
// results. ctx only bounds the search; a cancelled search returns what it
// found so far with Diagnostics.Cancelled set.
func (e *Engine) GenerateCandidates(ctx context.Context, req Request) Result {
	prefs := Preferences{
		Strategy:    req.Strategy,
		Tracks:      req.Tracks,
		Interests:   req.Interests,
		Constraints: req.Constraints,
	}

	filtered := HardFilter(req.Courses, req.FixedCommitments, req.BlockedIntervals, req.Constraints, e.opts)
	sorted := PrioritySort(filtered.Valid, prefs, e.opts)

	gen := GenerateCombinations(ctx, GenerateInput{
		Courses:       sorted,
		Fixed:         req.FixedCommitments,
		TargetCredits: req.TargetCredits,
		Constraints:   req.Constraints,
	}, e.opts)

	scoring := ScoringInput{
		Fixed:         req.FixedCommitments,
		TargetCredits: req.TargetCredits,
		Prefs:         prefs,
		Options:       e.opts,
	}
	for i := range gen.Candidates {
		ScoreCandidate(&gen.Candidates[i], scoring)
	}

	result := Result{
		Candidates: RankCandidates(gen.Candidates, e.opts.TopN),
		Diagnostics: Diagnostics{
			CatalogSize:         len(req.Courses),
			EligibleCourses:     len(filtered.Valid),
			RemovedByHardFilter: len(filtered.Excluded),
			RemovedByReason:     filtered.ByReason,
			Exclusions:          filtered.Excluded,
			Generated:           len(gen.Candidates),
			CapHit:              gen.CapHit,
			NodesVisited:        gen.NodesVisited,
			BudgetExhausted:     gen.BudgetExhausted,
			Cancelled:           gen.Cancelled,
			HardLimitPrunes:     gen.HardLimitPrunes,
		},
	}
	if len(result.Candidates) == 0 {
		result.Infeasibility = explainInfeasibility(req, filtered, result.Diagnostics, e.opts)
	}
	return result
}
