package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/alexanderramin/tably/internal/scheduler"
)

// maxTargetCredits bounds a sane semester load.
const maxTargetCredits = 60

// RecommendationContext is everything loaded for one recommend call.
type RecommendationContext struct {
	Now           time.Time
	Term          string
	Profile       *domain.UserProfile
	TargetCredits int
	Strategy      domain.Strategy
	Tracks        []string
	Interests     []string
	Constraints   domain.ConstraintSet
	Courses       []domain.Course
	Fixed         []domain.FixedCommitment
	Blocked       []domain.BlockedInterval
}

// ContextLoader resolves request defaults and loads the term's data.
type ContextLoader struct {
	profiles    repository.UserProfileRepo
	commitments repository.CommitmentRepo
	blocks      repository.BlockedIntervalRepo
	terms       repository.CourseRepo
	catalog     app.CourseCatalogProvider
	interpreter app.ConstraintInterpreter
	defaultTerm string
}

// Load validates the request and resolves every defaulted field in this
// order: request, configured default, saved profile.
func (cl *ContextLoader) Load(ctx context.Context, req app.RecommendRequest) (*RecommendationContext, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	profile, err := cl.profiles.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading user profile: %w", err)
		}
		profile = &domain.UserProfile{}
	}

	target := profile.DefaultTargetCredits
	if req.TargetCredits != nil {
		target = *req.TargetCredits
	}
	if target <= 0 || target > maxTargetCredits {
		return nil, &app.RecommendError{
			Code:    app.ErrInvalidTargetCredits,
			Message: fmt.Sprintf("target credits must be between 1 and %d (got %d)", maxTargetCredits, target),
		}
	}

	strategy, err := domain.ParseStrategy(domain.Coalesce(req.Strategy, string(profile.DefaultStrategy)))
	if err != nil {
		return nil, &app.RecommendError{Code: app.ErrInvalidStrategy, Message: err.Error()}
	}

	constraints, err := cl.interpreter.Interpret(req.Constraints, profile)
	if err != nil {
		return nil, err
	}

	term, err := cl.resolveTerm(ctx, req.Term, profile)
	if err != nil {
		return nil, err
	}

	fixed, err := cl.commitments.List(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("loading commitments: %w", err)
	}
	blocked, err := cl.blocks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading blocked intervals: %w", err)
	}

	return &RecommendationContext{
		Now:           now,
		Term:          term,
		Profile:       profile,
		TargetCredits: target,
		Strategy:      strategy,
		Tracks:        domain.NonEmpty(req.Tracks, profile.Tracks),
		Interests:     domain.NonEmpty(req.Interests, profile.Interests),
		Constraints:   constraints,
		Courses:       cl.catalog.Catalog(ctx, term),
		Fixed:         fixed,
		Blocked:       blocked,
	}, nil
}

// resolveTerm falls back to the only stored term when nothing names one.
func (cl *ContextLoader) resolveTerm(ctx context.Context, requested string, profile *domain.UserProfile) (string, error) {
	if term := domain.Coalesce(requested, cl.defaultTerm, profile.DefaultTerm); term != "" {
		return term, nil
	}
	terms, err := cl.terms.ListTerms(ctx)
	if err != nil {
		return "", fmt.Errorf("listing terms: %w", err)
	}
	if len(terms) == 1 {
		return terms[0].Term, nil
	}
	return "", nil
}

// engineOptions overlays the profile's saved weights on the configured
// options. Non-positive profile weights keep the configured value.
func engineOptions(base scheduler.Options, profile *domain.UserProfile, topN int) scheduler.Options {
	opts := base
	if opts.Weights == (scheduler.ScoringWeights{}) {
		opts.Weights = scheduler.DefaultWeights()
	}
	if profile.WeightCreditDeviation > 0 {
		opts.Weights.CreditDeviation = profile.WeightCreditDeviation
	}
	if profile.WeightStrategyBonus > 0 {
		opts.Weights.StrategyBonus = profile.WeightStrategyBonus
	}
	if profile.WeightFreeDay > 0 {
		opts.Weights.FreeDay = profile.WeightFreeDay
	}
	if topN > 0 {
		opts.TopN = topN
	}
	return opts
}

func buildEngineRequest(rctx *RecommendationContext) scheduler.Request {
	return scheduler.Request{
		Courses:          rctx.Courses,
		FixedCommitments: rctx.Fixed,
		BlockedIntervals: rctx.Blocked,
		TargetCredits:    rctx.TargetCredits,
		Constraints:      rctx.Constraints,
		Strategy:         rctx.Strategy,
		Tracks:           rctx.Tracks,
		Interests:        rctx.Interests,
	}
}

// AssembleResponse maps the engine result onto the app view types.
func AssembleResponse(rctx *RecommendationContext, result scheduler.Result) *app.RecommendResponse {
	resp := &app.RecommendResponse{
		GeneratedAt:   rctx.Now,
		Term:          rctx.Term,
		TargetCredits: rctx.TargetCredits,
		Strategy:      rctx.Strategy,
		Tracks:        rctx.Tracks,
		Interests:     rctx.Interests,
		Constraints:   rctx.Constraints,
		Fixed:         rctx.Fixed,
		Blocked:       rctx.Blocked,
		Candidates:    make([]app.TimetableCandidate, 0, len(result.Candidates)),
		Diagnostics:   mapDiagnostics(result.Diagnostics),
	}
	for i, c := range result.Candidates {
		resp.Candidates = append(resp.Candidates, mapCandidate(i+1, c))
	}
	if result.Infeasibility != nil {
		resp.Infeasibility = mapInfeasibility(result.Infeasibility)
	}
	return resp
}

func mapCandidate(rank int, c scheduler.Candidate) app.TimetableCandidate {
	out := app.TimetableCandidate{
		Rank:          rank,
		Courses:       make([]app.CandidateCourse, 0, len(c.Courses)),
		CourseCredits: c.CourseCredits,
		FixedCredits:  c.FixedCredits,
		TotalCredits:  c.TotalCredits,
		Score:         c.Score,
	}
	for _, course := range c.Courses {
		out.Courses = append(out.Courses, app.CandidateCourse{
			ID:           course.ID,
			Name:         course.Name,
			Credits:      course.Credits,
			Delivery:     course.Delivery,
			TeamProject:  course.TeamProject,
			Tracks:       course.Tracks,
			MeetingTimes: course.MeetingTimes,
		})
	}
	for _, w := range c.Warnings {
		out.Warnings = append(out.Warnings, app.WarningCode(w))
	}
	for _, t := range c.Breakdown {
		out.Breakdown = append(out.Breakdown, app.ScoreTerm{Code: string(t.Code), Delta: t.Delta})
	}
	return out
}

func mapDiagnostics(d scheduler.Diagnostics) app.RecommendDiagnostics {
	out := app.RecommendDiagnostics{
		CatalogSize:         d.CatalogSize,
		EligibleCourses:     d.EligibleCourses,
		RemovedByHardFilter: d.RemovedByHardFilter,
		RemovedByReason:     make(map[string]int, len(d.RemovedByReason)),
		Generated:           d.Generated,
		CapHit:              d.CapHit,
		NodesVisited:        d.NodesVisited,
		BudgetExhausted:     d.BudgetExhausted,
		Cancelled:           d.Cancelled,
	}
	for reason, n := range d.RemovedByReason {
		out.RemovedByReason[string(reason)] = n
	}
	for _, e := range d.Exclusions {
		out.Exclusions = append(out.Exclusions, app.CourseExclusion{
			CourseID: e.CourseID,
			Reason:   string(e.Reason),
			Message:  e.Message,
		})
	}
	return out
}

func mapInfeasibility(r *scheduler.InfeasibilityReport) *app.InfeasibilityReport {
	out := &app.InfeasibilityReport{
		TargetCredits:    r.TargetCredits,
		FixedCredits:     r.FixedCredits,
		EligibleCourses:  r.EligibleCourses,
		EligibleCredits:  r.EligibleCredits,
		MaxWindowCredits: r.MaxWindowCredits,
	}
	for _, f := range r.Factors {
		out.Factors = append(out.Factors, app.InfeasibilityFactor{
			Code:    string(f.Code),
			Message: f.Message,
			Count:   f.Count,
		})
	}
	return out
}
