package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/alexanderramin/tably/internal/scheduler"
)

// RecommendDeps groups the collaborators of the recommend use case.
type RecommendDeps struct {
	Profiles    repository.UserProfileRepo
	Commitments repository.CommitmentRepo
	Blocks      repository.BlockedIntervalRepo
	Courses     repository.CourseRepo
	Catalog     app.CourseCatalogProvider
	Interpreter app.ConstraintInterpreter
	Options     scheduler.Options
	DefaultTerm string
}

type recommendService struct {
	loader   *ContextLoader
	options  scheduler.Options
	observer UseCaseObserver
}

func NewRecommendService(deps RecommendDeps, observers ...UseCaseObserver) RecommendService {
	interpreter := deps.Interpreter
	if interpreter == nil {
		interpreter = NewStructuredConstraintInterpreter()
	}
	return &recommendService{
		loader: &ContextLoader{
			profiles:    deps.Profiles,
			commitments: deps.Commitments,
			blocks:      deps.Blocks,
			terms:       deps.Courses,
			catalog:     deps.Catalog,
			interpreter: interpreter,
			defaultTerm: deps.DefaultTerm,
		},
		options:  deps.Options,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *recommendService) Recommend(ctx context.Context, req app.RecommendRequest) (resp *app.RecommendResponse, err error) {
	span := startUseCase(s.observer, "recommend")
	defer func() { span.end(ctx, err) }()

	rctx, err := s.loader.Load(ctx, req)
	if err != nil {
		var recErr *app.RecommendError
		if errors.As(err, &recErr) {
			return nil, err
		}
		return nil, &app.RecommendError{Code: app.ErrInternalError, Message: err.Error()}
	}
	span.set("term", rctx.Term)
	span.set("target_credits", rctx.TargetCredits)
	span.set("hard_rules", rctx.Constraints.HasHard())

	engine := scheduler.NewEngine(engineOptions(s.options, rctx.Profile, req.TopN))
	result := engine.GenerateCandidates(ctx, buildEngineRequest(rctx))

	span.set("catalog", result.Diagnostics.CatalogSize)
	span.set("removed", result.Diagnostics.RemovedByHardFilter)
	span.set("generated", result.Diagnostics.Generated)
	span.set("cap_hit", result.Diagnostics.CapHit)
	span.set("nodes", result.Diagnostics.NodesVisited)
	span.set("candidates", len(result.Candidates))

	return AssembleResponse(rctx, result), nil
}
