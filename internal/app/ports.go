package app

import (
	"context"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/importer"
)

type RecommendUseCase interface {
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error)
}

// CourseCatalogProvider returns the catalog snapshot for a term. A failing
// upstream yields an empty catalog rather than an error.
type CourseCatalogProvider interface {
	Catalog(ctx context.Context, term string) []domain.Course
	Invalidate(term string)
}

// ConstraintInterpreter turns structured request input into the single
// ConstraintSet the engine consumes.
type ConstraintInterpreter interface {
	Interpret(in ConstraintInput, profile *domain.UserProfile) (domain.ConstraintSet, error)
}

type ImportResult struct {
	Term    string
	Courses int
	Created int
	Updated int
}

type ImportCatalogUseCase interface {
	ImportCatalog(ctx context.Context, filePath, term string) (*ImportResult, error)
	ImportCatalogFromSchema(ctx context.Context, schema *importer.CatalogSchema) (*ImportResult, error)
}
