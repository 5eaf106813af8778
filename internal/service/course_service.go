package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/importer"
	"github.com/alexanderramin/tably/internal/repository"
)

type courseService struct {
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	catalog  app.CourseCatalogProvider
	observer UseCaseObserver
}

func NewCourseService(courses repository.CourseRepo, uow db.UnitOfWork, catalog app.CourseCatalogProvider, observers ...UseCaseObserver) CourseService {
	return &courseService{
		courses:  courses,
		uow:      uow,
		catalog:  catalog,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ImportCatalog loads a JSON, CSV or TSV catalog file. term overrides the
// file's own term when set.
func (s *courseService) ImportCatalog(ctx context.Context, filePath, term string) (*app.ImportResult, error) {
	schema, err := importer.LoadCatalogSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	if t := strings.TrimSpace(term); t != "" {
		schema.Term = t
	}
	return s.ImportCatalogFromSchema(ctx, schema)
}

// ImportCatalogFromSchema upserts every course of the schema in one
// transaction; a failure leaves the stored catalog untouched.
func (s *courseService) ImportCatalogFromSchema(ctx context.Context, schema *importer.CatalogSchema) (result *app.ImportResult, err error) {
	span := startUseCase(s.observer, "catalog.import")
	defer func() { span.end(ctx, err) }()

	term := strings.TrimSpace(schema.Term)
	if term == "" {
		return nil, errors.New("catalog term is required: pass --term or set \"term\" in the file")
	}
	span.set("term", term)

	if errs := importer.ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	courses, err := importer.Convert(schema, term)
	if err != nil {
		return nil, fmt.Errorf("converting catalog: %w", err)
	}

	result = &app.ImportResult{Term: term, Courses: len(courses)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCourses := repository.NewSQLiteCourseRepo(tx)
		for i := range courses {
			created, err := txCourses.Upsert(ctx, &courses[i])
			if err != nil {
				return fmt.Errorf("saving course %s: %w", courses[i].ID, err)
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.catalog.Invalidate(term)
	span.set("created", result.Created)
	span.set("updated", result.Updated)
	return result, nil
}

func (s *courseService) List(ctx context.Context, term string) ([]domain.Course, error) {
	return s.courses.ListByTerm(ctx, term)
}

func (s *courseService) Get(ctx context.Context, term, id string) (*domain.Course, error) {
	return s.courses.GetByID(ctx, term, id)
}

func (s *courseService) Terms(ctx context.Context) ([]repository.TermSummary, error) {
	return s.courses.ListTerms(ctx)
}

func (s *courseService) Delete(ctx context.Context, term, id string) error {
	if err := s.courses.Delete(ctx, term, id); err != nil {
		return err
	}
	s.catalog.Invalidate(term)
	return nil
}

func (s *courseService) DeleteTerm(ctx context.Context, term string) (int, error) {
	n, err := s.courses.DeleteTerm(ctx, term)
	if err != nil {
		return 0, err
	}
	s.catalog.Invalidate(term)
	return n, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return errors.New(b.String())
}
