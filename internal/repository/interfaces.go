package repository

import (
	"context"

	"github.com/alexanderramin/tably/internal/domain"
)

// TermSummary counts the stored courses of one term.
type TermSummary struct {
	Term    string
	Courses int
}

type CourseRepo interface {
	// Upsert inserts or replaces a course with its meetings, tags and tracks.
	// It reports whether the course was new.
	Upsert(ctx context.Context, c *domain.Course) (bool, error)
	GetByID(ctx context.Context, term, id string) (*domain.Course, error)
	ListByTerm(ctx context.Context, term string) ([]domain.Course, error)
	ListTerms(ctx context.Context) ([]TermSummary, error)
	Delete(ctx context.Context, term, id string) error
	DeleteTerm(ctx context.Context, term string) (int, error)
}

type CommitmentRepo interface {
	Create(ctx context.Context, c *domain.FixedCommitment) error
	GetByID(ctx context.Context, id string) (*domain.FixedCommitment, error)
	List(ctx context.Context, term string) ([]domain.FixedCommitment, error)
	Delete(ctx context.Context, id string) error
}

type BlockedIntervalRepo interface {
	Create(ctx context.Context, b *domain.BlockedInterval) error
	List(ctx context.Context) ([]domain.BlockedInterval, error)
	Delete(ctx context.Context, id string) error
}

type UserProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}
