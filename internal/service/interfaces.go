package service

import (
	"context"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
)

// RecommendService produces ranked timetable candidates for a term.
type RecommendService interface {
	app.RecommendUseCase
}

type CourseService interface {
	app.ImportCatalogUseCase
	List(ctx context.Context, term string) ([]domain.Course, error)
	Get(ctx context.Context, term, id string) (*domain.Course, error)
	Terms(ctx context.Context) ([]repository.TermSummary, error)
	Delete(ctx context.Context, term, id string) error
	DeleteTerm(ctx context.Context, term string) (int, error)
}

// CommitmentInput describes a fixed commitment. When CourseID is set the
// title, credits and meetings are copied from the catalog course and the
// remaining fields are ignored.
type CommitmentInput struct {
	Term     string
	CourseID string
	Title    string
	Credits  int
	Meetings []string
}

type CommitmentService interface {
	Add(ctx context.Context, in CommitmentInput) (*domain.FixedCommitment, error)
	List(ctx context.Context, term string) ([]domain.FixedCommitment, error)
	Remove(ctx context.Context, id string) error
}

type BlockService interface {
	Add(ctx context.Context, label, slot string) (*domain.BlockedInterval, error)
	List(ctx context.Context) ([]domain.BlockedInterval, error)
	Remove(ctx context.Context, id string) error
}

// ProfileUpdate changes only the non-nil fields of the saved profile.
type ProfileUpdate struct {
	DefaultTerm          *string
	DefaultTargetCredits *int
	DefaultStrategy      *string
	Tracks               *[]string
	Interests            *[]string
	AvoidMorning         *bool
	KeepLunchTime        *bool
	AvoidDays            *[]string
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Update(ctx context.Context, upd ProfileUpdate) (*domain.UserProfile, error)
}
