package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/alexanderramin/tably/internal/scheduler"
	"github.com/google/uuid"
)

type commitmentService struct {
	commitments repository.CommitmentRepo
	courses     repository.CourseRepo
	uow         db.UnitOfWork
}

func NewCommitmentService(commitments repository.CommitmentRepo, courses repository.CourseRepo, uow db.UnitOfWork) CommitmentService {
	return &commitmentService{commitments: commitments, courses: courses, uow: uow}
}

// Add stores a fixed commitment. A commitment may not overlap another
// commitment of the same term.
func (s *commitmentService) Add(ctx context.Context, in CommitmentInput) (*domain.FixedCommitment, error) {
	c := &domain.FixedCommitment{
		ID:   uuid.New().String(),
		Term: strings.TrimSpace(in.Term),
	}

	if id := strings.TrimSpace(in.CourseID); id != "" {
		course, err := s.courses.GetByID(ctx, c.Term, id)
		if err != nil {
			return nil, fmt.Errorf("looking up course %s: %w", id, err)
		}
		c.CourseID = course.ID
		c.Title = course.Name
		c.Credits = course.Credits
		c.MeetingTimes = append([]domain.TimeSlot(nil), course.MeetingTimes...)
	} else {
		c.Title = strings.TrimSpace(in.Title)
		c.Credits = in.Credits
		if c.Title == "" {
			return nil, errors.New("commitment title is required")
		}
		if c.Credits < 0 {
			return nil, fmt.Errorf("commitment credits must be >= 0 (got %d)", c.Credits)
		}
		for _, raw := range in.Meetings {
			slot, err := domain.ParseTimeSlot(raw)
			if err != nil {
				return nil, err
			}
			c.MeetingTimes = append(c.MeetingTimes, slot)
		}
	}
	if len(c.MeetingTimes) == 0 {
		return nil, errors.New("commitment needs at least one meeting time")
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCommitments := repository.NewSQLiteCommitmentRepo(tx)
		existing, err := txCommitments.List(ctx, c.Term)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if scheduler.SlotsConflict(c.MeetingTimes, other.MeetingTimes) {
				return fmt.Errorf("commitment overlaps existing commitment %q", other.Title)
			}
		}
		return txCommitments.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commitmentService) List(ctx context.Context, term string) ([]domain.FixedCommitment, error) {
	return s.commitments.List(ctx, term)
}

func (s *commitmentService) Remove(ctx context.Context, id string) error {
	return s.commitments.Delete(ctx, id)
}
