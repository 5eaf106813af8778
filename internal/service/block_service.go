package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/google/uuid"
)

type blockService struct {
	blocks repository.BlockedIntervalRepo
}

func NewBlockService(blocks repository.BlockedIntervalRepo) BlockService {
	return &blockService{blocks: blocks}
}

// Add stores a blocked interval given as "MON 09:00-10:30". Blocks may
// overlap each other.
func (s *blockService) Add(ctx context.Context, label, slot string) (*domain.BlockedInterval, error) {
	parsed, err := domain.ParseTimeSlot(slot)
	if err != nil {
		return nil, err
	}
	b := &domain.BlockedInterval{
		ID:    uuid.New().String(),
		Label: strings.TrimSpace(label),
		Slot:  parsed,
	}
	if b.Label == "" {
		b.Label = "blocked"
	}
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *blockService) List(ctx context.Context) ([]domain.BlockedInterval, error) {
	return s.blocks.List(ctx)
}

func (s *blockService) Remove(ctx context.Context, id string) error {
	return s.blocks.Delete(ctx, id)
}
