package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
}

func NewProfileService(profiles repository.UserProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

// Update applies upd to the saved profile. Nothing is written when any
// field is invalid.
func (s *profileService) Update(ctx context.Context, upd ProfileUpdate) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}

	if upd.DefaultTerm != nil {
		p.DefaultTerm = strings.TrimSpace(*upd.DefaultTerm)
	}
	if upd.DefaultTargetCredits != nil {
		if *upd.DefaultTargetCredits <= 0 || *upd.DefaultTargetCredits > maxTargetCredits {
			return nil, fmt.Errorf("default credits must be between 1 and %d (got %d)", maxTargetCredits, *upd.DefaultTargetCredits)
		}
		p.DefaultTargetCredits = *upd.DefaultTargetCredits
	}
	if upd.DefaultStrategy != nil {
		strategy, err := domain.ParseStrategy(*upd.DefaultStrategy)
		if err != nil {
			return nil, err
		}
		p.DefaultStrategy = strategy
	}
	if upd.Tracks != nil {
		p.Tracks = trimmedList(*upd.Tracks)
	}
	if upd.Interests != nil {
		p.Interests = trimmedList(*upd.Interests)
	}
	if upd.AvoidMorning != nil {
		p.AvoidMorning = *upd.AvoidMorning
	}
	if upd.KeepLunchTime != nil {
		p.KeepLunchTime = *upd.KeepLunchTime
	}
	if upd.AvoidDays != nil {
		days, err := parseWeekdays(*upd.AvoidDays)
		if err != nil {
			return nil, err
		}
		p.AvoidDays = days
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func trimmedList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
