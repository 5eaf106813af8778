package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
)

// SQLiteUserProfileRepo reads and writes the single 'default' profile row.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, default_term, default_target_credits, default_strategy, tracks, interests,
		avoid_morning, keep_lunch_time, avoid_days,
		weight_credit_deviation, weight_strategy_bonus, weight_free_day
		FROM user_profile WHERE id = 'default'`

	var (
		p                        domain.UserProfile
		strategy                 string
		tracks, interests, avoid string
		avoidMorning, keepLunch  int
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.ID,
		&p.DefaultTerm,
		&p.DefaultTargetCredits,
		&strategy,
		&tracks,
		&interests,
		&avoidMorning,
		&keepLunch,
		&avoid,
		&p.WeightCreditDeviation,
		&p.WeightStrategyBonus,
		&p.WeightFreeDay,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.DefaultStrategy = domain.Strategy(strategy)
	p.Tracks = splitList(tracks)
	p.Interests = splitList(interests)
	p.AvoidMorning = intToBool(avoidMorning)
	p.KeepLunchTime = intToBool(keepLunch)
	p.AvoidDays = splitWeekdays(avoid)
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if p.ID == "" {
		p.ID = "default"
	}
	query := `INSERT OR REPLACE INTO user_profile (id, default_term, default_target_credits,
		default_strategy, tracks, interests, avoid_morning, keep_lunch_time, avoid_days,
		weight_credit_deviation, weight_strategy_bonus, weight_free_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.DefaultTerm,
		p.DefaultTargetCredits,
		string(p.DefaultStrategy),
		joinList(p.Tracks),
		joinList(p.Interests),
		boolToInt(p.AvoidMorning),
		boolToInt(p.KeepLunchTime),
		joinWeekdays(p.AvoidDays),
		p.WeightCreditDeviation,
		p.WeightStrategyBonus,
		p.WeightFreeDay,
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
