package postgres

import (
	"context"

	"github.com/cricbytes/cricbytes/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Upsert(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(match).Error
}

func (r *matchRepository) UpsertMany(ctx context.Context, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(matches).Error
}

func (r *matchRepository) GetAll(ctx context.Context) ([]*domain.Match, error) {
	var matches []*domain.Match
	err := r.db.WithContext(ctx).Order("date_time_gmt ASC").Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}
