package postgres

import (
	"context"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memeRepository struct {
	db *gorm.DB
}

func NewMemeRepository(db *gorm.DB) *memeRepository {
	return &memeRepository{db: db}
}

func (r *memeRepository) Create(ctx context.Context, meme *domain.Meme) error {
	return r.db.WithContext(ctx).Create(meme).Error
}

func (r *memeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meme, error) {
	var meme domain.Meme
	err := r.db.WithContext(ctx).First(&meme, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &meme, nil
}

func (r *memeRepository) List(ctx context.Context, limit, offset int) ([]*domain.Meme, error) {
	var memes []*domain.Meme
	// id tiebreak keeps page boundaries stable for rows created in the same
	// instant.
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&memes).Error
	if err != nil {
		return nil, err
	}
	return memes, nil
}

func (r *memeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Meme{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *memeRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	// Single-statement increment so concurrent likes never lose updates.
	var likes int
	result := r.db.WithContext(ctx).
		Raw("UPDATE memes SET likes = likes + 1, updated_at = NOW() WHERE id = ? RETURNING likes", id).
		Scan(&likes)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, domain.ErrMemeNotFound
	}
	return likes, nil
}
