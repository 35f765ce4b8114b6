package repository

import (
	"context"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type MemeRepository interface {
	Create(ctx context.Context, meme *domain.Meme) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Meme, error)
	// List returns memes newest-first.
	List(ctx context.Context, limit, offset int) ([]*domain.Meme, error)
	Count(ctx context.Context) (int64, error)
	// IncrementLikes atomically bumps the like counter and returns the new
	// value. Returns domain.ErrMemeNotFound when no row matches.
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
}

type MatchRepository interface {
	Upsert(ctx context.Context, match *domain.Match) error
	UpsertMany(ctx context.Context, matches []*domain.Match) error
	GetAll(ctx context.Context) ([]*domain.Match, error)
	GetByID(ctx context.Context, id string) (*domain.Match, error)
}

type Repositories struct {
	User  UserRepository
	Meme  MemeRepository
	Match MatchRepository
}
