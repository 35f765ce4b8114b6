package service

import (
	"github.com/cricbytes/cricbytes/internal/config"
	"github.com/cricbytes/cricbytes/internal/repository"
	"github.com/cricbytes/cricbytes/internal/storage"
)

type Services struct {
	Auth    *AuthService
	Meme    *MemeService
	Cricket *CricketService
}

func NewServices(repos *repository.Repositories, blobs storage.BlobStore, broadcaster MatchBroadcaster, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg),
		Meme:    NewMemeService(repos.Meme, repos.User, blobs, cfg),
		Cricket: NewCricketService(repos.Match, cfg, broadcaster),
	}
}
