package api

import (
	"net/http"

	"github.com/cricbytes/cricbytes/internal/api/handlers"
	"github.com/cricbytes/cricbytes/internal/api/middleware"
	"github.com/cricbytes/cricbytes/internal/config"
	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/service"
	"github.com/cricbytes/cricbytes/internal/storage"
	"github.com/cricbytes/cricbytes/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type RouterDeps struct {
	Services *service.Services
	Hub      *websocket.Hub
	DB       *gorm.DB
	Disk     *storage.DiskStore
	S3       *storage.S3Store
	Cfg      *config.Config
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(logger.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(deps.Cfg.AllowedOrigins))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Services.Auth)
	memeHandler := handlers.NewMemeHandler(deps.Services.Meme, deps.Cfg.MaxUploadBytes)
	matchHandler := handlers.NewMatchHandler(deps.Services.Cricket)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	mediaHandler := handlers.NewMediaHandler(deps.Disk, deps.S3)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		r.Route("/memes", func(r chi.Router) {
			r.Get("/", memeHandler.List)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(deps.Services.Auth))
				r.Post("/upload", memeHandler.Upload)
				r.Post("/{id}/like", memeHandler.Like)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.List)
			r.Get("/{id}", matchHandler.Get)
		})
	})

	// Static media
	r.Get("/uploads/{filename}", mediaHandler.Serve)

	// Live score push
	r.Get("/ws/scores", wsHandler.Handle)

	return r
}
