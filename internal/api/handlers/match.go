package handlers

import (
	"errors"
	"net/http"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/service"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	cricketService *service.CricketService
}

func NewMatchHandler(cricketService *service.CricketService) *MatchHandler {
	return &MatchHandler{cricketService: cricketService}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.cricketService.ListMatches(r.Context())
	if err != nil {
		logger.Log.Errorw("failed to list matches", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load matches")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   matches,
	})
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	match, err := h.cricketService.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			respondError(w, http.StatusNotFound, "Match not found")
			return
		}
		logger.Log.Errorw("failed to get match", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load match")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   match,
	})
}
