package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cricbytes/cricbytes/internal/api/middleware"
	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// multipart framing overhead allowed on top of the raw file size cap.
const uploadBodySlack = 1 << 20

type MemeHandler struct {
	memeService *service.MemeService
	maxBytes    int64
}

func NewMemeHandler(memeService *service.MemeService, maxUploadBytes int64) *MemeHandler {
	return &MemeHandler{
		memeService: memeService,
		maxBytes:    maxUploadBytes,
	}
}

type MemeResponse struct {
	ID           string    `json:"_id"`
	Type         string    `json:"type"`
	Filename     string    `json:"filename"`
	Caption      string    `json:"caption"`
	UploaderName string    `json:"uploaderName"`
	CreatedAt    time.Time `json:"createdAt"`
	Likes        int       `json:"likes"`
	ImageURL     string    `json:"imageUrl"`
}

type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalMemes  int64 `json:"totalMemes"`
}

type MemeListResponse struct {
	Data       []MemeResponse     `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

func toMemeResponse(meme *domain.Meme) MemeResponse {
	return MemeResponse{
		ID:           meme.ID.String(),
		Type:         string(meme.Type),
		Filename:     meme.Filename,
		Caption:      meme.Caption,
		UploaderName: meme.UploaderName,
		CreatedAt:    meme.CreatedAt,
		Likes:        meme.Likes,
		ImageURL:     "/uploads/" + meme.Filename,
	}
}

func (h *MemeHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 10
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	list, err := h.memeService.List(r.Context(), page, limit)
	if err != nil {
		logger.Log.Errorw("failed to list memes", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load memes")
		return
	}

	data := make([]MemeResponse, 0, len(list.Items))
	for _, meme := range list.Items {
		data = append(data, toMemeResponse(meme))
	}

	respondJSON(w, http.StatusOK, MemeListResponse{
		Data: data,
		Pagination: PaginationResponse{
			CurrentPage: list.CurrentPage,
			TotalPages:  list.TotalPages,
			TotalMemes:  list.TotalCount,
		},
	})
}

func (h *MemeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+uploadBodySlack)

	file, header, err := r.FormFile("memeFile")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, http.StatusBadRequest, domain.ErrFileTooLarge.Error())
			return
		}
		respondError(w, http.StatusBadRequest, domain.ErrNoFile.Error())
		return
	}
	defer file.Close()

	meme, err := h.memeService.Upload(r.Context(), service.UploadInput{
		UploaderID:   user.ID,
		OriginalName: header.Filename,
		Size:         header.Size,
		Caption:      r.FormValue("caption"),
		File:         file,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge),
			errors.Is(err, domain.ErrUnsupportedFileType),
			errors.Is(err, domain.ErrNoFile):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			respondError(w, http.StatusUnauthorized, "User not found")
		default:
			logger.Log.Errorw("upload failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to process your upload. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    toMemeResponse(meme),
	})
}

func (h *MemeHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Meme not found")
		return
	}

	likes, err := h.memeService.Like(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMemeNotFound) {
			respondError(w, http.StatusNotFound, "Meme not found")
			return
		}
		logger.Log.Errorw("failed to like meme", "memeId", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update likes")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"_id":   id.String(),
		"likes": likes,
	})
}
