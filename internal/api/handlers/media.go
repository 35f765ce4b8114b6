package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/storage"
	"github.com/go-chi/chi/v5"
)

var mediaContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// MediaHandler serves stored blobs under /uploads/. The disk backend streams
// the file directly; the S3 backend redirects to a presigned URL.
type MediaHandler struct {
	disk *storage.DiskStore
	s3   *storage.S3Store
}

func NewMediaHandler(disk *storage.DiskStore, s3 *storage.S3Store) *MediaHandler {
	return &MediaHandler{disk: disk, s3: s3}
}

func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	// Base strips any path traversal out of the parameter.
	filename := filepath.Base(chi.URLParam(r, "filename"))
	if filename == "." || filename == "/" {
		respondError(w, http.StatusNotFound, "File not found")
		return
	}

	if h.s3 != nil {
		url, err := h.s3.PresignGetURL(r.Context(), filename)
		if err != nil {
			logger.Log.Errorw("failed to presign media url", "filename", filename, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to load file")
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	path := filepath.Join(h.disk.Dir(), filename)
	f, err := os.Open(path)
	if err != nil {
		respondError(w, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondError(w, http.StatusNotFound, "File not found")
		return
	}

	if ct, ok := mediaContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		w.Header().Set("Content-Type", ct)
	}

	http.ServeContent(w, r, filename, info.ModTime(), f)
}
