package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/cricbytes/cricbytes/internal/config"
	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/repository"
	"github.com/cricbytes/cricbytes/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sniffLen is how many leading bytes are read for content-type detection.
const sniffLen = 3072

var allowedExtensions = map[string]domain.MemeType{
	".jpg":  domain.MemeTypeImage,
	".jpeg": domain.MemeTypeImage,
	".png":  domain.MemeTypeImage,
	".gif":  domain.MemeTypeImage,
	".mp4":  domain.MemeTypeVideo,
	".webm": domain.MemeTypeVideo,
}

type MemeService struct {
	memeRepo repository.MemeRepository
	userRepo repository.UserRepository
	blobs    storage.BlobStore
	cfg      *config.Config
}

func NewMemeService(memeRepo repository.MemeRepository, userRepo repository.UserRepository, blobs storage.BlobStore, cfg *config.Config) *MemeService {
	return &MemeService{
		memeRepo: memeRepo,
		userRepo: userRepo,
		blobs:    blobs,
		cfg:      cfg,
	}
}

type UploadInput struct {
	UploaderID   uuid.UUID
	OriginalName string
	Size         int64
	Caption      string
	File         io.Reader
}

// Upload validates and stores one meme: blob first, catalog record second.
// If the catalog write fails the blob is deleted again so no orphaned file is
// left behind.
func (s *MemeService) Upload(ctx context.Context, input UploadInput) (*domain.Meme, error) {
	if input.File == nil {
		return nil, domain.ErrNoFile
	}
	if input.Size > s.cfg.MaxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(input.OriginalName))
	memeType, ok := allowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	contentType, reader, err := sniffContentType(input.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	// The extension alone is spoofable; the actual bytes must be an image or
	// a video and agree with the extension's class.
	sniffedType := classify(contentType)
	if sniffedType != memeType {
		return nil, domain.ErrUnsupportedFileType
	}

	uploader, err := s.userRepo.GetByID(ctx, input.UploaderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	filename := uuid.New().String() + ext
	if err := s.blobs.Save(ctx, filename, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	meme := &domain.Meme{
		ID:           uuid.New(),
		Type:         memeType,
		Filename:     filename,
		OriginalName: input.OriginalName,
		StoragePath:  filename,
		Caption:      input.Caption,
		UploaderID:   uploader.ID,
		UploaderName: uploader.Name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.memeRepo.Create(ctx, meme); err != nil {
		if delErr := s.blobs.Delete(ctx, filename); delErr != nil {
			logger.Log.Errorw("failed to clean up orphaned blob",
				"filename", filename, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create meme record: %w", err)
	}

	return meme, nil
}

type MemeList struct {
	Items       []*domain.Meme
	CurrentPage int
	TotalPages  int
	TotalCount  int64
}

// List returns one page of the catalog, newest first. Pages are 1-indexed.
func (s *MemeService) List(ctx context.Context, page, limit int) (*MemeList, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	items, err := s.memeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.memeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &MemeList{
		Items:       items,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalCount:  total,
	}, nil
}

// Like bumps the like counter by exactly one and returns the new count.
// Repeat likes by the same user are not deduplicated.
func (s *MemeService) Like(ctx context.Context, id uuid.UUID) (int, error) {
	return s.memeRepo.IncrementLikes(ctx, id)
}

// sniffContentType detects the content type from the leading bytes and
// returns a reader that replays the whole stream.
func sniffContentType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	return mt.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

func classify(contentType string) domain.MemeType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.MemeTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return domain.MemeTypeVideo
	default:
		return ""
	}
}
