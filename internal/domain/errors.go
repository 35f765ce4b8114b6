package domain

import "errors"

// Upload validation errors
var (
	ErrNoFile              = errors.New("no file was uploaded")
	ErrFileTooLarge        = errors.New("file size exceeds 30MB limit")
	ErrUnsupportedFileType = errors.New("invalid file type. Only images (JPEG, PNG, GIF) and videos (MP4, WebM) are allowed")
)

// Catalog errors
var (
	ErrMemeNotFound  = errors.New("meme not found")
	ErrMatchNotFound = errors.New("match not found")
)
