package domain

import (
	"time"

	"github.com/google/uuid"
)

type MemeType string

const (
	MemeTypeImage MemeType = "image"
	MemeTypeVideo MemeType = "video"
)

// Meme is the catalog record for one uploaded image or video. Everything
// except Likes is immutable after creation.
type Meme struct {
	ID           uuid.UUID `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Type         MemeType  `json:"type" gorm:"not null"`
	Filename     string    `json:"filename" gorm:"not null"`
	OriginalName string    `json:"originalName" gorm:"not null"`
	StoragePath  string    `json:"-" gorm:"not null"`
	Caption      string    `json:"caption" gorm:"default:''"`
	UploaderID   uuid.UUID `json:"uploaderId" gorm:"type:uuid;not null"`
	UploaderName string    `json:"uploaderName" gorm:"not null"`
	Likes        int       `json:"likes" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
