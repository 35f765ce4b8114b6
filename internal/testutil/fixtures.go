package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	name     string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		name:     "Test User",
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a user via the API and returns it with a token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*AuthResponse, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
		"name":     b.name,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup returned status %d", resp.StatusCode)
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}

	return &result, result.Token
}

// MemeBuilder creates test meme records with a builder pattern
type MemeBuilder struct {
	caption      string
	uploaderID   uuid.UUID
	uploaderName string
	createdAt    time.Time
	likes        int
}

// NewMemeBuilder creates a new MemeBuilder with default values
func NewMemeBuilder() *MemeBuilder {
	return &MemeBuilder{
		caption:      "test meme",
		uploaderID:   uuid.New(),
		uploaderName: "Test User",
		createdAt:    time.Now(),
	}
}

func (b *MemeBuilder) WithCaption(caption string) *MemeBuilder {
	b.caption = caption
	return b
}

func (b *MemeBuilder) WithUploader(user *domain.User) *MemeBuilder {
	b.uploaderID = user.ID
	b.uploaderName = user.Name
	return b
}

func (b *MemeBuilder) WithCreatedAt(createdAt time.Time) *MemeBuilder {
	b.createdAt = createdAt
	return b
}

func (b *MemeBuilder) WithLikes(likes int) *MemeBuilder {
	b.likes = likes
	return b
}

// Build creates the meme record in the database
func (b *MemeBuilder) Build(t *testing.T, db *gorm.DB) *domain.Meme {
	t.Helper()

	filename := uuid.New().String() + ".png"
	meme := &domain.Meme{
		ID:           uuid.New(),
		Type:         domain.MemeTypeImage,
		Filename:     filename,
		OriginalName: "original.png",
		StoragePath:  filename,
		Caption:      b.caption,
		UploaderID:   b.uploaderID,
		UploaderName: b.uploaderName,
		Likes:        b.likes,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.createdAt,
	}

	if err := db.Create(meme).Error; err != nil {
		t.Fatalf("failed to create meme: %v", err)
	}

	return meme
}
