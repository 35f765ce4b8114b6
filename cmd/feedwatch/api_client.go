package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cricbytes/cricbytes/internal/feed"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type memeDTO struct {
	ID           string    `json:"_id"`
	Type         string    `json:"type"`
	Caption      string    `json:"caption"`
	UploaderName string    `json:"uploaderName"`
	CreatedAt    time.Time `json:"createdAt"`
	Likes        int       `json:"likes"`
	ImageURL     string    `json:"imageUrl"`
}

type memeListDTO struct {
	Data       []memeDTO `json:"data"`
	Pagination struct {
		CurrentPage int   `json:"currentPage"`
		TotalPages  int   `json:"totalPages"`
		TotalMemes  int64 `json:"totalMemes"`
	} `json:"pagination"`
}

type likeDTO struct {
	ID    string `json:"_id"`
	Likes int    `json:"likes"`
}

type errorDTO struct {
	Error string `json:"error"`
}

// FetchPage implements feed.Fetcher against GET /api/memes.
func (c *APIClient) FetchPage(ctx context.Context, page, limit int) (*feed.Page, error) {
	url := c.baseURL + "/api/memes?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed: %s", readError(resp))
	}

	var result memeListDTO
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	items := make([]feed.Item, 0, len(result.Data))
	for _, m := range result.Data {
		items = append(items, feed.Item{
			ID:           m.ID,
			Type:         m.Type,
			Caption:      m.Caption,
			UploaderName: m.UploaderName,
			ImageURL:     m.ImageURL,
			Likes:        m.Likes,
			CreatedAt:    m.CreatedAt,
		})
	}

	return &feed.Page{
		Items:      items,
		TotalPages: result.Pagination.TotalPages,
	}, nil
}

// Like bumps the like counter of one meme. Requires a bearer token.
func (c *APIClient) Like(ctx context.Context, memeID string) (int, error) {
	if c.token == "" {
		return 0, fmt.Errorf("liking requires AUTH_TOKEN to be set")
	}

	url := c.baseURL + "/api/memes/" + memeID + "/like"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("like request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("like request failed: %s", readError(resp))
	}

	var result likeDTO
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode like response: %w", err)
	}

	return result.Likes, nil
}

func readError(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)

	var e errorDTO
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Sprintf("%s (status %d)", e.Error, resp.StatusCode)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
