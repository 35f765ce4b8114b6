package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cricbytes/cricbytes/internal/config"
	"github.com/cricbytes/cricbytes/internal/domain"
	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/repository"
	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// MatchBroadcaster pushes refreshed matches to connected live-score clients.
type MatchBroadcaster interface {
	BroadcastMatches(matches []*domain.Match)
}

// CricketService keeps a local cache of fixtures from the external cricket
// data provider and refreshes it on a fixed interval. Provider outages keep
// the previous cache intact.
type CricketService struct {
	matchRepo   repository.MatchRepository
	cfg         *config.Config
	client      *resty.Client
	broadcaster MatchBroadcaster
}

func NewCricketService(matchRepo repository.MatchRepository, cfg *config.Config, broadcaster MatchBroadcaster) *CricketService {
	client := resty.New().
		SetBaseURL(cfg.CricketAPIBaseURL).
		SetTimeout(30 * time.Second)

	return &CricketService{
		matchRepo:   matchRepo,
		cfg:         cfg,
		client:      client,
		broadcaster: broadcaster,
	}
}

type providerResponse struct {
	Status string            `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

type providerMatch struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MatchType    string `json:"matchType"`
	Status       string `json:"status"`
	Venue        string `json:"venue"`
	Date         string `json:"date"`
	DateTimeGMT  string `json:"dateTimeGMT"`
	MatchStarted bool   `json:"matchStarted"`
	MatchEnded   bool   `json:"matchEnded"`
}

func (s *CricketService) ListMatches(ctx context.Context) ([]*domain.Match, error) {
	return s.matchRepo.GetAll(ctx)
}

func (s *CricketService) GetMatch(ctx context.Context, id string) (*domain.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// Refresh pulls current and upcoming matches from the provider and upserts
// them into the cache. Returns the number of matches refreshed.
func (s *CricketService) Refresh(ctx context.Context) (int, error) {
	current, err := s.fetchMatches(ctx, "/currentMatches")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch current matches: %w", err)
	}

	upcoming, err := s.fetchMatches(ctx, "/matches")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch upcoming matches: %w", err)
	}

	seen := make(map[string]bool)
	matches := make([]*domain.Match, 0, len(current)+len(upcoming))
	for _, m := range append(current, upcoming...) {
		if m.ID == "" || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		matches = append(matches, m)
	}

	if err := s.matchRepo.UpsertMany(ctx, matches); err != nil {
		return 0, fmt.Errorf("failed to upsert matches: %w", err)
	}

	if s.broadcaster != nil && len(matches) > 0 {
		s.broadcaster.BroadcastMatches(matches)
	}

	return len(matches), nil
}

func (s *CricketService) fetchMatches(ctx context.Context, path string) ([]*domain.Match, error) {
	var body providerResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("apikey", s.cfg.CricketAPIKey).
		SetQueryParam("offset", "0").
		SetResult(&body).
		Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode())
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("provider returned status %q", body.Status)
	}

	now := time.Now()
	matches := make([]*domain.Match, 0, len(body.Data))
	for _, raw := range body.Data {
		var pm providerMatch
		if err := json.Unmarshal(raw, &pm); err != nil {
			logger.Log.Warnw("skipping unparseable match payload", "error", err)
			continue
		}

		matches = append(matches, &domain.Match{
			ID:           pm.ID,
			Name:         pm.Name,
			MatchType:    pm.MatchType,
			Status:       pm.Status,
			Venue:        pm.Venue,
			Date:         pm.Date,
			DateTimeGMT:  pm.DateTimeGMT,
			MatchStarted: pm.MatchStarted,
			MatchEnded:   pm.MatchEnded,
			RawData:      []byte(raw),
			LastSyncedAt: now,
		})
	}

	return matches, nil
}

// RunPoller refreshes the cache immediately and then on every tick until ctx
// is cancelled.
func (s *CricketService) RunPoller(ctx context.Context, interval time.Duration) {
	if s.cfg.CricketAPIKey == "" {
		logger.Log.Warn("CRICKET_API_KEY not set, match refresh disabled")
		return
	}

	refresh := func() {
		n, err := s.Refresh(ctx)
		if err != nil {
			logger.Log.Errorw("match refresh failed", "error", err)
			return
		}
		logger.Log.Debugw("match cache refreshed", "matches", n)
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
