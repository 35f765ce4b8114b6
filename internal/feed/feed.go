// Package feed implements the client-side pagination state machine behind
// the infinite-scroll meme feed.
package feed

import (
	"context"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateExhausted
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Item is one meme as rendered in the feed.
type Item struct {
	ID           string
	Type         string
	Caption      string
	UploaderName string
	ImageURL     string
	Likes        int
	CreatedAt    time.Time
}

// Page is one fetched page plus the server-reported page total.
type Page struct {
	Items      []Item
	TotalPages int
}

// Fetcher loads one page from the backend. Pages are 1-indexed.
type Fetcher interface {
	FetchPage(ctx context.Context, page, limit int) (*Page, error)
}

// Feed accumulates items across pages. It is driven from a single event loop
// and holds no locks: the Loading state itself guards against a second
// concurrent fetch.
type Feed struct {
	fetcher  Fetcher
	pageSize int

	state      State
	page       int // last successfully loaded page
	totalPages int
	items      []Item
	lastErr    error
}

func New(fetcher Fetcher, pageSize int) *Feed {
	return &Feed{
		fetcher:  fetcher,
		pageSize: pageSize,
		state:    StateIdle,
	}
}

func (f *Feed) State() State  { return f.state }
func (f *Feed) Items() []Item { return f.items }
func (f *Feed) Err() error    { return f.lastErr }

// HasMore reports whether another page may exist.
func (f *Feed) HasMore() bool {
	return f.state != StateExhausted
}

// LoadMore fetches the next page. It is a no-op while a fetch is in flight,
// after exhaustion, and after an error (use Retry for the latter).
func (f *Feed) LoadMore(ctx context.Context) error {
	if f.state != StateIdle {
		return nil
	}

	f.state = StateLoading
	page, err := f.fetcher.FetchPage(ctx, f.page+1, f.pageSize)
	if err != nil {
		f.state = StateErrored
		f.lastErr = err
		return err
	}

	if len(page.Items) == 0 {
		f.state = StateExhausted
		return nil
	}

	f.items = append(f.items, page.Items...)
	f.page++
	f.totalPages = page.TotalPages
	f.lastErr = nil

	if f.page >= page.TotalPages {
		f.state = StateExhausted
	} else {
		f.state = StateIdle
	}

	return nil
}

// Retry re-attempts the failed fetch. Only valid from the errored state.
func (f *Feed) Retry(ctx context.Context) error {
	if f.state != StateErrored {
		return nil
	}

	f.state = StateIdle
	return f.LoadMore(ctx)
}
