package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

// ErrLoaderClosed is returned by RequestPage after Close.
var ErrLoaderClosed = errors.New("loader closed")

type pageFetcher interface {
	FetchPage(ctx context.Context, offset, limit int) ([]domain.VocabularyItem, error)
}

// State is the lifecycle state of a Loader.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Cursor tracks pagination progress.
type Cursor struct {
	NextPage int  `json:"next_page"`
	HasMore  bool `json:"has_more"`
	InFlight bool `json:"in_flight"`
}

// Snapshot is a consistent copy of a loader's observable state.
type Snapshot struct {
	Items  []domain.VocabularyItem
	Cursor Cursor
	State  State
	Err    error
}

// Loader pages through the vocabulary in browse order and keeps an
// append-only buffer that is always a prefix of the remote ordering.
//
// At most one fetch per generation is in flight. A failed fetch leaves the
// loader in StateFailed until Reset or Retry. Reset and Close bump the
// generation and cancel the in-flight fetch; a result from an older
// generation is dropped. Reset does not wait for the cancelled fetch, so a
// RequestPage right after it can overlap a store call that ignores
// cancellation. The buffer is unaffected either way.
type Loader struct {
	log      *slog.Logger
	fetcher  pageFetcher
	pageSize int

	mu     sync.Mutex
	items  []domain.VocabularyItem
	cursor Cursor
	state  State
	err    error
	gen    uint64
	closed bool

	// ctx is cancelled on Reset and Close so a stale fetch stops early.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLoader creates an idle loader. pageSize must be positive.
func NewLoader(logger *slog.Logger, fetcher pageFetcher, pageSize int) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		log:      logger,
		fetcher:  fetcher,
		pageSize: pageSize,
		cursor:   Cursor{HasMore: true},
		ctx:      ctx,
		cancel:   cancel,
	}
}

// RequestPage fetches the next page unless a fetch is already in flight or
// the data is exhausted, in which case it is a no-op returning nil.
//
// In StateFailed it returns the recorded failure without fetching. If ctx
// ends mid-fetch the loader returns to its previous state and ctx's error is
// returned; only store failures are sticky.
func (l *Loader) RequestPage(ctx context.Context) error {
	l.mu.Lock()
	switch {
	case l.closed:
		l.mu.Unlock()
		return ErrLoaderClosed
	case l.state == StateFailed:
		err := l.err
		l.mu.Unlock()
		return err
	case l.cursor.InFlight || !l.cursor.HasMore:
		l.mu.Unlock()
		return nil
	}

	gen := l.gen
	page := l.cursor.NextPage
	prev := l.state
	l.cursor.InFlight = true
	l.state = StateLoading

	fetchCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	l.mu.Unlock()

	rows, err := l.fetcher.FetchPage(fetchCtx, page*l.pageSize, l.pageSize)
	stop()
	cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		if l.closed {
			return ErrLoaderClosed
		}
		l.log.Debug("discarding stale page", slog.Int("page", page))
		return nil
	}

	l.cursor.InFlight = false

	if err != nil {
		if ctx.Err() != nil {
			l.state = prev
			return ctx.Err()
		}
		l.state = StateFailed
		l.err = fmt.Errorf("%w: page %d: %w", domain.ErrFetchFailed, page, err)
		l.log.Error("page fetch failed",
			slog.Int("page", page),
			slog.String("error", err.Error()),
		)
		return l.err
	}

	l.items = append(l.items, rows...)
	l.cursor.HasMore = len(rows) == l.pageSize
	l.cursor.NextPage++
	l.state = StateLoaded
	return nil
}

// Reset discards the buffer and returns to page 0. Any in-flight fetch is
// cancelled and its result ignored. It is used after remote mutations.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.bumpGeneration()
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.items = nil
	l.cursor = Cursor{HasMore: true}
	l.state = StateIdle
	l.err = nil
}

// Retry is the explicit recovery path: Reset followed by RequestPage.
func (l *Loader) Retry(ctx context.Context) error {
	l.Reset()
	return l.RequestPage(ctx)
}

// Close tears the loader down. It is safe to call more than once.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.bumpGeneration()
	l.closed = true
	l.items = nil
}

func (l *Loader) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Loader) bumpGeneration() {
	l.gen++
	l.cancel()
}

// Items returns a copy of the buffer.
func (l *Loader) Items() []domain.VocabularyItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.VocabularyItem(nil), l.items...)
}

// Snapshot returns buffer, cursor, state and error read under one lock.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Items:  append([]domain.VocabularyItem(nil), l.items...),
		Cursor: l.cursor,
		State:  l.state,
		Err:    l.err,
	}
}

func (l *Loader) Cursor() Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the sticky fetch failure, if any.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Len returns the number of buffered items.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
