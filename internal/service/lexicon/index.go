// Package lexicon serves single-token dictionary lookups from an in-memory
// index built once from the static dataset.
package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

type datasetFetcher interface {
	Fetch(ctx context.Context) ([]domain.LexiconEntry, error)
}

// Definition is the lookup-on-demand answer. A miss is Found=false, not an error.
type Definition struct {
	Found bool                 `json:"found"`
	Entry *domain.LexiconEntry `json:"entry,omitempty"`
}

// Index maps normalized simplified and traditional forms to their entry.
//
// The dataset is fetched at most once per Index. Concurrent Load calls share
// the same pending load; when it fails the index stays empty for the rest
// of its life and every lookup answers domain.ErrNotFound.
type Index struct {
	log     *slog.Logger
	fetcher datasetFetcher
	timeout time.Duration

	mu      sync.Mutex
	started bool
	done    chan struct{}

	// Written by the load goroutine before done is closed, read-only after.
	entries map[string]*domain.LexiconEntry
	loadErr error
}

// NewIndex creates an unloaded index. Nothing is fetched until Start, Load
// or the first lookup.
func NewIndex(logger *slog.Logger, fetcher datasetFetcher, cfg config.LexiconConfig) *Index {
	return &Index{
		log:     logger.With("service", "lexicon"),
		fetcher: fetcher,
		timeout: cfg.LoadTimeout,
		done:    make(chan struct{}),
	}
}

// Start kicks off the dataset load without waiting for it. Only the first
// call has an effect. The load keeps ctx's values but not its cancellation.
func (ix *Index) Start(ctx context.Context) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.started {
		return
	}
	ix.started = true

	loadCtx := context.WithoutCancel(ctx)
	var cancel context.CancelFunc = func() {}
	if ix.timeout > 0 {
		loadCtx, cancel = context.WithTimeout(loadCtx, ix.timeout)
	}

	go func() {
		defer cancel()
		ix.load(loadCtx)
	}()
}

// Load starts the load if needed and waits for it to finish. It returns nil
// once the index is usable, even if the dataset could not be fetched (see
// LoadErr). A ctx error is returned only if ctx ends while waiting.
func (ix *Index) Load(ctx context.Context) error {
	ix.Start(ctx)

	// A finished load wins over a cancelled ctx.
	select {
	case <-ix.done:
		return nil
	default:
	}

	select {
	case <-ix.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ix *Index) load(ctx context.Context) {
	defer close(ix.done)

	start := time.Now()
	entries, err := ix.fetcher.Fetch(ctx)
	if err != nil {
		ix.loadErr = err
		ix.entries = map[string]*domain.LexiconEntry{}
		ix.log.ErrorContext(ctx, "lexicon load failed, index stays empty",
			slog.String("error", err.Error()),
		)
		return
	}

	m := make(map[string]*domain.LexiconEntry, len(entries)*2)
	for i := range entries {
		e := &entries[i]
		for _, key := range e.Keys() {
			m[key] = e // later records win on key collision
		}
	}
	ix.entries = m

	ix.log.InfoContext(ctx, "lexicon loaded",
		slog.Int("entries", len(entries)),
		slog.Int("keys", len(m)),
		slog.Duration("duration", time.Since(start)),
	)
}

// Lookup waits for the index and returns the entry stored under token.
// Misses return domain.ErrNotFound.
func (ix *Index) Lookup(ctx context.Context, token string) (*domain.LexiconEntry, error) {
	if err := ix.Load(ctx); err != nil {
		return nil, err
	}

	key := domain.NormalizeToken(token)
	if e, ok := ix.entries[key]; ok && key != "" {
		return e, nil
	}
	return nil, fmt.Errorf("lexicon %q: %w", key, domain.ErrNotFound)
}

// Define is Lookup for the UI: a miss is a Definition with Found=false.
// The only error is the caller's context ending while the index loads.
func (ix *Index) Define(ctx context.Context, token string) (Definition, error) {
	entry, err := ix.Lookup(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return Definition{Found: false}, nil
	}
	if err != nil {
		return Definition{}, err
	}
	return Definition{Found: true, Entry: entry}, nil
}

// Loaded reports whether the load has finished, successfully or not.
func (ix *Index) Loaded() bool {
	select {
	case <-ix.done:
		return true
	default:
		return false
	}
}

// Len returns the number of lookup keys, 0 while loading.
func (ix *Index) Len() int {
	if !ix.Loaded() {
		return 0
	}
	return len(ix.entries)
}

// LoadErr returns why the dataset could not be fetched, nil while loading
// or after a successful load.
func (ix *Index) LoadErr() error {
	if !ix.Loaded() {
		return nil
	}
	return ix.loadErr
}
