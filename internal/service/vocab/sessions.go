package vocab

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

// Session is one browsing context: a loader plus its identity.
type Session struct {
	ID      uuid.UUID
	Created time.Time
	loader  *Loader
}

// Loader returns the session's paginated loader.
func (s *Session) Loader() *Loader { return s.loader }

// View is what a client renders for a session under a level filter.
type View struct {
	SessionID uuid.UUID               `json:"session_id"`
	Filter    string                  `json:"filter"`
	Items     []domain.VocabularyItem `json:"items"`
	Loaded    int                     `json:"loaded"`
	HasMore   bool                    `json:"has_more"`
	InFlight  bool                    `json:"in_flight"`
	State     State                   `json:"state"`
	Error     string                  `json:"error,omitempty"`
}

// View filters the already loaded buffer. It never fetches.
func (s *Session) View(filter domain.LevelFilter) View {
	snap := s.loader.Snapshot()
	v := View{
		SessionID: s.ID,
		Filter:    filter.String(),
		Items:     FilterView(snap.Items, filter),
		Loaded:    len(snap.Items),
		HasMore:   snap.Cursor.HasMore,
		InFlight:  snap.Cursor.InFlight,
		State:     snap.State,
	}
	if snap.Err != nil {
		v.Error = snap.Err.Error()
	}
	return v
}

// Sessions is a bounded, expiring registry of browsing sessions.
// Evicted sessions have their loader closed.
type Sessions struct {
	log      *slog.Logger
	fetcher  pageFetcher
	pageSize int
	cache    *expirable.LRU[uuid.UUID, *Session]
	now      func() time.Time
}

// NewSessions creates a registry sized by cfg.MaxSessions. A session unused
// for cfg.SessionTTL is evicted.
func NewSessions(logger *slog.Logger, fetcher pageFetcher, cfg config.VocabConfig) *Sessions {
	log := logger.With("service", "vocab_sessions")
	onEvict := func(id uuid.UUID, s *Session) {
		s.loader.Close()
		log.Debug("session closed", slog.String("session_id", id.String()))
	}
	return &Sessions{
		log:      log,
		fetcher:  fetcher,
		pageSize: cfg.PageSize,
		cache:    expirable.NewLRU[uuid.UUID, *Session](cfg.MaxSessions, onEvict, cfg.SessionTTL),
		now:      time.Now,
	}
}

// Open registers a new session and requests its first page. The session is
// returned even when that first fetch fails; the failure is visible in its
// View and recoverable through Retry.
func (m *Sessions) Open(ctx context.Context) (*Session, error) {
	s := &Session{
		ID:      uuid.New(),
		Created: m.now(),
		loader:  NewLoader(m.log, m.fetcher, m.pageSize),
	}
	m.cache.Add(s.ID, s)

	if err := s.loader.RequestPage(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Get returns a live session or ErrNotFound. Every hit renews the
// session's expiry, so SessionTTL is an idle timeout.
func (m *Sessions) Get(id uuid.UUID) (*Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.cache.Add(id, s)

	// Expired between Get and Add: the loader is already closed.
	if s.loader.isClosed() {
		m.cache.Remove(id)
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// Close tears a session down. Closing an unknown session returns ErrNotFound.
func (m *Sessions) Close(id uuid.UUID) error {
	if !m.cache.Remove(id) {
		return domain.ErrNotFound
	}
	return nil
}

// InvalidateAll resets every live loader. Called after store mutations,
// since any insert, update or delete shifts page offsets.
func (m *Sessions) InvalidateAll() {
	sessions := m.cache.Values()
	for _, s := range sessions {
		s.loader.Reset()
	}
	if len(sessions) > 0 {
		m.log.Info("sessions invalidated", slog.Int("count", len(sessions)))
	}
}

// Len returns the number of live sessions.
func (m *Sessions) Len() int { return m.cache.Len() }
