package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/vocab"
)

type sessionService interface {
	Open(ctx context.Context) (*vocab.Session, error)
	Get(id uuid.UUID) (*vocab.Session, error)
	Close(id uuid.UUID) error
}

// VocabHandler serves vocabulary browsing sessions.
type VocabHandler struct {
	sessions sessionService
	log      *slog.Logger
}

// NewVocabHandler creates a VocabHandler.
func NewVocabHandler(sessions sessionService, logger *slog.Logger) *VocabHandler {
	return &VocabHandler{sessions: sessions, log: logger.With("handler", "vocab")}
}

// Open handles POST /api/vocab/sessions. The first page is requested before
// responding; if it fails the session is still created and its view carries
// the failure so the client can retry it.
func (h *VocabHandler) Open(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.levelFilter(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.Open(r.Context())
	if s == nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if err != nil {
		if !errors.Is(err, domain.ErrFetchFailed) {
			_ = h.sessions.Close(s.ID)
			writeDomainError(w, r, h.log, err)
			return
		}
		h.log.WarnContext(r.Context(), "first page failed",
			slog.String("session_id", s.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, http.StatusCreated, s.View(filter))
}

// View handles GET /api/vocab/sessions/{id}?level=All|1..6. It only filters
// what is already loaded; has_more tells the client more rows may match.
func (h *VocabHandler) View(w http.ResponseWriter, r *http.Request) {
	s, filter, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View(filter))
}

// Next handles POST /api/vocab/sessions/{id}/next, the proximity signal.
func (h *VocabHandler) Next(w http.ResponseWriter, r *http.Request) {
	s, filter, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Loader().RequestPage(r.Context()); err != nil {
		h.writeLoaderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View(filter))
}

// Retry handles POST /api/vocab/sessions/{id}/retry: reset and reload page 0.
func (h *VocabHandler) Retry(w http.ResponseWriter, r *http.Request) {
	s, filter, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Loader().Retry(r.Context()); err != nil {
		h.writeLoaderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View(filter))
}

// Close handles DELETE /api/vocab/sessions/{id}.
func (h *VocabHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Close(id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VocabHandler) writeLoaderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, vocab.ErrLoaderClosed) {
		writeError(w, http.StatusNotFound, "session closed")
		return
	}
	writeDomainError(w, r, h.log, err)
}

func (h *VocabHandler) session(w http.ResponseWriter, r *http.Request) (*vocab.Session, domain.LevelFilter, bool) {
	filter, ok := h.levelFilter(w, r)
	if !ok {
		return nil, filter, false
	}
	id, ok := h.sessionID(w, r)
	if !ok {
		return nil, filter, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return nil, filter, false
	}
	return s, filter, true
}

func (h *VocabHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *VocabHandler) levelFilter(w http.ResponseWriter, r *http.Request) (domain.LevelFilter, bool) {
	filter, err := domain.ParseLevelFilter(r.URL.Query().Get("level"))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return filter, false
	}
	return filter, true
}
