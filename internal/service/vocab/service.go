package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

type vocabRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.VocabularyItem, error)
	Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error)
	Delete(ctx context.Context, id int64) error
}

type sessionInvalidator interface {
	InvalidateAll()
}

// Service provides admin operations on single vocabulary items.
type Service struct {
	log      *slog.Logger
	vocab    vocabRepo
	sessions sessionInvalidator
}

// NewService creates a new vocabulary admin service.
func NewService(log *slog.Logger, vocab vocabRepo, sessions sessionInvalidator) *Service {
	return &Service{
		log:      log.With("service", "vocab"),
		vocab:    vocab,
		sessions: sessions,
	}
}

// Get returns one item by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.VocabularyItem, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	item, err := s.vocab.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vocab %d: %w", id, err)
	}
	return item, nil
}

// Delete removes an item and invalidates every browsing session.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}
	if err := s.vocab.Delete(ctx, id); err != nil {
		return writeError("delete", id, err)
	}

	s.sessions.InvalidateAll()
	s.log.InfoContext(ctx, "vocab deleted", slog.Int64("id", id))
	return nil
}

// Update replaces the fields of an item and invalidates every browsing session.
func (s *Service) Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	item, err := s.vocab.Update(ctx, id, v)
	if err != nil {
		return nil, writeError("update", id, err)
	}

	s.sessions.InvalidateAll()
	s.log.InfoContext(ctx, "vocab updated", slog.Int64("id", id))
	return item, nil
}

// writeError keeps not-found, validation and context errors as they are and
// turns any other store failure into ErrWriteFailed.
func writeError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s vocab %d: %w", op, id, err)
	default:
		return fmt.Errorf("%w: %s vocab %d: %w", domain.ErrWriteFailed, op, id, err)
	}
}
