package vocabimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

type vocabWriter interface {
	InsertRows(ctx context.Context, rows []domain.NewVocabulary) (int, error)
}

type sessionInvalidator interface {
	InvalidateAll()
}

// Service runs the two-phase bulk import: Validate, then Commit.
type Service struct {
	log      *slog.Logger
	vocab    vocabWriter
	sessions sessionInvalidator
	spec     ColumnSpec
}

// NewService creates a new import service parsing with spec.
func NewService(log *slog.Logger, vocab vocabWriter, sessions sessionInvalidator, spec ColumnSpec) *Service {
	return &Service{
		log:      log.With("service", "vocab_import"),
		vocab:    vocab,
		sessions: sessions,
		spec:     spec,
	}
}

// Validate parses text with the configured column spec. Nothing is written.
func (s *Service) Validate(text string) (Batch, error) {
	return ParseBatch(text, s.spec)
}

// Commit inserts every valid row of batch in one all-or-nothing write.
// A batch with any invalid row, or with no valid row, fails with
// ErrValidationIncomplete before touching the store.
func (s *Service) Commit(ctx context.Context, batch Batch) (int, error) {
	if !batch.CanCommit() {
		return 0, fmt.Errorf("%w: %d invalid of %d rows",
			domain.ErrValidationIncomplete, len(batch.Invalid()), batch.Len())
	}

	valid := batch.Valid()
	rows := make([]domain.NewVocabulary, len(valid))
	for i, r := range valid {
		rows[i] = r.Vocab
	}

	return s.insert(ctx, rows)
}

// CreateRows inserts rows entered one by one in the admin form. Rows missing
// simplified, pinyin or english are dropped; if none remain the call fails
// with ErrValidationIncomplete. Levels are range-checked for the rest.
func (s *Service) CreateRows(ctx context.Context, rows []domain.NewVocabulary) (int, error) {
	complete := make([]domain.NewVocabulary, 0, len(rows))
	for _, r := range rows {
		if r.IsComplete() {
			complete = append(complete, r)
		}
	}
	if len(complete) == 0 {
		return 0, fmt.Errorf("%w: no complete rows", domain.ErrValidationIncomplete)
	}

	for i, r := range complete {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return s.insert(ctx, complete)
}

func (s *Service) insert(ctx context.Context, rows []domain.NewVocabulary) (int, error) {
	n, err := s.vocab.InsertRows(ctx, rows)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		s.log.ErrorContext(ctx, "vocab import failed",
			slog.Int("rows", len(rows)),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("%w: insert %d rows: %w", domain.ErrWriteFailed, len(rows), err)
	}

	s.sessions.InvalidateAll()
	s.log.InfoContext(ctx, "vocab imported", slog.Int("rows", n))
	return n, nil
}
