package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/vocabimport"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/transport/middleware"
)

// maxImportBody bounds the size of a bulk import request.
const maxImportBody = 4 << 20

type importService interface {
	Validate(text string) (vocabimport.Batch, error)
	Commit(ctx context.Context, batch vocabimport.Batch) (int, error)
	CreateRows(ctx context.Context, rows []domain.NewVocabulary) (int, error)
}

type vocabService interface {
	Get(ctx context.Context, id int64) (*domain.VocabularyItem, error)
	Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error)
	Delete(ctx context.Context, id int64) error
}

// AdminHandler serves the admin console endpoints.
type AdminHandler struct {
	importer importService
	vocab    vocabService
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(importer importService, vocab vocabService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		importer: importer,
		vocab:    vocab,
		log:      logger.With("handler", "admin"),
	}
}

type insertedResponse struct {
	Inserted int `json:"inserted"`
}

type commitRejectedResponse struct {
	Error  string             `json:"error"`
	Report vocabimport.Report `json:"report"`
}

type createRowsRequest struct {
	Rows []domain.NewVocabulary `json:"rows"`
}

// ValidateImport handles POST /api/admin/vocab/validate. The body is the raw
// import text; nothing is written.
func (h *AdminHandler) ValidateImport(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	batch, ok := h.parseBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, batch.Report())
}

// CommitImport handles POST /api/admin/vocab/commit. The text is validated
// again here; a batch that is not fully valid is rejected with its report.
func (h *AdminHandler) CommitImport(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	batch, ok := h.parseBody(w, r)
	if !ok {
		return
	}

	n, err := h.importer.Commit(r.Context(), batch)
	if errors.Is(err, domain.ErrValidationIncomplete) {
		writeJSON(w, http.StatusUnprocessableEntity, commitRejectedResponse{
			Error:  err.Error(),
			Report: batch.Report(),
		})
		return
	}
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, insertedResponse{Inserted: n})
}

// CreateRows handles POST /api/admin/vocab with {"rows": [...]}.
func (h *AdminHandler) CreateRows(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req createRowsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxImportBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.importer.CreateRows(r.Context(), req.Rows)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, insertedResponse{Inserted: n})
}

// GetVocab handles GET /api/admin/vocab/{id}.
func (h *AdminHandler) GetVocab(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := vocabID(w, r)
	if !ok {
		return
	}

	item, err := h.vocab.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateVocab handles PUT /api/admin/vocab/{id}.
func (h *AdminHandler) UpdateVocab(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := vocabID(w, r)
	if !ok {
		return
	}

	var req domain.NewVocabulary
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.vocab.Update(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteVocab handles DELETE /api/admin/vocab/{id}.
func (h *AdminHandler) DeleteVocab(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := vocabID(w, r)
	if !ok {
		return
	}

	if err := h.vocab.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) parseBody(w http.ResponseWriter, r *http.Request) (vocabimport.Batch, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return vocabimport.Batch{}, false
	}

	batch, err := h.importer.Validate(string(body))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return vocabimport.Batch{}, false
	}
	return batch, true
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func vocabID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid vocab id")
		return 0, false
	}
	return id, true
}
