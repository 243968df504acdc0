package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/lexicon"
)

type lexiconService interface {
	Define(ctx context.Context, token string) (lexicon.Definition, error)
}

// LexiconHandler serves dictionary lookups.
type LexiconHandler struct {
	svc lexiconService
	log *slog.Logger
}

// NewLexiconHandler creates a LexiconHandler.
func NewLexiconHandler(svc lexiconService, logger *slog.Logger) *LexiconHandler {
	return &LexiconHandler{svc: svc, log: logger.With("handler", "lexicon")}
}

// Define handles GET /api/lexicon/{token}. A miss is a 200 with found=false.
func (h *LexiconHandler) Define(w http.ResponseWriter, r *http.Request) {
	def, err := h.svc.Define(r.Context(), r.PathValue("token"))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}
