package rest

import (
	"net/http"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health  *HealthHandler
	Lexicon *LexiconHandler
	Vocab   *VocabHandler
	Admin   *AdminHandler
}

// NewRouter mounts all routes. adminMW guards every /api/admin route.
func NewRouter(h Handlers, adminMW middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/lexicon/{token}", h.Lexicon.Define)

	mux.HandleFunc("POST /api/vocab/sessions", h.Vocab.Open)
	mux.HandleFunc("GET /api/vocab/sessions/{id}", h.Vocab.View)
	mux.HandleFunc("POST /api/vocab/sessions/{id}/next", h.Vocab.Next)
	mux.HandleFunc("POST /api/vocab/sessions/{id}/retry", h.Vocab.Retry)
	mux.HandleFunc("DELETE /api/vocab/sessions/{id}", h.Vocab.Close)

	admin := func(f http.HandlerFunc) http.Handler { return adminMW(f) }
	mux.Handle("POST /api/admin/vocab/validate", admin(h.Admin.ValidateImport))
	mux.Handle("POST /api/admin/vocab/commit", admin(h.Admin.CommitImport))
	mux.Handle("POST /api/admin/vocab", admin(h.Admin.CreateRows))
	mux.Handle("GET /api/admin/vocab/{id}", admin(h.Admin.GetVocab))
	mux.Handle("PUT /api/admin/vocab/{id}", admin(h.Admin.UpdateVocab))
	mux.Handle("DELETE /api/admin/vocab/{id}", admin(h.Admin.DeleteVocab))

	return mux
}
