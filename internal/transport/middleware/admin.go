package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/pkg/ctxutil"
)

// HeaderAdminKey carries the plaintext admin console key.
const HeaderAdminKey = "X-Admin-Key"

// AdminKey admits requests whose X-Admin-Key matches keyHash (bcrypt) and
// marks their context as admin. A missing key gets 401, a wrong one 403.
// An empty keyHash disables admin access entirely.
func AdminKey(logger *slog.Logger, keyHash string) Middleware {
	hash := []byte(keyHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderAdminKey)
			switch {
			case len(hash) == 0:
				writeJSONError(w, http.StatusForbidden, "admin access disabled")
				return
			case key == "":
				writeJSONError(w, http.StatusUnauthorized, "admin key required")
				return
			}

			if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
				logger.WarnContext(r.Context(), "admin key rejected",
					slog.String("path", r.URL.Path),
					slog.String("ip", clientIP(r)),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxutil.WithAdmin(r.Context())))
		})
	}
}

// RequireAdmin returns domain.ErrForbidden if the context is not admin.
// Use in handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
