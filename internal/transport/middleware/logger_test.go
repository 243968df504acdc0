package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/pkg/ctxutil"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})), &buf
}

func TestLogger_Success(t *testing.T) {
	t.Parallel()

	logger, buf := newBufferLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/lexicon/有", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-42"))
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"msg":"http.request"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"bytes":5`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"level":"INFO"`)
	assert.NotContains(t, out, `"admin"`)
}

func TestLogger_ServerError(t *testing.T) {
	t.Parallel()

	logger, buf := newBufferLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.WriteHeader(http.StatusOK)
	})

	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"status":502`)
}

func TestLogger_MarksAdmin(t *testing.T) {
	t.Parallel()

	logger, buf := newBufferLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/vocab/1", nil)
	req = req.WithContext(ctxutil.WithAdmin(req.Context()))
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"admin":true`)
}
