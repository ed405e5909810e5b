package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"scamtrap-lab/internal/config"
	"scamtrap-lab/pkg/logger"
)

func authedHandler(cfg config.AuthConfig) http.Handler {
	return APIKeyAuth(cfg, logger.NewDefault())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(GetAPIKey(r.Context())))
	}))
}

func TestAPIKeyAuthStrictRejectsMismatch(t *testing.T) {
	h := authedHandler(config.AuthConfig{APIKey: "secret", Strict: true})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")

	// Missing key is just as invalid.
	req = httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuthStrictAcceptsMatch(t *testing.T) {
	h := authedHandler(config.AuthConfig{APIKey: "secret", Strict: true})

	tests := []struct {
		name   string
		header string
		value  string
	}{
		{"x-api-key", "X-API-Key", "secret"},
		{"bearer", "Authorization", "Bearer secret"},
		{"raw authorization", "Authorization", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			req.Header.Set(tt.header, tt.value)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "secret", rec.Body.String())
		})
	}
}

func TestAPIKeyAuthPermissiveProceedsOnMismatch(t *testing.T) {
	h := authedHandler(config.AuthConfig{APIKey: "secret", Strict: false})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuthSkipsPreflight(t *testing.T) {
	h := authedHandler(config.AuthConfig{APIKey: "secret", Strict: true})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
