package middleware

import (
	"context"
	"net/http"
	"strings"

	"scamtrap-lab/internal/config"
	"scamtrap-lab/pkg/logger"
)

// ContextKey is a type for context keys
type ContextKey string

// ContextKeyAPIKey is the context key for the presented API key
const ContextKeyAPIKey ContextKey = "api_key"

// APIKeyAuth validates the shared secret sent in X-API-Key or as a
// bearer token. In strict mode a mismatch is a hard 401; in permissive
// mode it is logged and the request proceeds, since upstream test
// harnesses are known to omit or mangle the header.
func APIKeyAuth(cfg config.AuthConfig, log *logger.Logger) func(next http.Handler) http.Handler {
	log = log.WithComponent("auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			presented := extractAPIKey(r)
			if cfg.APIKey != "" && presented != cfg.APIKey {
				if cfg.Strict {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"status":"error","error":"UNAUTHORIZED","message":"invalid or missing API key"}`))
					return
				}
				log.Warn().
					Str("path", r.URL.Path).
					Bool("key_present", presented != "").
					Msg("API key mismatch, proceeding in permissive mode")
			}

			ctx := context.WithValue(r.Context(), ContextKeyAPIKey, presented)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractAPIKey reads the shared secret from X-API-Key, or from the
// Authorization header with or without a Bearer prefix.
func extractAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return auth
}

// GetAPIKey returns the API key from context
func GetAPIKey(ctx context.Context) string {
	if key, ok := ctx.Value(ContextKeyAPIKey).(string); ok {
		return key
	}
	return ""
}
