package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"scamtrap-lab/pkg/logger"
)

// Logger returns a middleware that logs requests. Alongside the usual
// method/path/status fields it records the resolved client IP and
// whether a shared-secret header was presented, since both matter when
// reconstructing a scammer session from the logs.
func Logger(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			keyPresent := r.Header.Get("X-API-Key") != "" || r.Header.Get("Authorization") != ""

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("client_ip", ClientIP(r)).
					Str("user_agent", r.UserAgent()).
					Bool("api_key_present", keyPresent).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("request completed")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
