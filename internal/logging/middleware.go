// ABOUTME: HTTP request logging middleware.
// ABOUTME: Captures method, path, status, and duration per API resource and
// stores entries in the database.

package logging

import (
	"net/http"
	"strings"
	"time"

	"github.com/fernando-bedoya/adminconsole/internal/guard"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware logs API and console requests to the database. Console entries
// carry the signed-in operator, so it must be mounted inside the route guard
// for that subtree. Health checks and static paths are skipped.
func Middleware(s *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resource := ResourceFromPath(r.URL.Path)
			if resource == "" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Milliseconds()

			userID := ""
			if claims, ok := guard.ClaimsFromContext(r.Context()); ok {
				userID = claims.Email
			}

			ip := r.RemoteAddr
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				ip = strings.Split(forwarded, ",")[0]
			}

			// Fire and forget; a lost log line never fails a request.
			go s.LogRequest(&store.RequestLog{
				Resource:   resource,
				Method:     r.Method,
				Path:       r.URL.Path,
				StatusCode: wrapped.statusCode,
				DurationMs: int(duration),
				UserID:     userID,
				IPAddress:  ip,
				UserAgent:  r.Header.Get("User-Agent"),
			})
		})
	}
}

// ResourceFromPath extracts the collection name from an API or console path:
// "/api/user-roles/5" and "/console/user-roles/5/edit" both yield
// "user-roles". Paths outside those trees yield "".
func ResourceFromPath(path string) string {
	for _, prefix := range []string{"/api/", "/console/"} {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		trimmed := strings.TrimPrefix(path, prefix)
		if idx := strings.Index(trimmed, "/"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		return trimmed
	}
	return ""
}
