package httpserver

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// DefaultClientID identifies requests served without authentication.
const DefaultClientID = "default"

// ClientIDFromRequest returns the authenticated client id, or DefaultClientID.
func ClientIDFromRequest(r *http.Request) string {
	if clientID, ok := r.Context().Value(clientIDKey).(string); ok && clientID != "" {
		return clientID
	}
	return DefaultClientID
}

func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// BasicAuth rejects requests whose Basic credentials are not in credentials
// and stores the username as the client id.
func BasicAuth(credentials map[string]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="essensys"`)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			expected, exists := credentials[username]
			if !exists || subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
				slog.Warn("rejected credentials", slog.String("client_id", username), slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			GetSpanFromContext(r).SetAttributes(attribute.String("client.id", username))
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), username)))
		})
	}
}

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic serving request",
					slog.Any("error", err),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())))
				ReplyWithError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := newStatusRecorder(w)

		next.ServeHTTP(wrapped, r)

		slog.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", remoteIP(r)),
			slog.Int("status", wrapped.statusCode),
			slog.Duration("duration", time.Since(start)))
	})
}

func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
