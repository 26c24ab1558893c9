package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukil-legal/ukil-api/models"
)

// Middleware gates protected routes behind bearer token verification
type Middleware struct {
	Tokens TokenService
}

// Authenticate verifies the Authorization header and attaches the decoded
// claims to the request context. Missing or invalid tokens get a fixed 401
// body and the downstream handler is never invoked.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, r)
			return
		}

		// "Bearer <token>"; a header without a space leaves the token empty
		// and verification rejects it
		var tokenString string
		if parts := strings.Split(header, " "); len(parts) > 1 {
			tokenString = parts[1]
		}

		claims, err := m.Tokens.Verify(tokenString)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL,
				"error", err,
			)
			unauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusUnauthorized)
	b, _ := json.Marshal(models.UnauthorizedResponse{Message: "Unauthorized access!"})
	w.Write(b)
}

// RequestLogger logs every request with a generated request id
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		zap.S().Infow("request handled",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
