package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"sessionlog/internal/models"
	"sessionlog/internal/security"
	"sessionlog/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey      ContextKey = "user"
	SessionIDContextKey ContextKey = "session_id"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		rateLimiter: rateLimiter,
	}
}

// RequireAuth rejects requests without a valid session cookie and puts the
// authenticated user and session ID on the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		user, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, SessionIDContextKey, cookie.Value)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect validates the CSRF header on mutating requests. Must run
// inside RequireAuth, which puts the session ID on the context.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}

		sessionID := GetSessionIDFromContext(r.Context())
		token := r.Header.Get(CSRFHeaderName)
		if sessionID == "" || !m.csrf.ValidateToken(sessionID, token) {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "csrf validation failed", nil)
			return
		}

		next(w, r)
	}
}

// RateLimit throttles requests per client IP, used on the auth endpoints
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.rateLimiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionIDFromContext retrieves the session ID from the request context
func GetSessionIDFromContext(ctx context.Context) string {
	sessionID, ok := ctx.Value(SessionIDContextKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}
