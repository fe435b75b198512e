package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateID creates a new UUID suitable for an entity primary key
func GenerateID() string {
	return uuid.New().String()
}

// IsSecureRequest determines if the request arrived over HTTPS, directly
// or via a reverse proxy
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// CreateSessionCookie creates a session cookie with the proper security
// flags; Secure is set automatically from the request scheme
func CreateSessionCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates a cookie that clears the named cookie
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
	}
}
