package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"sessionlog/internal/security"
	"sessionlog/internal/service"
	"sessionlog/internal/validation"
)

// AuthHandler handles registration, login and password recovery
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	csrf         *security.CSRFGenerator

	googleOAuth          *oauth2.Config
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, csrf *security.CSRFGenerator, googleOAuth *oauth2.Config, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		csrf:                 csrf,
		googleOAuth:          googleOAuth,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var policyErr *service.PasswordPolicyError
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "An account with this email already exists", "", nil)
		case errors.As(err, &policyErr):
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Password does not meet requirements",
				"errors": policyErr.Failures,
			})
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "register failed", err)
		}
		return
	}

	if h.emailService != nil && h.emailService.IsEnabled() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.emailService.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
				log.Printf("failed to send welcome email: %v", err)
			}
		}()
	}

	h.logIn(w, r, req.Email, req.Password)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	h.logIn(w, r, req.Email, req.Password)
}

// logIn authenticates, sets the session cookie and responds with the user
// and a CSRF token
func (h *AuthHandler) logIn(w http.ResponseWriter, r *http.Request, email, password string) {
	session, user, err := h.authService.Login(email, password)
	if err != nil {
		var lockedErr *service.AccountLockedError
		var badCredsErr *service.BadCredentialsError
		switch {
		case errors.As(err, &lockedErr):
			respondJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"error":            "Too many failed attempts. Try again later.",
				"locked":           true,
				"minutesRemaining": lockedErr.MinutesRemaining,
			})
		case errors.As(err, &badCredsErr):
			respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"error":             "Invalid email or password",
				"attemptsRemaining": badCredsErr.AttemptsRemaining,
			})
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "login failed", err)
		}
		return
	}

	csrfToken, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "csrf token generation failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, authResponse{User: toUserView(user), CSRFToken: csrfToken})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := GetSessionIDFromContext(r.Context()); sessionID != "" {
		if err := h.authService.Logout(sessionID); err != nil {
			log.Printf("logout: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/auth/me, returning the current user and a fresh CSRF
// token for the session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	csrfToken, err := h.csrf.GenerateToken(GetSessionIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "csrf token generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{User: toUserView(user), CSRFToken: csrfToken})
}

// CheckPassword handles POST /api/auth/password-check, used by signup forms
// to show live policy feedback
func (h *AuthHandler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	check := security.ValidatePasswordPolicy(req.Password)
	respondJSON(w, http.StatusOK, passwordCheckResponse{
		Valid:    check.Valid,
		Errors:   check.Errors,
		Strength: security.PasswordStrength(req.Password),
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is
// identical whether or not the email has an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		log.Printf("password reset request: %v", err)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "If that email has an account, a reset link is on its way",
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var policyErr *service.PasswordPolicyError
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			respondWithError(w, http.StatusBadRequest, "Invalid or expired reset link", "", nil)
		case errors.As(err, &policyErr):
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Password does not meet requirements",
				"errors": policyErr.Failures,
			})
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "password reset failed", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
