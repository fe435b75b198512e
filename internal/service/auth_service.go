package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sessionlog/internal/models"
	"sessionlog/internal/repository"
	"sessionlog/internal/security"
	"sessionlog/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// AccountLockedError is returned when login is refused because the account
// identifier has too many recent failures
type AccountLockedError struct {
	MinutesRemaining int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, try again in %d minutes", e.MinutesRemaining)
}

// BadCredentialsError carries how many attempts remain before lockout
type BadCredentialsError struct {
	AttemptsRemaining int
}

func (e *BadCredentialsError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *BadCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// PasswordPolicyError carries the unmet password requirements
type PasswordPolicyError struct {
	Failures []string
}

func (e *PasswordPolicyError) Error() string {
	return ErrWeakPassword.Error()
}

func (e *PasswordPolicyError) Unwrap() error {
	return ErrWeakPassword
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	limiter         *security.LoginLimiter
	sessionDuration time.Duration

	resetSecret []byte
	resetTTL    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, limiter *security.LoginLimiter, sessionDuration time.Duration, resetSecret string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		limiter:         limiter,
		sessionDuration: sessionDuration,
		resetSecret:     []byte(resetSecret),
		resetTTL:        resetTTL,
	}
}

// Register creates a new user account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	check := security.ValidatePasswordPolicy(password)
	if !check.Valid {
		return nil, &PasswordPolicyError{Failures: check.Errors}
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and creates a session. Failed attempts count
// toward a per-email lockout; a successful login clears the counter.
func (s *AuthService) Login(email, password string) (*models.AuthSession, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if status := s.limiter.CheckLock(email); status.Locked {
		return nil, nil, &AccountLockedError{MinutesRemaining: status.MinutesRemaining}
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.PasswordHash == "" || !security.CheckPassword(password, user.PasswordHash) {
		result := s.limiter.RecordFailure(email)
		if result.Locked {
			return nil, nil, &AccountLockedError{MinutesRemaining: int(security.LockoutDuration / time.Minute)}
		}
		return nil, nil, &BadCredentialsError{AttemptsRemaining: result.AttemptsRemaining}
	}

	s.limiter.Clear(email)

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() (int64, error) {
	deleted, err := s.userRepo.DeleteExpiredSessions()
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return deleted, nil
}

// OAuthLogin authenticates or creates a user using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.AuthSession, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existingUser, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			if existingUser.OAuthProvider != "" && existingUser.OAuthProvider != provider {
				return nil, nil, ErrEmailTaken
			}
			if err := s.userRepo.LinkOAuthProvider(existingUser.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = existingUser
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			user, err = s.userRepo.CreateOAuthUser(email, name, provider, subject)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
		}
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (s *AuthService) createSession(userID string) (*models.AuthSession, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// RequestPasswordReset issues a signed reset token and emails it to the user.
// Always succeeds for unknown emails so the endpoint does not reveal which
// addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	// OAuth-only accounts have no password to reset
	if user.PasswordHash == "" {
		return nil
	}

	token, err := s.generateResetToken(user)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		if err := emailService.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ResetPassword sets a new password using a valid reset token
func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.validateResetToken(token)
	if err != nil {
		return err
	}

	check := security.ValidatePasswordPolicy(newPassword)
	if !check.Valid {
		return &PasswordPolicyError{Failures: check.Errors}
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.limiter.Clear(user.Email)
	return nil
}

// generateResetToken signs a short-lived token bound to the user's current
// password hash, so changing the password invalidates outstanding tokens
func (s *AuthService) generateResetToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"typ": "password_reset",
		"fp":  passwordFingerprint(user.PasswordHash),
		"exp": time.Now().Add(s.resetTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.resetSecret)
}

func (s *AuthService) validateResetToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.resetSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidResetToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidResetToken
	}
	if typ, _ := claims["typ"].(string); typ != "password_reset" {
		return nil, ErrInvalidResetToken
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, ErrInvalidResetToken
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidResetToken
	}

	// A token issued before the password last changed is no longer valid
	if fp, _ := claims["fp"].(string); fp != passwordFingerprint(user.PasswordHash) {
		return nil, ErrInvalidResetToken
	}

	return user, nil
}

func passwordFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
