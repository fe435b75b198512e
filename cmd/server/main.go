package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"sessionlog/internal/config"
	"sessionlog/internal/database"
	"sessionlog/internal/handlers"
	"sessionlog/internal/repository"
	"sessionlog/internal/security"
	"sessionlog/internal/service"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	songRepo := repository.NewSongRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Services
	limiter := security.NewLoginLimiter(security.NewMemoryAttemptStore())
	authService := service.NewAuthService(userRepo, limiter, cfg.SessionDuration, cfg.ResetTokenSecret, cfg.ResetTokenTTL)
	songService := service.NewSongService(songRepo)
	sessionService := service.NewSessionService(sessionRepo, songRepo)
	goalService := service.NewGoalService(goalRepo)
	profileService := service.NewProfileService(profileRepo)
	statsService := service.NewStatsService(sessionRepo, songRepo, goalRepo, profileRepo, cfg.Timezone)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	// Handlers
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	authRateLimiter := security.NewRateLimiter(20, 1*time.Minute)
	middleware := handlers.NewMiddleware(authService, csrf, authRateLimiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, csrf, googleOAuth, cfg.OAuthRedirectBaseURL)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	songHandler := handlers.NewSongHandler(songService, statsService)
	statsHandler := handlers.NewStatsHandler(statsService)
	goalHandler := handlers.NewGoalHandler(goalService, statsService)
	profileHandler := handlers.NewProfileHandler(profileService, statsService)

	// Routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/auth/password-check", middleware.RateLimit(authHandler.CheckPassword))
	mux.HandleFunc("POST /api/auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Practice sessions
	mux.HandleFunc("GET /api/sessions", middleware.RequireAuth(sessionHandler.List))
	mux.HandleFunc("POST /api/sessions", middleware.RequireAuth(middleware.CSRFProtect(sessionHandler.Create)))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.RequireAuth(sessionHandler.Get))
	mux.HandleFunc("PUT /api/sessions/{id}", middleware.RequireAuth(middleware.CSRFProtect(sessionHandler.Update)))
	mux.HandleFunc("DELETE /api/sessions/{id}", middleware.RequireAuth(middleware.CSRFProtect(sessionHandler.Delete)))

	// Songs and sections
	mux.HandleFunc("GET /api/songs", middleware.RequireAuth(songHandler.List))
	mux.HandleFunc("POST /api/songs", middleware.RequireAuth(middleware.CSRFProtect(songHandler.Create)))
	mux.HandleFunc("GET /api/songs/{id}", middleware.RequireAuth(songHandler.Get))
	mux.HandleFunc("PUT /api/songs/{id}", middleware.RequireAuth(middleware.CSRFProtect(songHandler.Update)))
	mux.HandleFunc("DELETE /api/songs/{id}", middleware.RequireAuth(middleware.CSRFProtect(songHandler.Delete)))
	mux.HandleFunc("GET /api/songs/{id}/stats", middleware.RequireAuth(songHandler.Stats))
	mux.HandleFunc("POST /api/songs/{id}/sections", middleware.RequireAuth(middleware.CSRFProtect(songHandler.CreateSection)))
	mux.HandleFunc("PUT /api/sections/{id}", middleware.RequireAuth(middleware.CSRFProtect(songHandler.UpdateSection)))
	mux.HandleFunc("DELETE /api/sections/{id}", middleware.RequireAuth(middleware.CSRFProtect(songHandler.DeleteSection)))

	// Stats and goals
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(statsHandler.Dashboard))
	mux.HandleFunc("GET /api/analytics", middleware.RequireAuth(statsHandler.Analytics))
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goalHandler.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(middleware.CSRFProtect(goalHandler.Create)))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(middleware.CSRFProtect(goalHandler.Delete)))
	mux.HandleFunc("GET /api/goals/progress", middleware.RequireAuth(goalHandler.Progress))

	// Profiles
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Get))
	mux.HandleFunc("PUT /api/profile", middleware.RequireAuth(middleware.CSRFProtect(profileHandler.Save)))
	mux.HandleFunc("GET /u/{username}", profileHandler.Public)

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background maintenance
	go cleanupExpiredSessions(authService)
	go weeklyDigestLoop(userRepo, statsService, emailService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired auth sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := authService.CleanupExpiredSessions()
		if err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
			continue
		}
		if deleted > 0 {
			log.Printf("Cleaned up %d expired sessions", deleted)
		}
	}
}

// weeklyDigestLoop sends each user a practice summary on Monday mornings.
// Does nothing when the email service is disabled.
func weeklyDigestLoop(userRepo *repository.UserRepository, statsService *service.StatsService, emailService *service.EmailService) {
	if !emailService.IsEnabled() {
		return
	}

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	var lastSent string
	for range ticker.C {
		now := time.Now()
		day := now.Format("2006-01-02")
		if now.Weekday() != time.Monday || now.Hour() < 8 || lastSent == day {
			continue
		}
		lastSent = day

		users, err := userRepo.ListUsers()
		if err != nil {
			log.Printf("Weekly digest: failed to list users: %v", err)
			continue
		}

		for _, user := range users {
			summary, err := statsService.WeekInReview(user.ID)
			if err != nil {
				log.Printf("Weekly digest: stats for %s: %v", user.ID, err)
				continue
			}
			if summary.Sessions == 0 {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			err = emailService.SendWeeklyDigestEmail(ctx, user.Email, user.Name, summary.Minutes, summary.Sessions, summary.CurrentStreak)
			cancel()
			if err != nil {
				log.Printf("Weekly digest: send to %s: %v", user.Email, err)
			}
		}
	}
}
