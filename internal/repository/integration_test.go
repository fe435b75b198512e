package repository

import (
	"os"
	"testing"

	"sessionlog/internal/database"
	"sessionlog/internal/models"
)

// openTestDB initializes a SQLite database with migrations applied
func openTestDB(t *testing.T, dbPath string) *database.DB {
	t.Helper()

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.RunMigrations("../../migrations"); err != nil {
		db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, users *UserRepository, email string) *models.User {
	t.Helper()

	user, err := users.CreateUser(email, "hashedpass", "Test User")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// TestRepositoryIntegration tests that migrations create the full schema
func TestRepositoryIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_integration.db"
	defer os.Remove(dbPath)

	db := openTestDB(t, dbPath)
	defer db.Close()

	// Test that tables were created by migrations
	tables := []string{"users", "auth_sessions", "songs", "song_sections", "practice_sessions", "goals", "profiles"}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRow(query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestGoalActivationKeepsOneActive tests that activating a new goal
// deactivates the previous active goal of the same type
func TestGoalActivationKeepsOneActive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_goal_activation.db"
	defer os.Remove(dbPath)

	db := openTestDB(t, dbPath)
	defer db.Close()

	users := NewUserRepository(db)
	goals := NewGoalRepository(db)
	user := createTestUser(t, users, "goals@example.com")

	first, err := goals.CreateActive(user.ID, "daily_minutes", 30)
	if err != nil {
		t.Fatalf("Failed to create first goal: %v", err)
	}
	second, err := goals.CreateActive(user.ID, "daily_minutes", 45)
	if err != nil {
		t.Fatalf("Failed to create second goal: %v", err)
	}

	// A goal of a different type is independent
	if _, err := goals.CreateActive(user.ID, "weekly_sessions", 5); err != nil {
		t.Fatalf("Failed to create weekly goal: %v", err)
	}

	var activeDaily int
	query := "SELECT COUNT(*) FROM goals WHERE user_id = ? AND type = ? AND active = ?"
	if err := db.QueryRow(query, user.ID, "daily_minutes", true).Scan(&activeDaily); err != nil {
		t.Fatalf("Failed to count active goals: %v", err)
	}
	if activeDaily != 1 {
		t.Errorf("Expected 1 active daily_minutes goal, got %d", activeDaily)
	}

	replaced, err := goals.GetByID(user.ID, first.ID)
	if err != nil {
		t.Fatalf("Failed to reload first goal: %v", err)
	}
	if replaced.Active {
		t.Error("Expected first goal to be deactivated")
	}

	active, err := goals.ListActive(user.ID)
	if err != nil {
		t.Fatalf("Failed to list active goals: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("Expected 2 active goals across types, got %d", len(active))
	}
	for _, goal := range active {
		if goal.Type == "daily_minutes" && goal.ID != second.ID {
			t.Errorf("Expected active daily_minutes goal %s, got %s", second.ID, goal.ID)
		}
	}
}

// TestProfileUpsertIdempotent tests that repeated upserts for the same user
// update the single profile row in place
func TestProfileUpsertIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_profile_upsert.db"
	defer os.Remove(dbPath)

	db := openTestDB(t, dbPath)
	defer db.Close()

	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	user := createTestUser(t, users, "profile@example.com")

	username := "firstname"
	first, err := profiles.Upsert(user.ID, &username, nil, nil, false)
	if err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}

	newUsername := "secondname"
	displayName := "Second Name"
	second, err := profiles.Upsert(user.ID, &newUsername, &displayName, nil, true)
	if err != nil {
		t.Fatalf("Failed to upsert profile: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM profiles WHERE user_id = ?", user.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 profile row, got %d", count)
	}

	if second.ID != first.ID {
		t.Errorf("Expected upsert to keep profile id %s, got %s", first.ID, second.ID)
	}
	if second.Username == nil || *second.Username != newUsername {
		t.Errorf("Expected username %q, got %v", newUsername, second.Username)
	}
	if second.DisplayName == nil || *second.DisplayName != displayName {
		t.Errorf("Expected display name %q, got %v", displayName, second.DisplayName)
	}
	if !second.IsPublic {
		t.Error("Expected profile to be public after upsert")
	}
}
