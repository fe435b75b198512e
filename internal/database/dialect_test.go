package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT id FROM songs WHERE user_id = ? AND title = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() changed the query: %v", got)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})

	t.Run("UpsertProfileQuery", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertProfileQuery(), "ON CONFLICT (user_id)") {
			t.Error("UpsertProfileQuery() should conflict on user_id")
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT id FROM songs WHERE user_id = ? AND title = ?"
		want := "SELECT id FROM songs WHERE user_id = $1 AND title = $2"
		if got := dialect.RewriteQuery(query); got != want {
			t.Errorf("RewriteQuery() = %v, want %v", got, want)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want postgres", got)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "INSERT INTO goals (id, user_id) VALUES (?, ?)"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() changed the query: %v", got)
		}
	})

	t.Run("UpsertProfileQuery", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertProfileQuery(), "ON DUPLICATE KEY UPDATE") {
			t.Error("UpsertProfileQuery() should use ON DUPLICATE KEY UPDATE")
		}
	})
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM users WHERE id = ?",
			want:  "SELECT * FROM users WHERE id = $1",
		},
		{
			name:  "many placeholders numbered in order",
			query: "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
			want:  "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered() = %v, want %v", got, tt.want)
			}
		})
	}
}
