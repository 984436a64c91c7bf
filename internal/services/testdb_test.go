package services_test

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory store with the same shape as the real
// schema, minus the trigger functions (history rows are seeded directly
// where a test needs them).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE users (
			user_id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			created_at DATETIME,
			last_login DATETIME,
			pwd_hash TEXT NOT NULL
		)`,
		`CREATE TABLE teams (
			team_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(user_id),
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME
		)`,
		`CREATE TABLE team_members (
			team_members_id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL REFERENCES teams(team_id),
			user_id TEXT NOT NULL REFERENCES users(user_id),
			role TEXT NOT NULL,
			invited_at DATETIME,
			joined_at DATETIME,
			UNIQUE (team_id, user_id)
		)`,
		`CREATE TABLE tasks (
			task_id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL REFERENCES teams(team_id),
			assigned_to TEXT NOT NULL REFERENCES users(user_id),
			created_by TEXT NOT NULL REFERENCES users(user_id),
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			deadline DATETIME NOT NULL,
			content TEXT,
			last_modified_at DATETIME
		)`,
		`CREATE TABLE tags (
			tag_id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL REFERENCES teams(team_id),
			name TEXT NOT NULL,
			UNIQUE (team_id, name)
		)`,
		`CREATE TABLE task_tags (
			task_tags_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL REFERENCES tasks(task_id),
			tag_id TEXT NOT NULL REFERENCES tags(tag_id),
			UNIQUE (task_id, tag_id)
		)`,
		`CREATE TABLE comments (
			comment_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL REFERENCES tasks(task_id),
			author_id TEXT REFERENCES users(user_id),
			content TEXT NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE task_history (
			history_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			change_type TEXT NOT NULL,
			entity TEXT NOT NULL,
			field TEXT,
			old_value TEXT,
			new_value TEXT,
			changed_at DATETIME
		)`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}
