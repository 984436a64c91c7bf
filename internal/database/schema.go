package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Constraint names below are load-bearing: the error translator maps them
// to user-facing messages.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login TIMESTAMPTZ,
		pwd_hash TEXT NOT NULL,
		CONSTRAINT users_username_uq UNIQUE (username),
		CONSTRAINT users_email_uq UNIQUE (email),
		CONSTRAINT users_role_ck CHECK (role IN ('leader', 'user'))
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		team_id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT teams_name_uq UNIQUE (name),
		CONSTRAINT teams_owner_id_fk FOREIGN KEY (owner_id) REFERENCES users (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		team_members_id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		invited_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		joined_at TIMESTAMPTZ,
		CONSTRAINT team_members_team_user_uq UNIQUE (team_id, user_id),
		CONSTRAINT team_members_team_id_fk FOREIGN KEY (team_id) REFERENCES teams (team_id) ON DELETE CASCADE,
		CONSTRAINT team_members_user_id_fk FOREIGN KEY (user_id) REFERENCES users (user_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		assigned_to TEXT NOT NULL,
		created_by TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		priority TEXT NOT NULL,
		deadline TIMESTAMPTZ NOT NULL,
		content TEXT,
		last_modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT tasks_status_ck CHECK (status IN ('pending', 'ongoing', 'done', 'canceled')),
		CONSTRAINT tasks_priority_ck CHECK (priority IN ('high', 'medium', 'low')),
		CONSTRAINT tasks_team_id_fk FOREIGN KEY (team_id) REFERENCES teams (team_id),
		CONSTRAINT tasks_assigned_to_fk FOREIGN KEY (assigned_to) REFERENCES users (user_id),
		CONSTRAINT tasks_created_by_fk FOREIGN KEY (created_by) REFERENCES users (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		comment_id TEXT PRIMARY KEY,
		task_id TEXT NOT NULL,
		author_id TEXT,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT comments_content_ck CHECK (char_length(content) BETWEEN 1 AND 300),
		CONSTRAINT comments_task_id_fk FOREIGN KEY (task_id) REFERENCES tasks (task_id),
		CONSTRAINT comments_author_id_fk FOREIGN KEY (author_id) REFERENCES users (user_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		tag_id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		name TEXT NOT NULL,
		CONSTRAINT tags_name_team_uq UNIQUE (team_id, name),
		CONSTRAINT tags_team_id_fk FOREIGN KEY (team_id) REFERENCES teams (team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS task_tags (
		task_tags_id TEXT PRIMARY KEY,
		task_id TEXT NOT NULL,
		tag_id TEXT NOT NULL,
		CONSTRAINT task_tags_task_tag_uq UNIQUE (task_id, tag_id),
		CONSTRAINT task_tags_task_id_fk FOREIGN KEY (task_id) REFERENCES tasks (task_id) ON DELETE CASCADE,
		CONSTRAINT task_tags_tag_id_fk FOREIGN KEY (tag_id) REFERENCES tags (tag_id) ON DELETE CASCADE
	)`,
	// Append-only; written by the triggers below, never by application
	// code. No FK on task_id so DELETE records survive their task.
	`CREATE TABLE IF NOT EXISTS task_history (
		history_id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		task_id TEXT NOT NULL,
		change_type TEXT NOT NULL,
		entity TEXT NOT NULL,
		field TEXT,
		old_value TEXT,
		new_value TEXT,
		changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT task_history_change_type_ck CHECK (change_type IN ('CREATE', 'UPDATE', 'DELETE')),
		CONSTRAINT task_history_entity_ck CHECK (entity IN ('TASK', 'COMMENT', 'TAG'))
	)`,
	`CREATE OR REPLACE FUNCTION log_task_change() RETURNS trigger AS $$
	BEGIN
		IF TG_OP = 'INSERT' THEN
			INSERT INTO task_history (task_id, change_type, entity)
			VALUES (NEW.task_id, 'CREATE', 'TASK');
			RETURN NEW;
		ELSIF TG_OP = 'UPDATE' THEN
			IF NEW.assigned_to IS DISTINCT FROM OLD.assigned_to THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'assigned_to', OLD.assigned_to, NEW.assigned_to);
			END IF;
			IF NEW.title IS DISTINCT FROM OLD.title THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'title', OLD.title, NEW.title);
			END IF;
			IF NEW.description IS DISTINCT FROM OLD.description THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'description', OLD.description, NEW.description);
			END IF;
			IF NEW.status IS DISTINCT FROM OLD.status THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'status', OLD.status, NEW.status);
			END IF;
			IF NEW.priority IS DISTINCT FROM OLD.priority THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'priority', OLD.priority, NEW.priority);
			END IF;
			IF NEW.deadline IS DISTINCT FROM OLD.deadline THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'deadline', OLD.deadline::text, NEW.deadline::text);
			END IF;
			IF NEW.content IS DISTINCT FROM OLD.content THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'TASK', 'content', OLD.content, NEW.content);
			END IF;
			RETURN NEW;
		ELSE
			INSERT INTO task_history (task_id, change_type, entity)
			VALUES (OLD.task_id, 'DELETE', 'TASK');
			RETURN OLD;
		END IF;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS tasks_history_trg ON tasks`,
	`CREATE TRIGGER tasks_history_trg
		AFTER INSERT OR UPDATE OR DELETE ON tasks
		FOR EACH ROW EXECUTE FUNCTION log_task_change()`,
	`CREATE OR REPLACE FUNCTION log_comment_change() RETURNS trigger AS $$
	BEGIN
		IF TG_OP = 'INSERT' THEN
			INSERT INTO task_history (task_id, change_type, entity, field, new_value)
			VALUES (NEW.task_id, 'CREATE', 'COMMENT', 'content', NEW.content);
			RETURN NEW;
		ELSIF TG_OP = 'UPDATE' THEN
			IF NEW.content IS DISTINCT FROM OLD.content THEN
				INSERT INTO task_history (task_id, change_type, entity, field, old_value, new_value)
				VALUES (NEW.task_id, 'UPDATE', 'COMMENT', 'content', OLD.content, NEW.content);
			END IF;
			RETURN NEW;
		ELSE
			INSERT INTO task_history (task_id, change_type, entity, field, old_value)
			VALUES (OLD.task_id, 'DELETE', 'COMMENT', 'content', OLD.content);
			RETURN OLD;
		END IF;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS comments_history_trg ON comments`,
	`CREATE TRIGGER comments_history_trg
		AFTER INSERT OR UPDATE OR DELETE ON comments
		FOR EACH ROW EXECUTE FUNCTION log_comment_change()`,
	`CREATE OR REPLACE FUNCTION log_task_tag_change() RETURNS trigger AS $$
	BEGIN
		IF TG_OP = 'INSERT' THEN
			INSERT INTO task_history (task_id, change_type, entity, field, new_value)
			VALUES (NEW.task_id, 'CREATE', 'TAG', 'tag_id', NEW.tag_id);
			RETURN NEW;
		ELSE
			INSERT INTO task_history (task_id, change_type, entity, field, old_value)
			VALUES (OLD.task_id, 'DELETE', 'TAG', 'tag_id', OLD.tag_id);
			RETURN OLD;
		END IF;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS task_tags_history_trg ON task_tags`,
	`CREATE TRIGGER task_tags_history_trg
		AFTER INSERT OR DELETE ON task_tags
		FOR EACH ROW EXECUTE FUNCTION log_task_tag_change()`,
}

// EnsureSchema creates tables, constraints and history triggers.
// Statements are idempotent so startup can run them unconditionally.
func EnsureSchema(db *gorm.DB) error {
	for _, stmt := range schemaStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
