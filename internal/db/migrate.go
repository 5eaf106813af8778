package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it
// runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		term         TEXT NOT NULL DEFAULT '',
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		credits      INTEGER NOT NULL CHECK(credits > 0),
		delivery     TEXT NOT NULL DEFAULT 'OFFLINE'
		             CHECK(delivery IN ('ONLINE','OFFLINE','HYBRID')),
		team_project INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (term, id)
	)`,

	`CREATE TABLE IF NOT EXISTS course_meetings (
		term      TEXT NOT NULL,
		course_id TEXT NOT NULL,
		day       INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
		start_min INTEGER NOT NULL CHECK(start_min >= 0),
		end_min   INTEGER NOT NULL CHECK(end_min <= 1440),
		CHECK(start_min < end_min),
		FOREIGN KEY (term, course_id) REFERENCES courses(term, id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_course_meetings_course ON course_meetings(term, course_id)`,

	`CREATE TABLE IF NOT EXISTS course_tags (
		term      TEXT NOT NULL,
		course_id TEXT NOT NULL,
		tag       TEXT NOT NULL,
		PRIMARY KEY (term, course_id, tag),
		FOREIGN KEY (term, course_id) REFERENCES courses(term, id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS course_tracks (
		term      TEXT NOT NULL,
		course_id TEXT NOT NULL,
		track     TEXT NOT NULL,
		PRIMARY KEY (term, course_id, track),
		FOREIGN KEY (term, course_id) REFERENCES courses(term, id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS commitments (
		id         TEXT PRIMARY KEY,
		term       TEXT NOT NULL DEFAULT '',
		course_id  TEXT NOT NULL DEFAULT '',
		title      TEXT NOT NULL,
		credits    INTEGER NOT NULL DEFAULT 0 CHECK(credits >= 0),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_commitments_term ON commitments(term)`,

	`CREATE TABLE IF NOT EXISTS commitment_meetings (
		commitment_id TEXT NOT NULL REFERENCES commitments(id) ON DELETE CASCADE,
		day           INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
		start_min     INTEGER NOT NULL CHECK(start_min >= 0),
		end_min       INTEGER NOT NULL CHECK(end_min <= 1440),
		CHECK(start_min < end_min)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_commitment_meetings_commitment ON commitment_meetings(commitment_id)`,

	`CREATE TABLE IF NOT EXISTS blocked_intervals (
		id         TEXT PRIMARY KEY,
		label      TEXT NOT NULL DEFAULT '',
		day        INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
		start_min  INTEGER NOT NULL CHECK(start_min >= 0),
		end_min    INTEGER NOT NULL CHECK(end_min <= 1440),
		created_at TEXT NOT NULL,
		CHECK(start_min < end_min)
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id                      TEXT PRIMARY KEY DEFAULT 'default',
		default_target_credits  INTEGER NOT NULL DEFAULT 15 CHECK(default_target_credits > 0),
		default_strategy        TEXT NOT NULL DEFAULT 'MIX'
		                        CHECK(default_strategy IN ('MAJOR_FOCUS','MIX','INTEREST_FOCUS')),
		tracks                  TEXT NOT NULL DEFAULT '',
		interests               TEXT NOT NULL DEFAULT '',
		avoid_morning           INTEGER NOT NULL DEFAULT 0,
		keep_lunch_time         INTEGER NOT NULL DEFAULT 0,
		avoid_days              TEXT NOT NULL DEFAULT '',
		weight_credit_deviation REAL NOT NULL DEFAULT 5,
		weight_strategy_bonus   REAL NOT NULL DEFAULT 20,
		weight_free_day         REAL NOT NULL DEFAULT 8
	)`,

	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,

	// Profile-level term fallback, added after the first release.
	`ALTER TABLE user_profile ADD COLUMN default_term TEXT NOT NULL DEFAULT ''`,
}
