package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order at startup. Every statement is idempotent.
// username and name use a binary collation so uniqueness and lookups are
// exact, case-sensitive matches.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT       NOT NULL AUTO_INCREMENT,
		username   VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS problems (
		id          BIGINT       NOT NULL AUTO_INCREMENT,
		name        VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
		date_solved DATE         NOT NULL,
		difficulty  ENUM('Easy','Medium','Hard') NOT NULL,
		topic       VARCHAR(255) NOT NULL,
		notes       TEXT         NULL,
		user_id     BIGINT       NOT NULL,
		PRIMARY KEY (id),
		KEY ix_problems_name (name),
		UNIQUE KEY uq_problems_user_name (user_id, name),
		CONSTRAINT fk_problems_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the users and problems tables when they are missing.
// There is no migration history; existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
