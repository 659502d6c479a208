// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are stored as unix milliseconds so the schema is portable
// between Postgres and SQLite. The version column is the optimistic
// precondition for counter and response rewrites.
const schema = `
-- Groups ("group" is a reserved word, hence the plural)
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_date BIGINT NOT NULL
);

-- Questions, with responses embedded as a JSON document
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    upvotes INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    flags INTEGER NOT NULL DEFAULT 0 CHECK (flags >= 0),
    responses TEXT NOT NULL DEFAULT '[]',
    datetime BIGINT NOT NULL,
    version INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_question_group_id ON question(group_id);
`
