// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Two tables:

  - groups: id, name, created_date
  - question: id, group_id, text, upvotes, flags, responses (JSON),
    datetime, version

Responses are not a table. They are an ordered JSON document embedded
in the owning question row, mirroring how a document store would hold
them: a single response can only be changed by rewriting the whole
collection under the question's optimistic version.

Timestamps are unix milliseconds (BIGINT) so the same DDL runs on both
Postgres and SQLite.

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
	    // handle error
	}

CreateSchema is idempotent (IF NOT EXISTS everywhere).
*/
package db
