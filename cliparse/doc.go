// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and
environment variables.

Flags take precedence, then environment variables, then a .env file in
the working directory (loaded via godotenv), then defaults:

  - -p / PORT: server port (default 8711)
  - -d / DATABASE_URL: Postgres connection string, or a SQLite file path
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"

A database URL is required; everything else has a default.
*/
package cliparse
