// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command serve runs the Backchannel API server.

Backchannel is an anonymous, real-time group Q&A service: anyone with
a group's id can ask questions, respond, upvote, and flag, with
changes pushed live to every viewer of the group. There are no
accounts; per-device vote state lives on the devices themselves.

# Starting the Server

	DATABASE_URL=backchannel.db go run ./cmd/serve

Or with flags:

	go run ./cmd/serve -p 8711 -d "postgres://..." -t postgres

# Configuration

  - DATABASE_URL (-d): Postgres connection string or SQLite file path
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - PORT (-p): server port (default: 8711)

A .env file in the working directory is honored.

# Architecture

  - store: shared documents with optimistic counter transactions
  - realtime: in-process change fan-out
  - handlers/router: HTTP surface and websocket streams
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
