// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: logs request start/completion with method, path, and
    duration via slog
  - CORS: allows cross-origin requests and answers preflights

# JSON Helpers

  - JSONResponse: writes a value as a JSON response
  - ErrorResponse: writes a models.ErrorResponse with the status text
  - ParseJSONBody: decodes a request body into a struct

There is deliberately no client-IP extraction or fingerprinting here:
the service is anonymous and keeps no per-request identity.
*/
package middleware
