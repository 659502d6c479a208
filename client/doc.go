// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the HTTP and websocket client for a Backchannel
server.

All calls take a context; a cancelled context abandons the request or
tears down a watch, which is how a discarded view suppresses late
results.

A 404 from the server surfaces as ErrNotFound, distinct from transport
errors, so callers can render "not found" instead of retrying.

WatchGroup mirrors a document-store snapshot listener: the channel
first replays the group's questions as "added" changes, then streams
live changes, each carrying the full question document.
*/
package client
