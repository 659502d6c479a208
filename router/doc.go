// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method-and-pattern routing on http.ServeMux. All
JSON endpoints are wrapped in request logging; the websocket stream
endpoint logs its own lifecycle instead.

	mux := router.NewRouter(st, broker)

The router owns handler construction so main only wires the store,
broker, and server together.
*/
package router
