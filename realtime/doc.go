// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime fans question changes out to live group viewers.

The store emits a models.QuestionChange after every successful
mutation; the Broker delivers it to every subscriber of that group.
The websocket stream handler is the only consumer in the server, but
the Broker knows nothing about websockets - it is just channels.

Delivery is best-effort per subscriber. Each change carries the full
authoritative question, so a dropped change is repaired by the next
one rather than leaving a subscriber permanently stale.
*/
package realtime
