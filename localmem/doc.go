// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package localmem is the client's durable interaction memory.

Backchannel has no accounts. Whether this device already upvoted or
flagged an item lives only here, in an embedded Badger database - it is
never derivable from the shared counters on the server.

# Layout

One key per group, "group-<id>", holding a JSON record of per-question
and per-response booleans; one key "recent-groups" for the visit
history. Question and response sub-records materialize lazily on first
access (and that materialization is persisted).

# Durability

Writes are synchronous: every setter re-serializes the whole group
record and commits it (SyncWrites) before returning, so a subsequent
read in the same flow always observes it. Entries are never deleted.

An unparsable stored record is treated as absent rather than an error.

# Recent Groups

UpsertRecentGroup refreshes an existing entry's name and visit time in
place, or appends a new one; past MaxRecentGroups entries the
oldest-visited entry is evicted.

Two processes sharing one memory directory are not coordinated; Badger
refuses the second opener outright. Running two clients against
separate directories can double-vote - an accepted limitation of
keeping vote state client-side.
*/
package localmem
