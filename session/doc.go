// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session orchestrates one group's view on one device.

A Session combines three things: the server API, this device's local
interaction memory, and the rank package's display rules.

# Vote Toggles

Voting is a toggle with no server-side corroboration:

 1. read hasUpvoted/hasFlagged from local memory
 2. send +1 if unset, -1 if set
 3. on success, flip and persist the local flag

The first click votes, the second un-votes. The server only ever sees
deltas; whether this device already voted lives exclusively in local
memory. Two devices (or two memory directories) voting on the same
item are not reconciled - an accepted limitation.

# Boards

BuildBoard partitions questions by freshness, sorts both sides by vote
score, and sorts each question's responses. The fresh side always
renders first regardless of score. WatchBoard rebuilds the board from
the change stream; cancelling its context guarantees the callback is
never invoked afterwards, so a discarded view cannot be mutated late.
*/
package session
