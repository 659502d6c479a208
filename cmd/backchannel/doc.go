// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command backchannel is a terminal client for a Backchannel server.

It keeps this device's interaction memory (which items you already
upvoted or flagged, and your recently visited groups) in a local
database, so votes toggle correctly across invocations without any
account.

	backchannel create "all hands"
	backchannel ask <group> "why did the roadmap change?"
	backchannel upvote <group> <question>
	backchannel watch <group>

Questions display in two sections: those asked within the last four
hours first, then everything earlier, each sorted by vote score.
An asterisk marks questions this device has upvoted.
*/
package main
