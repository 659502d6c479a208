// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Backchannel API.

# Handler Types

Each handler is a struct over the document store:

  - GroupHandler: group creation and lookup
  - QuestionHandler: asking and reading questions
  - ResponseHandler: appending responses to a question
  - VoteHandler: upvote/flag counter adjustments
  - StreamHandler: websocket change stream per group

Handlers are created via constructor functions that accept the store
(and, for streaming, the realtime broker):

	groupHandler := handlers.NewGroupHandler(st)

# Surface

	POST /groups                                        → CreateGroup
	GET  /groups/{id}                                   → GetGroup
	POST /groups/{id}/questions                         → AskQuestion
	GET  /groups/{id}/questions                         → ListQuestions
	GET  /groups/{id}/questions/{qid}                   → GetQuestion
	POST /groups/{id}/questions/{qid}/responses         → AddResponse
	POST /groups/{id}/questions/{qid}/vote              → VoteQuestion
	POST /groups/{id}/questions/{qid}/responses/{rid}/vote → VoteResponse
	GET  /groups/{id}/stream                            → StreamGroup (websocket)

Everything is public; there are no accounts and no admin role. Vote
endpoints return 204 - the caller does not learn the new total, it
arrives over the group stream.

# Streaming

StreamGroup replays the group's current questions as "added" changes
on connect, then forwards live "added"/"modified" changes. Every
change carries the full question document, so consumers never need to
patch state incrementally.
*/
package handlers
