// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateGroupRequest: name
  - AskQuestionRequest: text
  - AddResponseRequest: id (client-generated UUID), text
  - VoteRequest: kind ("upvote" or "flag"), delta (+1 or -1)

# Response Types

Types for JSON responses:

  - CreateGroupResponse: group_id
  - AskQuestionResponse: question_id
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Group: group metadata
  - Question: question text, counters, and embedded responses
  - Response: a reply embedded inside a question
  - QuestionChange: one entry on a group's change stream

Responses are embedded in their owning Question and are never
addressable on their own: any mutation of a single response is a
rewrite of the whole question document.

# Constants

Vote kinds:

	KindUpvote = "upvote"
	KindFlag   = "flag"

Change types:

	ChangeAdded    = "added"
	ChangeModified = "modified"
	ChangeRemoved  = "removed"
*/
package models
