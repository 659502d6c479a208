// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote kind constants
const (
	KindUpvote = "upvote"
	KindFlag   = "flag"
)

// Change type constants for group stream events
const (
	ChangeAdded    = "added"
	ChangeModified = "modified"
	ChangeRemoved  = "removed"
)

// Request types

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type AskQuestionRequest struct {
	Text string `json:"text"`
}

// The response id is generated by the client before the write so no
// round trip is needed to obtain one.
type AddResponseRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Delta must be +1 or -1; the toggle direction is decided by the caller
// from its own local interaction memory.
type VoteRequest struct {
	Kind  string `json:"kind"`
	Delta int    `json:"delta"`
}

// Response types

type CreateGroupResponse struct {
	GroupID string `json:"group_id"`
}

type AskQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

// Domain types

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"created_date"`
}

type Question struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Responses []Response `json:"responses"`
	Upvotes   int        `json:"upvotes"`
	Flags     int        `json:"flags"`
	Datetime  time.Time  `json:"datetime"`
}

// Response lives embedded inside its Question document. It has no
// independent identity in storage; its id is only unique within the
// owning question.
type Response struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Upvotes  int       `json:"upvotes"`
	Flags    int       `json:"flags"`
	Datetime time.Time `json:"datetime"`
}

// QuestionChange is a single entry on a group's change stream.
type QuestionChange struct {
	Type     string   `json:"type"`
	GroupID  string   `json:"group_id"`
	Question Question `json:"question"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
