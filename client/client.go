// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"backchannel/ident"
	"backchannel/models"
)

// ErrNotFound is returned when the server reports a missing group,
// question, or response. It is distinct from transport errors so
// callers can show "not found" instead of retrying.
var ErrNotFound = errors.New("not found")

// Client talks to a Backchannel server.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateGroup creates a group and returns its id.
func (c *Client) CreateGroup(ctx context.Context, name string) (string, error) {
	var out models.CreateGroupResponse
	err := c.doJSON(ctx, http.MethodPost, "/groups",
		models.CreateGroupRequest{Name: name}, &out)
	return out.GroupID, err
}

func (c *Client) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	var out models.Group
	err := c.doJSON(ctx, http.MethodGet, "/groups/"+groupID, nil, &out)
	return out, err
}

// AskQuestion posts a new question and returns its id.
func (c *Client) AskQuestion(ctx context.Context, groupID, text string) (string, error) {
	var out models.AskQuestionResponse
	err := c.doJSON(ctx, http.MethodPost, "/groups/"+groupID+"/questions",
		models.AskQuestionRequest{Text: text}, &out)
	return out.QuestionID, err
}

func (c *Client) ListQuestions(ctx context.Context, groupID string) ([]models.Question, error) {
	var out []models.Question
	err := c.doJSON(ctx, http.MethodGet, "/groups/"+groupID+"/questions", nil, &out)
	return out, err
}

func (c *Client) GetQuestion(ctx context.Context, groupID, questionID string) (models.Question, error) {
	var out models.Question
	err := c.doJSON(ctx, http.MethodGet,
		"/groups/"+groupID+"/questions/"+questionID, nil, &out)
	return out, err
}

// AddResponse appends a response to a question. The response id is
// minted here, before the write, so the server never has to hand one
// back for an embedded document.
func (c *Client) AddResponse(ctx context.Context, groupID, questionID, text string) (models.Response, error) {
	req := models.AddResponseRequest{
		ID:   ident.NewResponseID(),
		Text: text,
	}

	var out models.Response
	err := c.doJSON(ctx, http.MethodPost,
		"/groups/"+groupID+"/questions/"+questionID+"/responses", req, &out)
	return out, err
}

// VoteQuestion adjusts a question counter by delta (+1 or -1).
func (c *Client) VoteQuestion(ctx context.Context, kind, groupID, questionID string, delta int) error {
	return c.doJSON(ctx, http.MethodPost,
		"/groups/"+groupID+"/questions/"+questionID+"/vote",
		models.VoteRequest{Kind: kind, Delta: delta}, nil)
}

// VoteResponse adjusts a response counter by delta (+1 or -1).
func (c *Client) VoteResponse(ctx context.Context, kind, groupID, questionID, responseID string, delta int) error {
	return c.doJSON(ctx, http.MethodPost,
		"/groups/"+groupID+"/questions/"+questionID+"/responses/"+responseID+"/vote",
		models.VoteRequest{Kind: kind, Delta: delta}, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, message)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
