// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorilla/websocket"

	"backchannel/models"
)

// WatchGroup subscribes to a group's change stream. The returned
// channel first delivers the current questions as "added" changes,
// then live changes, and closes when the stream ends or the context is
// cancelled. Cancelling the context is the way to tear the watch down;
// a late change is never delivered after that.
func (c *Client) WatchGroup(ctx context.Context, groupID string) (<-chan models.QuestionChange, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.streamURL(groupID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open group stream: %w", err)
	}

	changes := make(chan models.QuestionChange)

	// Closing the connection on cancellation unblocks the read loop.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(changes)
		for {
			var change models.QuestionChange
			if err := conn.ReadJSON(&change); err != nil {
				if ctx.Err() == nil {
					slog.Warn("group stream closed", "group_id", groupID, "error", err)
				}
				return
			}

			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}

// WatchQuestion narrows WatchGroup to the changes affecting a single
// question. The snapshot replay still delivers the question's current
// state first.
func (c *Client) WatchQuestion(ctx context.Context, groupID, questionID string) (<-chan models.QuestionChange, error) {
	all, err := c.WatchGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	changes := make(chan models.QuestionChange)
	go func() {
		defer close(changes)
		for change := range all {
			if change.Question.ID != questionID {
				continue
			}
			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}

func (c *Client) streamURL(groupID string) string {
	url := c.baseURL + "/groups/" + groupID + "/stream"
	if strings.HasPrefix(url, "https://") {
		return "wss://" + strings.TrimPrefix(url, "https://")
	}
	return "ws://" + strings.TrimPrefix(url, "http://")
}
