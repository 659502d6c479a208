// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backchannel/models"
	"backchannel/store"
	"backchannel/testutil"
)

func TestCreateGroup(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewGroupHandler(store.New(conn, nil))

	req := testutil.MakeRequest("POST", "/groups", models.CreateGroupRequest{Name: "Team Retro"}, nil)
	w := httptest.NewRecorder()
	handler.CreateGroup(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateGroupResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.GroupID == "" {
		t.Error("Expected a group id in the response")
	}

	var name string
	err := conn.QueryRow("SELECT name FROM groups WHERE id = $1", resp.GroupID).Scan(&name)
	if err != nil {
		t.Fatalf("Failed to query created group: %v", err)
	}
	if name != "Team Retro" {
		t.Errorf("Expected name 'Team Retro', got %q", name)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewGroupHandler(store.New(conn, nil))

	tests := []struct {
		name string
		body models.CreateGroupRequest
	}{
		{"empty name", models.CreateGroupRequest{Name: ""}},
		{"name too long", models.CreateGroupRequest{Name: string(make([]byte, 101))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/groups", tt.body, nil)
			w := httptest.NewRecorder()
			handler.CreateGroup(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGetGroup(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewGroupHandler(store.New(conn, nil))
	groupID := testutil.CreateTestGroup(t, conn, "Test Group")

	req := testutil.MakeRequest("GET", "/groups/"+groupID, nil, nil)
	req.SetPathValue("id", groupID)
	w := httptest.NewRecorder()
	handler.GetGroup(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var group models.Group
	testutil.AssertJSON(t, w, &group)
	if group.ID != groupID || group.Name != "Test Group" {
		t.Errorf("Unexpected group: %+v", group)
	}
}

func TestGetGroupNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewGroupHandler(store.New(conn, nil))

	req := testutil.MakeRequest("GET", "/groups/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.GetGroup(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
