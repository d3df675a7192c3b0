package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestGetTaskAssignments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task-assignments" {
			t.Errorf("path = %s, want /task-assignments", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"a-1","progressStatus":"TODO","dueDateTime":5000,
			 "task":{"id":"t-1","name":"Dishes","repeatUnit":"DAY"},
			 "member":{"id":"m-1"}},
			{"id":"a-2","progressStatus":"SOMETHING_NEW","dueDateTime":6000,
			 "task":{"id":"t-2","name":"Trash","repeatUnit":"WEEK"},
			 "member":{"id":"m-2"}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-1", testLogger())
	got, err := client.GetTaskAssignments(context.Background())
	if err != nil {
		t.Fatalf("GetTaskAssignments failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("assignment count = %d, want 2", len(got))
	}
	if got[0].TaskName != "Dishes" || got[0].RepeatUnit != models.RepeatUnitDay {
		t.Errorf("first assignment = %+v, want Dishes/DAY", got[0])
	}
	// Unrecognized server statuses map to UNKNOWN so the scheduler treats
	// them as completed rather than reminding about them.
	if got[1].ProgressStatus != models.ProgressStatusUnknown {
		t.Errorf("unrecognized status mapped to %s, want UNKNOWN", got[1].ProgressStatus)
	}
}

func TestGetTaskAssignments_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.GetTaskAssignments(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", reqErr.StatusCode)
	}
}

func TestUpdateTaskAssignments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["a-1"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	confirmed, err := client.UpdateTaskAssignments(context.Background(), []*models.TaskAssignment{
		{ID: "a-1", ProgressStatus: models.ProgressStatusDone},
		{ID: "a-2", ProgressStatus: models.ProgressStatusDone},
	})
	if err != nil {
		t.Fatalf("UpdateTaskAssignments failed: %v", err)
	}

	// Partial confirmation is valid; only a-1 was durably received.
	if len(confirmed) != 1 || confirmed[0] != "a-1" {
		t.Errorf("confirmed = %v, want [a-1]", confirmed)
	}
}

func TestUpdateTaskAssignments_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL, "", testLogger())
	_, err := client.UpdateTaskAssignments(context.Background(), nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", reqErr.StatusCode)
	}
}
