// ABOUTME: Unit tests for the resource client against httptest servers.
// ABOUTME: Covers the four error kinds and the happy-path CRUD calls.

package resource

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

func asResourceError(t *testing.T, err error) *Error {
	t.Helper()
	var re *Error
	if !errors.As(err, &re) {
		t.Fatalf("Expected *resource.Error, got %T: %v", err, err)
	}
	return re
}

func TestGetAllSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Fatalf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Ana"}})
	}))
	defer srv.Close()

	rows, err := NewClient(srv.URL, nil).GetAll(context.Background(), "users")
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Ana" {
		t.Fatalf("Unexpected rows: %v", rows)
	}
}

func TestGetAllNeverReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	rows, err := NewClient(srv.URL, nil).GetAll(context.Background(), "users")
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	if rows == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(rows) != 0 {
		t.Fatalf("Expected no rows, got %v", rows)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connections now refused

	_, err := NewClient(srv.URL, nil).GetAll(context.Background(), "users")
	re := asResourceError(t, err)
	if re.Kind != KindTransport {
		t.Fatalf("Expected transport kind, got %s", re.Kind)
	}
	if re.Status != 0 {
		t.Fatalf("Expected status 0, got %d", re.Status)
	}
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).GetAll(context.Background(), "users")
	re := asResourceError(t, err)
	if re.Kind != KindDecode {
		t.Fatalf("Expected decode kind, got %s", re.Kind)
	}
}

func TestNotFoundError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "user not found"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).GetByID(context.Background(), "users", "99")
	re := asResourceError(t, err)
	if re.Kind != KindNotFound {
		t.Fatalf("Expected not_found kind, got %s", re.Kind)
	}
	if re.Status != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", re.Status)
	}
	if re.Message != "user not found" {
		t.Fatalf("Expected server message, got %q", re.Message)
	}
}

func TestRemoteErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Create(context.Background(), "users", schema.Row{"email": "dup@example.com"})
	re := asResourceError(t, err)
	if re.Kind != KindRemote {
		t.Fatalf("Expected remote kind, got %s", re.Kind)
	}
	if re.Message != "email already registered" {
		t.Fatalf("Expected server message, got %q", re.Message)
	}
}

func TestRemoteErrorGenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).GetAll(context.Background(), "users")
	re := asResourceError(t, err)
	if re.Kind != KindRemote || re.Message != genericMessage {
		t.Fatalf("Expected generic message, got %+v", re)
	}
}

func TestCreateSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("Expected JSON content type, got %s", ct)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		body["id"] = 7
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	row, err := NewClient(srv.URL, nil).Create(context.Background(), "roles", schema.Row{"name": "auditor"})
	if err != nil {
		t.Fatalf("Failed to create: %v", err)
	}
	if row["id"] != float64(7) || row["name"] != "auditor" {
		t.Fatalf("Unexpected response row: %v", row)
	}
}

func TestNestedPaths(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]map[string]any{})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "s-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.GetByParent(context.Background(), "user-roles", "user", "5"); err != nil {
		t.Fatalf("Failed: %v", err)
	}
	if _, err := c.CreateNested(context.Background(), "sessions", "user", "5", schema.Row{}); err != nil {
		t.Fatalf("Failed: %v", err)
	}

	want := []string{"GET /user-roles/user/5", "POST /sessions/user/5"}
	for i, p := range want {
		if gotPaths[i] != p {
			t.Fatalf("Expected %s, got %s", p, gotPaths[i])
		}
	}
}

func TestUpdateAndRemove(t *testing.T) {
	deletes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			json.NewEncoder(w).Encode(map[string]any{"id": 3, "name": "renamed"})
		case http.MethodDelete:
			deletes++
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	row, err := c.Update(context.Background(), "roles", "3", schema.Row{"name": "renamed"})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if row["name"] != "renamed" {
		t.Fatalf("Unexpected row: %v", row)
	}

	if err := c.Remove(context.Background(), "roles", "3"); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if deletes != 1 {
		t.Fatalf("Expected exactly one DELETE, got %d", deletes)
	}
}

func TestErrorString(t *testing.T) {
	withStatus := &Error{Kind: KindRemote, Status: 500, Message: "boom"}
	if withStatus.Error() != "remote (500): boom" {
		t.Fatalf("Unexpected error string: %s", withStatus.Error())
	}
	noStatus := &Error{Kind: KindTransport, Message: "refused"}
	if noStatus.Error() != "transport: refused" {
		t.Fatalf("Unexpected error string: %s", noStatus.Error())
	}
}
