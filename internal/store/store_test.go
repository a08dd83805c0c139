// ABOUTME: Unit tests for the SQLite store layer.
// ABOUTME: Covers migrations, entity CRUD, scoped listings, and request logs.

package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrations(t *testing.T) {
	s := newTestStore(t)

	var version int
	if err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Fatalf("Expected schema version %d, got %d", CurrentSchemaVersion, version)
	}

	for _, table := range []string{
		"users", "roles", "permissions", "user_roles", "role_permissions",
		"sessions", "passwords", "security_questions", "answers",
		"devices", "digital_signatures", "password_resets", "request_logs",
	} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil || count != 1 {
			t.Fatalf("Table %s was not created", table)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)

	u := &User{Name: "Ana Torres", Email: "ana@example.com", Password: "hash"}
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Expected user ID to be set")
	}

	got, err := s.GetUser(u.ID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Fatalf("Expected email ana@example.com, got %s", got.Email)
	}

	byEmail, err := s.GetUserByEmail("ana@example.com")
	if err != nil {
		t.Fatalf("Failed to get user by email: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("Expected ID %d, got %d", u.ID, byEmail.ID)
	}

	got.Name = "Ana T."
	if err := s.UpdateUser(got); err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}

	users, err := s.ListUsers()
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Ana T." {
		t.Fatalf("Unexpected user list: %+v", users)
	}

	if err := s.DeleteUser(u.ID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	if _, err := s.GetUser(u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserEmailUnique(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateUser(&User{Name: "A", Email: "dup@example.com", Password: "x"}); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if err := s.CreateUser(&User{Name: "B", Email: "dup@example.com", Password: "y"}); err == nil {
		t.Fatal("Expected UNIQUE violation on duplicate email")
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateRole(&Role{ID: 99, Name: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteDevice(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserRoleFiltering(t *testing.T) {
	s := newTestStore(t)

	u1 := &User{Name: "A", Email: "a@example.com", Password: "x"}
	u2 := &User{Name: "B", Email: "b@example.com", Password: "x"}
	s.CreateUser(u1)
	s.CreateUser(u2)

	r1 := &Role{Name: "admin"}
	r2 := &Role{Name: "auditor"}
	s.CreateRole(r1)
	s.CreateRole(r2)

	s.CreateUserRole(&UserRole{UserID: u1.ID, RoleID: r1.ID})
	s.CreateUserRole(&UserRole{UserID: u1.ID, RoleID: r2.ID})
	s.CreateUserRole(&UserRole{UserID: u2.ID, RoleID: r2.ID})

	all, err := s.ListUserRoles(0, 0)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 assignments, got %d", len(all))
	}

	byUser, _ := s.ListUserRoles(u1.ID, 0)
	if len(byUser) != 2 {
		t.Fatalf("Expected 2 assignments for user, got %d", len(byUser))
	}

	byRole, _ := s.ListUserRoles(0, r2.ID)
	if len(byRole) != 2 {
		t.Fatalf("Expected 2 assignments for role, got %d", len(byRole))
	}

	both, _ := s.ListUserRoles(u2.ID, r2.ID)
	if len(both) != 1 {
		t.Fatalf("Expected 1 assignment for user+role, got %d", len(both))
	}

	if all[0].StartAt.IsZero() {
		t.Fatal("Expected StartAt to default to now")
	}
}

func TestSessionStateUpdate(t *testing.T) {
	s := newTestStore(t)

	u := &User{Name: "A", Email: "a@example.com", Password: "x"}
	s.CreateUser(u)

	sess := &Session{ID: "abc-123", UserID: u.ID, Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	if err := s.CreateSession(sess); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if sess.State != SessionActive {
		t.Fatalf("Expected default state active, got %s", sess.State)
	}

	if err := s.UpdateSessionState("abc-123", SessionRevoked); err != nil {
		t.Fatalf("Failed to update state: %v", err)
	}
	got, _ := s.GetSession("abc-123")
	if got.State != SessionRevoked {
		t.Fatalf("Expected revoked, got %s", got.State)
	}

	list, _ := s.ListSessions(u.ID)
	if len(list) != 1 {
		t.Fatalf("Expected 1 session for user, got %d", len(list))
	}
}

func TestPasswordHistoryChain(t *testing.T) {
	s := newTestStore(t)

	u := &User{Name: "A", Email: "a@example.com", Password: "h1"}
	s.CreateUser(u)

	s.CreatePassword(&Password{UserID: u.ID, Content: "h1"})
	s.ClosePasswords(u.ID)
	s.CreatePassword(&Password{UserID: u.ID, Content: "h2"})

	rows, err := s.ListPasswords(u.ID)
	if err != nil {
		t.Fatalf("Failed to list passwords: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 history rows, got %d", len(rows))
	}

	open := 0
	for _, p := range rows {
		if p.EndAt == nil {
			open++
		}
	}
	if open != 1 {
		t.Fatalf("Expected exactly 1 open history row, got %d", open)
	}
}

func TestPasswordResetLifecycle(t *testing.T) {
	s := newTestStore(t)

	u := &User{Name: "A", Email: "a@example.com", Password: "x"}
	s.CreateUser(u)

	reset := &PasswordReset{Token: "tok-1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := s.CreatePasswordReset(reset); err != nil {
		t.Fatalf("Failed to create reset: %v", err)
	}

	got, err := s.GetPasswordReset("tok-1")
	if err != nil {
		t.Fatalf("Failed to get reset: %v", err)
	}
	if got.Used {
		t.Fatal("New reset should not be used")
	}

	if err := s.MarkPasswordResetUsed("tok-1"); err != nil {
		t.Fatalf("Failed to mark used: %v", err)
	}
	got, _ = s.GetPasswordReset("tok-1")
	if !got.Used {
		t.Fatal("Expected reset to be marked used")
	}

	if _, err := s.GetPasswordReset("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestRequestLogs(t *testing.T) {
	s := newTestStore(t)

	s.LogRequest(&RequestLog{Resource: "users", Method: "GET", Path: "/api/users", StatusCode: 200, DurationMs: 12, UserID: "ana@example.com"})
	s.LogRequest(&RequestLog{Resource: "roles", Method: "POST", Path: "/api/roles", StatusCode: 201, DurationMs: 30})
	s.LogRequest(&RequestLog{Resource: "users", Method: "GET", Path: "/api/users/1", StatusCode: 404, DurationMs: 5})

	logs, err := s.GetRequestLogs(&RequestLogQuery{Limit: 10})
	if err != nil {
		t.Fatalf("Failed to get logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 logs, got %d", len(logs))
	}

	users, _ := s.GetRequestLogs(&RequestLogQuery{Limit: 10, Resource: "users"})
	if len(users) != 2 {
		t.Fatalf("Expected 2 user logs, got %d", len(users))
	}

	stats, err := s.GetRequestLogStats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.TotalRequests != 3 || stats.ErrorRequests != 1 {
		t.Fatalf("Unexpected stats: %+v", stats)
	}

	top, err := s.GetTopEndpoints(5)
	if err != nil {
		t.Fatalf("Failed to get top endpoints: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 endpoints, got %d", len(top))
	}
}

func TestEscapeSQLLike(t *testing.T) {
	if got := escapeSQLLike(`50%_\`); got != `50\%\_\\` {
		t.Fatalf("Unexpected escape result: %s", got)
	}
}
