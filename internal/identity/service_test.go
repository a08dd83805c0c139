// ABOUTME: Unit tests for accounts, sign-in, token issuance, and the password
// ABOUTME: lifecycle, against a temp-file SQLite store.

package identity

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fernando-bedoya/adminconsole/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewService(s, []byte("test-secret"), time.Hour), s
}

func TestCreateAccount(t *testing.T) {
	svc, s := newTestService(t)

	u, err := svc.CreateAccount("Ana Torres", "ana@example.com", "hunter2-hunter2")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Expected user ID to be set")
	}

	// Stored password is a bcrypt hash, never the plaintext
	if u.Password == "hunter2-hunter2" {
		t.Fatal("Password stored in plaintext")
	}
	if !strings.HasPrefix(u.Password, "$2") {
		t.Fatalf("Expected bcrypt hash, got %q", u.Password)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter2-hunter2")) != nil {
		t.Fatal("Hash does not verify against the original password")
	}

	history, err := s.ListPasswords(u.ID)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 1 || history[0].EndAt != nil {
		t.Fatalf("Expected one open history row, got %+v", history)
	}
}

func TestSignIn(t *testing.T) {
	svc, s := newTestService(t)
	u, _ := svc.CreateAccount("Ana", "ana@example.com", "hunter2-hunter2")

	got, token, err := svc.SignIn("ana@example.com", "hunter2-hunter2")
	if err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("Expected user %d, got %d", u.ID, got.ID)
	}
	if token == "" {
		t.Fatal("Expected a token")
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("Issued token failed verification: %v", err)
	}
	if claims.UserID != u.ID || claims.Email != "ana@example.com" {
		t.Fatalf("Unexpected claims: %+v", claims)
	}

	sessions, err := s.ListSessions(u.ID)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Token != token {
		t.Fatalf("Expected one session holding the token, got %+v", sessions)
	}
	if sessions[0].State != store.SessionActive {
		t.Fatalf("Expected active session, got %s", sessions[0].State)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	svc.CreateAccount("Ana", "ana@example.com", "hunter2-hunter2")

	// Wrong password and unknown email return the same error
	if _, _, err := svc.SignIn("ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.SignIn("ghost@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc, s := newTestService(t)
	u, _ := svc.CreateAccount("Ana", "ana@example.com", "old-password-1")

	if err := svc.UpdatePassword(u.ID, "wrong", "new-password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.UpdatePassword(u.ID, "old-password-1", "new-password-1"); err != nil {
		t.Fatalf("Failed to update password: %v", err)
	}

	if _, _, err := svc.SignIn("ana@example.com", "old-password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("Old password should no longer work")
	}
	if _, _, err := svc.SignIn("ana@example.com", "new-password-1"); err != nil {
		t.Fatalf("New password should work: %v", err)
	}

	history, _ := s.ListPasswords(u.ID)
	if len(history) != 2 {
		t.Fatalf("Expected 2 history rows, got %d", len(history))
	}
	open := 0
	for _, p := range history {
		if p.EndAt == nil {
			open++
		}
	}
	if open != 1 {
		t.Fatalf("Expected exactly 1 open history row, got %d", open)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newTestService(t)
	svc.CreateAccount("Ana", "ana@example.com", "old-password-1")

	token, err := svc.SendPasswordResetEmail("ana@example.com")
	if err != nil {
		t.Fatalf("Failed to issue reset: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("Expected 64-char hex token, got %d chars", len(token))
	}

	if err := svc.ResetPassword(token, "new-password-1"); err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if _, _, err := svc.SignIn("ana@example.com", "new-password-1"); err != nil {
		t.Fatalf("New password should work: %v", err)
	}

	// Tokens are single-use
	if err := svc.ResetPassword(token, "another-password"); !errors.Is(err, ErrResetInvalid) {
		t.Fatalf("Expected ErrResetInvalid on reuse, got %v", err)
	}
}

func TestResetUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.ResetPassword("no-such-token", "whatever-1"); !errors.Is(err, ErrResetInvalid) {
		t.Fatalf("Expected ErrResetInvalid, got %v", err)
	}
}

func TestResetExpiredToken(t *testing.T) {
	svc, s := newTestService(t)
	u, _ := svc.CreateAccount("Ana", "ana@example.com", "old-password-1")

	expired := &store.PasswordReset{
		Token:     "expired-token",
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := s.CreatePasswordReset(expired); err != nil {
		t.Fatalf("Failed to seed reset: %v", err)
	}

	if err := svc.ResetPassword("expired-token", "new-password-1"); !errors.Is(err, ErrResetInvalid) {
		t.Fatalf("Expected ErrResetInvalid, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.VerifyToken("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	svc, s := newTestService(t)
	u, _ := svc.CreateAccount("Ana", "ana@example.com", "hunter2-hunter2")

	token, _, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	other := NewService(s, []byte("different-secret"), time.Hour)
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Expected ErrTokenInvalid across keys, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	_, s := newTestService(t)
	expired := NewService(s, []byte("test-secret"), -time.Minute)

	u, err := expired.CreateAccount("Ana", "ana@example.com", "hunter2-hunter2")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	token, _, err := expired.IssueToken(u)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if _, err := expired.VerifyToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Expected ErrTokenInvalid for expired token, got %v", err)
	}
}
