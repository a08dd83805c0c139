// ABOUTME: HTTP tests for sign-in, sign-out, password reset, and the guarded
// ABOUTME: change-password screen.

package console

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/fernando-bedoya/adminconsole/internal/guard"
	"github.com/fernando-bedoya/adminconsole/internal/identity"
	"github.com/fernando-bedoya/adminconsole/internal/resource"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

// newAuthServer wires the full auth surface: open login/reset routes plus the
// console behind the guard, with one seeded account.
func newAuthServer(t *testing.T) (*httptest.Server, *identity.Service) {
	t.Helper()

	api := newFakeAPI()
	api.set("GET /users", 200, []map[string]any{{"id": 1, "name": "Ana Torres"}})
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := identity.NewService(s, []byte("test-secret"), time.Hour)
	if _, err := svc.CreateAccount("Ana Torres", "ana@example.com", "hunter2-hunter2"); err != nil {
		t.Fatalf("Failed to seed account: %v", err)
	}

	g := guard.New(sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")), svc)
	con := New(resource.NewClient(apiSrv.URL, nil), g, svc, []*Screen{testUsersScreen()})

	r := chi.NewRouter()
	con.RegisterAuthRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(g.Middleware)
		con.RegisterRoutes(r)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, svc
}

func postFormCookies(t *testing.T, target string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req, _ := http.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	return resp
}

func signInCookies(t *testing.T, srv *httptest.Server, email, password string) []*http.Cookie {
	t.Helper()
	resp := postFormCookies(t, srv.URL+"/login", url.Values{
		"email": {email}, "password": {password},
	}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected 303 after sign-in, got %d", resp.StatusCode)
	}
	return resp.Cookies()
}

func TestLoginRedirectsToConsole(t *testing.T) {
	srv, _ := newAuthServer(t)

	resp := postFormCookies(t, srv.URL+"/login", url.Values{
		"email": {"ana@example.com"}, "password": {"hunter2-hunter2"},
	}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/console" {
		t.Fatalf("Expected redirect to /console, got %s", loc)
	}
	if len(resp.Cookies()) == 0 {
		t.Fatal("Expected a session cookie")
	}

	// The session unlocks guarded routes
	resp2, body := get(t, srv.URL+"/console/users", resp.Cookies())
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 on guarded route, got %d", resp2.StatusCode)
	}
	if !strings.Contains(body, "Ana Torres") {
		t.Fatal("Expected the users screen to render")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv, _ := newAuthServer(t)

	resp := postFormCookies(t, srv.URL+"/login", url.Values{
		"email": {"ana@example.com"}, "password": {"wrong"},
	}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected re-render, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid email or password.") {
		t.Fatal("Expected the credentials error")
	}
}

func TestGuardedRouteWithoutSession(t *testing.T) {
	srv, _ := newAuthServer(t)

	resp, _ := get(t, srv.URL+"/console/users", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("Expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("Expected redirect to /login, got %s", loc)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv, _ := newAuthServer(t)
	cookies := signInCookies(t, srv, "ana@example.com", "hunter2-hunter2")

	resp, _ := get(t, srv.URL+"/logout", cookies)
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("Expected redirect to /login, got %s", loc)
	}

	// The cleared cookie no longer unlocks the console
	cleared := resp.Cookies()
	resp2, _ := get(t, srv.URL+"/console/users", cleared)
	if resp2.StatusCode != http.StatusFound {
		t.Fatalf("Expected redirect after logout, got %d", resp2.StatusCode)
	}
}

func TestResetRequestNeverDisclosesAccounts(t *testing.T) {
	srv, _ := newAuthServer(t)

	known := postFormCookies(t, srv.URL+"/reset", url.Values{"email": {"ana@example.com"}}, nil)
	knownBody, _ := io.ReadAll(known.Body)
	known.Body.Close()

	unknown := postFormCookies(t, srv.URL+"/reset", url.Values{"email": {"ghost@example.com"}}, nil)
	unknownBody, _ := io.ReadAll(unknown.Body)
	unknown.Body.Close()

	if string(knownBody) != string(unknownBody) {
		t.Fatal("Known and unknown addresses must get identical responses")
	}
	if !strings.Contains(string(knownBody), "If that address has an account") {
		t.Fatal("Expected the neutral confirmation copy")
	}
}

func TestResetConfirmFlow(t *testing.T) {
	srv, svc := newAuthServer(t)

	token, err := svc.SendPasswordResetEmail("ana@example.com")
	if err != nil {
		t.Fatalf("Failed to issue reset: %v", err)
	}

	resp := postFormCookies(t, srv.URL+"/reset/confirm", url.Values{
		"token": {token}, "password": {"brand-new-pass-1"},
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", resp.StatusCode)
	}

	// The new password signs in; the old one no longer does
	signInCookies(t, srv, "ana@example.com", "brand-new-pass-1")
	bad := postFormCookies(t, srv.URL+"/login", url.Values{
		"email": {"ana@example.com"}, "password": {"hunter2-hunter2"},
	}, nil)
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusOK {
		t.Fatalf("Expected re-render for the old password, got %d", bad.StatusCode)
	}
}

func TestResetConfirmRejectsShortPassword(t *testing.T) {
	srv, svc := newAuthServer(t)
	token, _ := svc.SendPasswordResetEmail("ana@example.com")

	resp := postFormCookies(t, srv.URL+"/reset/confirm", url.Values{
		"token": {token}, "password": {"short"},
	}, nil)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "at least 8 characters") {
		t.Fatal("Expected the length error")
	}
}

func TestResetConfirmRejectsBadToken(t *testing.T) {
	srv, _ := newAuthServer(t)

	resp := postFormCookies(t, srv.URL+"/reset/confirm", url.Values{
		"token": {"no-such-token"}, "password": {"brand-new-pass-1"},
	}, nil)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "no longer valid") {
		t.Fatal("Expected the invalid-token error")
	}
}

func TestChangePassword(t *testing.T) {
	srv, _ := newAuthServer(t)
	cookies := signInCookies(t, srv, "ana@example.com", "hunter2-hunter2")

	wrong := postFormCookies(t, srv.URL+"/console/password", url.Values{
		"current_password": {"nope"}, "new_password": {"brand-new-pass-1"},
	}, cookies)
	wrongBody, _ := io.ReadAll(wrong.Body)
	wrong.Body.Close()
	if !strings.Contains(string(wrongBody), "Current password is incorrect.") {
		t.Fatal("Expected the wrong-password error")
	}

	ok := postFormCookies(t, srv.URL+"/console/password", url.Values{
		"current_password": {"hunter2-hunter2"}, "new_password": {"brand-new-pass-1"},
	}, cookies)
	okBody, _ := io.ReadAll(ok.Body)
	ok.Body.Close()
	if !strings.Contains(string(okBody), "Password updated") {
		t.Fatal("Expected the success banner")
	}

	signInCookies(t, srv, "ana@example.com", "brand-new-pass-1")
}
