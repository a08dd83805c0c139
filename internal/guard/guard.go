// ABOUTME: Route guard for console screens.
// ABOUTME: Verifies the session token on every request; failures clear the
// session and redirect to the login route.

package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/fernando-bedoya/adminconsole/internal/identity"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

// SessionName is the cookie session holding the console's client state.
const SessionName = "adminconsole"

// Session keys. Profile is a normalized JSON blob alongside the raw token so
// screens can show the signed-in user without re-parsing the JWT.
const (
	KeyToken   = "token"
	KeyProfile = "profile"
	KeyExpiry  = "expires_at"
	KeyTheme   = "table_theme"
)

// LoginPath is where unauthenticated requests land. One-way: the guard never
// retries a failed check.
const LoginPath = "/login"

type contextKey string

const claimsContextKey contextKey = "claims"

// Guard wraps protected routes. Token presence alone is not trusted; the
// signature and expiry are verified on every request.
type Guard struct {
	sessions sessions.Store
	identity *identity.Service
}

func New(sessionStore sessions.Store, svc *identity.Service) *Guard {
	return &Guard{sessions: sessionStore, identity: svc}
}

// Middleware gates a route subtree. Missing, expired, or forged tokens clear
// every session key and redirect to the login route.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := g.sessions.Get(r, SessionName)

		token, _ := sess.Values[KeyToken].(string)
		if token == "" {
			g.reject(w, r, sess)
			return
		}

		// Stored expiry is checked first so an expired marker is cleaned
		// up even if the token itself would fail verification anyway.
		if exp, ok := sess.Values[KeyExpiry].(int64); ok && time.Now().Unix() >= exp {
			g.reject(w, r, sess)
			return
		}

		claims, err := g.identity.VerifyToken(token)
		if err != nil {
			g.reject(w, r, sess)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Establish writes the session markers after a successful sign-in: the raw
// token, a normalized profile blob, and the expiry timestamp.
func (g *Guard) Establish(w http.ResponseWriter, r *http.Request, u *store.User, token string, expiresAt time.Time) error {
	sess, _ := g.sessions.Get(r, SessionName)

	profile, err := json.Marshal(map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
	if err != nil {
		return err
	}

	sess.Values[KeyToken] = token
	sess.Values[KeyProfile] = string(profile)
	sess.Values[KeyExpiry] = expiresAt.Unix()
	return sess.Save(r, w)
}

// Clear removes every session marker. Theme preference goes with them; it is
// client state, not account state.
func (g *Guard) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := g.sessions.Get(r, SessionName)
	return g.clearSession(w, r, sess)
}

func (g *Guard) clearSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session) error {
	for key := range sess.Values {
		delete(sess.Values, key)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func (g *Guard) reject(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	g.clearSession(w, r, sess)
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

// ClaimsFromContext returns the verified claims placed by Middleware.
func ClaimsFromContext(ctx context.Context) (*identity.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*identity.Claims)
	return claims, ok
}

// Theme reads the stored table theme preference, or "" when unset.
func (g *Guard) Theme(r *http.Request) string {
	sess, _ := g.sessions.Get(r, SessionName)
	theme, _ := sess.Values[KeyTheme].(string)
	return theme
}

// SetTheme persists the table theme preference. Last write wins; concurrent
// tabs are not coordinated.
func (g *Guard) SetTheme(w http.ResponseWriter, r *http.Request, theme string) error {
	sess, _ := g.sessions.Get(r, SessionName)
	sess.Values[KeyTheme] = theme
	return sess.Save(r, w)
}
