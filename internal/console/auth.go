// ABOUTME: Sign-in, sign-out, password reset, and password change pages.
// ABOUTME: Unguarded routes except the change-password screen under /console.

package console

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fernando-bedoya/adminconsole/internal/guard"
	"github.com/fernando-bedoya/adminconsole/internal/identity"
)

// RegisterAuthRoutes mounts the unauthenticated pages: login, logout, and the
// password-reset flow.
func (c *Console) RegisterAuthRoutes(r chi.Router) {
	r.Get(guard.LoginPath, c.loginForm)
	r.Post(guard.LoginPath, c.login)
	r.Get("/logout", c.logout)
	r.Get("/reset", c.resetRequestForm)
	r.Post("/reset", c.resetRequest)
	r.Get("/reset/confirm", c.resetConfirmForm)
	r.Post("/reset/confirm", c.resetConfirm)
}

func (c *Console) loginForm(w http.ResponseWriter, r *http.Request) {
	c.renderAuthPage(w, "Sign in", loginFormHTML(""))
}

func (c *Console) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderAuthPage(w, "Sign in", loginFormHTML("Could not read the form."))
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	u, token, err := c.identity.SignIn(email, password)
	if err != nil {
		msg := "Something went wrong. Please try again."
		if errors.Is(err, identity.ErrInvalidCredentials) {
			msg = "Invalid email or password."
		}
		c.renderAuthPage(w, "Sign in", loginFormHTML(msg))
		return
	}

	claims, err := c.identity.VerifyToken(token)
	if err != nil {
		c.renderAuthPage(w, "Sign in", loginFormHTML("Something went wrong. Please try again."))
		return
	}
	if err := c.guard.Establish(w, r, u, token, claims.ExpiresAt.Time); err != nil {
		c.renderAuthPage(w, "Sign in", loginFormHTML("Something went wrong. Please try again."))
		return
	}

	http.Redirect(w, r, BasePath, http.StatusSeeOther)
}

func (c *Console) logout(w http.ResponseWriter, r *http.Request) {
	c.guard.Clear(w, r)
	http.Redirect(w, r, guard.LoginPath, http.StatusFound)
}

func (c *Console) resetRequestForm(w http.ResponseWriter, r *http.Request) {
	c.renderAuthPage(w, "Reset password", resetRequestHTML("", false))
}

// resetRequest always reports success; whether the address exists is not
// disclosed.
func (c *Console) resetRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderAuthPage(w, "Reset password", resetRequestHTML("Could not read the form.", false))
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	if email != "" {
		c.identity.SendPasswordResetEmail(email)
	}
	c.renderAuthPage(w, "Reset password", resetRequestHTML("", true))
}

func (c *Console) resetConfirmForm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	c.renderAuthPage(w, "Choose a new password", resetConfirmHTML(token, ""))
}

func (c *Console) resetConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderAuthPage(w, "Choose a new password", resetConfirmHTML("", "Could not read the form."))
		return
	}

	token := r.PostForm.Get("token")
	password := r.PostForm.Get("password")
	if len(password) < 8 {
		c.renderAuthPage(w, "Choose a new password", resetConfirmHTML(token, "Password must be at least 8 characters."))
		return
	}

	if err := c.identity.ResetPassword(token, password); err != nil {
		msg := "Something went wrong. Please try again."
		if errors.Is(err, identity.ErrResetInvalid) {
			msg = "This reset link is no longer valid. Request a new one."
		}
		c.renderAuthPage(w, "Choose a new password", resetConfirmHTML(token, msg))
		return
	}

	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

// passwordForm is the guarded change-password screen for the signed-in user.
func (c *Console) passwordForm(w http.ResponseWriter, r *http.Request) {
	c.renderPage(w, r, "Change password", changePasswordHTML(""))
}

func (c *Console) updatePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := guard.ClaimsFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, guard.LoginPath, http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		c.renderPage(w, r, "Change password", changePasswordHTML("Could not read the form."))
		return
	}

	current := r.PostForm.Get("current_password")
	next := r.PostForm.Get("new_password")
	if len(next) < 8 {
		c.renderPage(w, r, "Change password", changePasswordHTML("New password must be at least 8 characters."))
		return
	}

	if err := c.identity.UpdatePassword(claims.UserID, current, next); err != nil {
		msg := "Something went wrong. Please try again."
		if errors.Is(err, identity.ErrInvalidCredentials) {
			msg = "Current password is incorrect."
		}
		c.renderPage(w, r, "Change password", changePasswordHTML(msg))
		return
	}

	c.renderPage(w, r, "Change password", flashBanner("Password updated")+changePasswordHTML(""))
}

// renderAuthPage is a slimmer shell than the console layout: no sidebar, just
// a centered card.
func (c *Console) renderAuthPage(w http.ResponseWriter, title, body string) {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
	sb.WriteString(fmt.Sprintf(`<title>%s - Admin Console</title>`, html.EscapeString(title)))
	sb.WriteString(`<script src="https://cdn.tailwindcss.com"></script>`)
	sb.WriteString(`</head><body class="bg-gray-100">`)
	sb.WriteString(`<div class="min-h-screen flex items-center justify-center">`)
	sb.WriteString(`<div class="bg-white rounded-lg shadow p-8 w-full max-w-md">`)
	sb.WriteString(fmt.Sprintf(`<h1 class="text-2xl font-bold text-gray-900 mb-6">%s</h1>`, html.EscapeString(title)))
	sb.WriteString(body)
	sb.WriteString(`</div></div></body></html>`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(sb.String()))
}

const authInputClass = "mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border"
const authButtonClass = "w-full px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700"

func authErrorHTML(msg string) string {
	if msg == "" {
		return ""
	}
	return fmt.Sprintf(`<div class="rounded bg-red-50 border border-red-200 text-red-700 px-4 py-3 mb-4 text-sm">%s</div>`,
		html.EscapeString(msg))
}

func loginFormHTML(errMsg string) string {
	return authErrorHTML(errMsg) + fmt.Sprintf(`<form method="POST" action="%s" class="space-y-4">
<div><label class="block text-sm font-medium text-gray-700">Email</label><input type="email" name="email" required class="%s"></div>
<div><label class="block text-sm font-medium text-gray-700">Password</label><input type="password" name="password" required class="%s"></div>
<button type="submit" class="%s">Sign in</button>
<p class="text-sm text-center"><a href="/reset" class="text-blue-600 hover:text-blue-900">Forgot password?</a></p>
</form>`, guard.LoginPath, authInputClass, authInputClass, authButtonClass)
}

func resetRequestHTML(errMsg string, sent bool) string {
	if sent {
		return `<p class="text-sm text-gray-700">If that address has an account, a reset link has been issued. Check the server log for the token.</p>
<p class="mt-4 text-sm"><a href="/login" class="text-blue-600 hover:text-blue-900">Back to sign in</a></p>`
	}
	return authErrorHTML(errMsg) + fmt.Sprintf(`<form method="POST" action="/reset" class="space-y-4">
<div><label class="block text-sm font-medium text-gray-700">Email</label><input type="email" name="email" required class="%s"></div>
<button type="submit" class="%s">Send reset link</button>
</form>`, authInputClass, authButtonClass)
}

func resetConfirmHTML(token, errMsg string) string {
	return authErrorHTML(errMsg) + fmt.Sprintf(`<form method="POST" action="/reset/confirm" class="space-y-4">
<input type="hidden" name="token" value="%s">
<div><label class="block text-sm font-medium text-gray-700">New password</label><input type="password" name="password" required class="%s"></div>
<button type="submit" class="%s">Set password</button>
</form>`, html.EscapeString(token), authInputClass, authButtonClass)
}

func changePasswordHTML(errMsg string) string {
	return authErrorHTML(errMsg) + fmt.Sprintf(`<h1 class="text-2xl font-bold text-gray-900 mb-4">Change password</h1>
<form method="POST" action="/console/password" class="bg-white rounded-lg shadow p-6 space-y-4 max-w-md">
<div><label class="block text-sm font-medium text-gray-700">Current password</label><input type="password" name="current_password" required class="%s"></div>
<div><label class="block text-sm font-medium text-gray-700">New password</label><input type="password" name="new_password" required class="%s"></div>
<button type="submit" class="px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700">Update</button>
</form>`, authInputClass, authInputClass)
}
