// ABOUTME: Session collection handlers.
// ABOUTME: Sessions are keyed by UUID and created under a parent user route.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

// defaultSessionTTL applies when a create request carries no expiry.
const defaultSessionTTL = 24 * time.Hour

type sessionRequest struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	State     string     `json:"state"`
}

func (h *Handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions(0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, sessions)
}

func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.store.GetSession(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) listSessionsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	sessions, err := h.store.ListSessions(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, sessions)
}

func (h *Handlers) createSessionForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	if _, err := h.store.GetUser(userID); err != nil {
		writeStoreError(w, err)
		return
	}

	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expiresAt := time.Now().UTC().Add(defaultSessionTTL)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	// Blank tokens get a generated placeholder so rows stay distinguishable.
	token := req.Token
	if token == "" {
		token = uuid.NewString()
	}

	sess := &store.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		State:     req.State,
	}
	if err := h.store.CreateSession(sess); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) updateSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.State != store.SessionActive && req.State != store.SessionRevoked {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrValidationFailed, "state must be active or revoked", "state")
		return
	}
	if err := h.store.UpdateSessionState(id, req.State); err != nil {
		writeStoreError(w, err)
		return
	}
	sess, err := h.store.GetSession(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteSession(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
