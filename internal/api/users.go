// ABOUTME: User collection handlers.
// ABOUTME: Creation goes through the identity service so hashes and history
// stay consistent.

package api

import (
	"net/http"
	"strings"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, users)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	u, err := h.store.GetUser(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "name is required", "name")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "email is required", "email")
		return
	}
	if req.Password == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "password is required", "password")
		return
	}

	u, err := h.identity.CreateAccount(req.Name, req.Email, req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			apperrors.WriteError(w, http.StatusConflict, apperrors.ErrConflict, "a user with that email already exists")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	// Rejected outright rather than dropped: a silently ignored password
	// would leave the caller believing it changed.
	if req.Password != "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrValidationFailed,
			"password cannot be changed here; use the password flows", "password")
		return
	}

	u, err := h.store.GetUser(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if err := h.store.UpdateUser(u); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteUser(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
