// ABOUTME: Role and permission collection handlers.

package api

import (
	"net/http"
	"strings"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

func (h *Handlers) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.store.ListRoles()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, roles)
}

func (h *Handlers) getRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	role, err := h.store.GetRole(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *Handlers) createRole(w http.ResponseWriter, r *http.Request) {
	var role store.Role
	if !decodeBody(w, r, &role) {
		return
	}
	if strings.TrimSpace(role.Name) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "name is required", "name")
		return
	}
	if err := h.store.CreateRole(&role); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

func (h *Handlers) updateRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var role store.Role
	if !decodeBody(w, r, &role) {
		return
	}
	role.ID = id
	if err := h.store.UpdateRole(&role); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *Handlers) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteRole(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.store.ListPermissions()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, perms)
}

func (h *Handlers) getPermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	p, err := h.store.GetPermission(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) createPermission(w http.ResponseWriter, r *http.Request) {
	var p store.Permission
	if !decodeBody(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.URL) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "url is required", "url")
		return
	}
	if strings.TrimSpace(p.Method) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "method is required", "method")
		return
	}
	if err := h.store.CreatePermission(&p); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) updatePermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var p store.Permission
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = id
	if err := h.store.UpdatePermission(&p); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) deletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeletePermission(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
