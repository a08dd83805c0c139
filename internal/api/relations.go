// ABOUTME: Handlers for user-role assignments and role-permission grants.
// ABOUTME: Both support parent-scoped listing routes for the assignment screens.

package api

import (
	"net/http"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

func (h *Handlers) listUserRoles(w http.ResponseWriter, r *http.Request) {
	urs, err := h.store.ListUserRoles(0, 0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, urs)
}

func (h *Handlers) getUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	ur, err := h.store.GetUserRole(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ur)
}

func (h *Handlers) listUserRolesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	urs, err := h.store.ListUserRoles(userID, 0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, urs)
}

func (h *Handlers) listUserRolesByRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := idParam(r, "roleID")
	if err != nil {
		badID(w)
		return
	}
	urs, err := h.store.ListUserRoles(0, roleID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, urs)
}

func (h *Handlers) createUserRole(w http.ResponseWriter, r *http.Request) {
	var ur store.UserRole
	if !decodeBody(w, r, &ur) {
		return
	}
	if ur.UserID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "user_id is required", "user_id")
		return
	}
	if ur.RoleID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "role_id is required", "role_id")
		return
	}
	if err := h.store.CreateUserRole(&ur); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ur)
}

func (h *Handlers) updateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var ur store.UserRole
	if !decodeBody(w, r, &ur) {
		return
	}
	ur.ID = id
	if err := h.store.UpdateUserRole(&ur); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ur)
}

func (h *Handlers) deleteUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteUserRole(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) listRolePermissions(w http.ResponseWriter, r *http.Request) {
	rps, err := h.store.ListRolePermissions(0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, rps)
}

func (h *Handlers) getRolePermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	rp, err := h.store.GetRolePermission(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rp)
}

func (h *Handlers) listRolePermissionsByRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := idParam(r, "roleID")
	if err != nil {
		badID(w)
		return
	}
	rps, err := h.store.ListRolePermissions(roleID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, rps)
}

func (h *Handlers) createRolePermission(w http.ResponseWriter, r *http.Request) {
	var rp store.RolePermission
	if !decodeBody(w, r, &rp) {
		return
	}
	if rp.RoleID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "role_id is required", "role_id")
		return
	}
	if rp.PermissionID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "permission_id is required", "permission_id")
		return
	}
	if err := h.store.CreateRolePermission(&rp); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rp)
}

func (h *Handlers) deleteRolePermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteRolePermission(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
