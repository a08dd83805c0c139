// ABOUTME: REST API handlers for the admin resource collections.
// ABOUTME: Route registration and helpers shared by the per-entity files.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
	"github.com/fernando-bedoya/adminconsole/internal/identity"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

type Handlers struct {
	store    *store.Store
	identity *identity.Service
}

func NewHandlers(s *store.Store, svc *identity.Service) *Handlers {
	return &Handlers{store: s, identity: svc}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/users", h.listUsers)
		r.Get("/users/{id}", h.getUser)
		r.Post("/users", h.createUser)
		r.Put("/users/{id}", h.updateUser)
		r.Delete("/users/{id}", h.deleteUser)

		r.Get("/roles", h.listRoles)
		r.Get("/roles/{id}", h.getRole)
		r.Post("/roles", h.createRole)
		r.Put("/roles/{id}", h.updateRole)
		r.Delete("/roles/{id}", h.deleteRole)

		r.Get("/permissions", h.listPermissions)
		r.Get("/permissions/{id}", h.getPermission)
		r.Post("/permissions", h.createPermission)
		r.Put("/permissions/{id}", h.updatePermission)
		r.Delete("/permissions/{id}", h.deletePermission)

		r.Get("/user-roles", h.listUserRoles)
		r.Get("/user-roles/{id}", h.getUserRole)
		r.Get("/user-roles/user/{userID}", h.listUserRolesByUser)
		r.Get("/user-roles/role/{roleID}", h.listUserRolesByRole)
		r.Post("/user-roles", h.createUserRole)
		r.Put("/user-roles/{id}", h.updateUserRole)
		r.Delete("/user-roles/{id}", h.deleteUserRole)

		r.Get("/role-permissions", h.listRolePermissions)
		r.Get("/role-permissions/{id}", h.getRolePermission)
		r.Get("/role-permissions/role/{roleID}", h.listRolePermissionsByRole)
		r.Post("/role-permissions", h.createRolePermission)
		r.Delete("/role-permissions/{id}", h.deleteRolePermission)

		r.Get("/sessions", h.listSessions)
		r.Get("/sessions/{id}", h.getSession)
		r.Get("/sessions/user/{userID}", h.listSessionsByUser)
		r.Post("/sessions/user/{userID}", h.createSessionForUser)
		r.Put("/sessions/{id}", h.updateSession)
		r.Delete("/sessions/{id}", h.deleteSession)

		r.Get("/passwords", h.listPasswords)
		r.Get("/passwords/user/{userID}", h.listPasswordsByUser)
		r.Delete("/passwords/{id}", h.deletePassword)

		r.Get("/security-questions", h.listSecurityQuestions)
		r.Get("/security-questions/{id}", h.getSecurityQuestion)
		r.Post("/security-questions", h.createSecurityQuestion)
		r.Put("/security-questions/{id}", h.updateSecurityQuestion)
		r.Delete("/security-questions/{id}", h.deleteSecurityQuestion)

		r.Get("/answers", h.listAnswers)
		r.Get("/answers/{id}", h.getAnswer)
		r.Get("/answers/user/{userID}", h.listAnswersByUser)
		r.Post("/answers", h.createAnswer)
		r.Put("/answers/{id}", h.updateAnswer)
		r.Delete("/answers/{id}", h.deleteAnswer)

		r.Get("/devices", h.listDevices)
		r.Get("/devices/{id}", h.getDevice)
		r.Get("/devices/user/{userID}", h.listDevicesByUser)
		r.Post("/devices", h.createDevice)
		r.Put("/devices/{id}", h.updateDevice)
		r.Delete("/devices/{id}", h.deleteDevice)

		r.Get("/request-logs", h.listRequestLogs)
		r.Get("/request-logs/stats", h.requestLogStats)
		r.Get("/request-logs/top", h.topEndpoints)

		r.Get("/digital-signatures", h.listDigitalSignatures)
		r.Get("/digital-signatures/{id}", h.getDigitalSignature)
		r.Get("/digital-signatures/user/{userID}", h.listDigitalSignaturesByUser)
		r.Post("/digital-signatures", h.createDigitalSignature)
		r.Put("/digital-signatures/{id}", h.updateDigitalSignature)
		r.Delete("/digital-signatures/{id}", h.deleteDigitalSignature)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeList never emits null for an empty collection.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

// writeStoreError maps store failures onto the error envelope.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		apperrors.WriteError(w, http.StatusNotFound, apperrors.ErrNotFound, err.Error())
		return
	}
	apperrors.WriteError(w, http.StatusInternalServerError, apperrors.ErrDatabaseError, err.Error())
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// decodeBody rejects malformed JSON with a consistent envelope.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apperrors.WriteError(w, http.StatusBadRequest, apperrors.ErrInvalidBody, "request body is not valid JSON")
		return false
	}
	return true
}

// badID writes the standard response for a non-numeric id segment.
func badID(w http.ResponseWriter) {
	apperrors.WriteError(w, http.StatusBadRequest, apperrors.ErrInvalidRequest, "id must be numeric")
}
