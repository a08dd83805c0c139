// ABOUTME: Password history handlers.
// ABOUTME: Read and delete only; new rows are appended by the identity service.

package api

import "net/http"

func (h *Handlers) listPasswords(w http.ResponseWriter, r *http.Request) {
	passwords, err := h.store.ListPasswords(0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, passwords)
}

func (h *Handlers) listPasswordsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	passwords, err := h.store.ListPasswords(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, passwords)
}

func (h *Handlers) deletePassword(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeletePassword(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
