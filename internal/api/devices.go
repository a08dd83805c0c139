// ABOUTME: Device and digital signature handlers.

package api

import (
	"net/http"
	"strings"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

func (h *Handlers) listDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.store.ListDevices(0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, devices)
}

func (h *Handlers) getDevice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	d, err := h.store.GetDevice(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) listDevicesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	devices, err := h.store.ListDevices(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, devices)
}

func (h *Handlers) createDevice(w http.ResponseWriter, r *http.Request) {
	var d store.Device
	if !decodeBody(w, r, &d) {
		return
	}
	if d.UserID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "user_id is required", "user_id")
		return
	}
	if strings.TrimSpace(d.Name) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "name is required", "name")
		return
	}
	if err := h.store.CreateDevice(&d); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handlers) updateDevice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var d store.Device
	if !decodeBody(w, r, &d) {
		return
	}
	d.ID = id
	if err := h.store.UpdateDevice(&d); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) deleteDevice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteDevice(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) listDigitalSignatures(w http.ResponseWriter, r *http.Request) {
	sigs, err := h.store.ListDigitalSignatures(0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, sigs)
}

func (h *Handlers) getDigitalSignature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	sig, err := h.store.GetDigitalSignature(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

func (h *Handlers) listDigitalSignaturesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	sigs, err := h.store.ListDigitalSignatures(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, sigs)
}

func (h *Handlers) createDigitalSignature(w http.ResponseWriter, r *http.Request) {
	var sig store.DigitalSignature
	if !decodeBody(w, r, &sig) {
		return
	}
	if sig.UserID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "user_id is required", "user_id")
		return
	}
	if strings.TrimSpace(sig.ImageURL) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "image_url is required", "image_url")
		return
	}
	if err := h.store.CreateDigitalSignature(&sig); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sig)
}

func (h *Handlers) updateDigitalSignature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var sig store.DigitalSignature
	if !decodeBody(w, r, &sig) {
		return
	}
	sig.ID = id
	if err := h.store.UpdateDigitalSignature(&sig); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

func (h *Handlers) deleteDigitalSignature(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteDigitalSignature(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
