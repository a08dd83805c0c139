// ABOUTME: Security question catalog and per-user answer handlers.

package api

import (
	"net/http"
	"strings"

	apperrors "github.com/fernando-bedoya/adminconsole/internal/errors"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

func (h *Handlers) listSecurityQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.ListSecurityQuestions()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, questions)
}

func (h *Handlers) getSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	q, err := h.store.GetSecurityQuestion(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) createSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	var q store.SecurityQuestion
	if !decodeBody(w, r, &q) {
		return
	}
	if strings.TrimSpace(q.Name) == "" {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "name is required", "name")
		return
	}
	if err := h.store.CreateSecurityQuestion(&q); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *Handlers) updateSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var q store.SecurityQuestion
	if !decodeBody(w, r, &q) {
		return
	}
	q.ID = id
	if err := h.store.UpdateSecurityQuestion(&q); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) deleteSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteSecurityQuestion(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) listAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.store.ListAnswers(0)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, answers)
}

func (h *Handlers) getAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	a, err := h.store.GetAnswer(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) listAnswersByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		badID(w)
		return
	}
	answers, err := h.store.ListAnswers(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, answers)
}

func (h *Handlers) createAnswer(w http.ResponseWriter, r *http.Request) {
	var a store.Answer
	if !decodeBody(w, r, &a) {
		return
	}
	if a.UserID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "user_id is required", "user_id")
		return
	}
	if a.SecurityQuestionID == 0 {
		apperrors.WriteErrorWithField(w, http.StatusBadRequest, apperrors.ErrMissingField, "security_question_id is required", "security_question_id")
		return
	}
	if err := h.store.CreateAnswer(&a); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) updateAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	var a store.Answer
	if !decodeBody(w, r, &a) {
		return
	}
	a.ID = id
	if err := h.store.UpdateAnswer(&a); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handlers) deleteAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badID(w)
		return
	}
	if err := h.store.DeleteAnswer(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
