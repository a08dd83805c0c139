// ABOUTME: Request-log handlers backing the console's activity screen.

package api

import (
	"net/http"
	"strconv"

	"github.com/fernando-bedoya/adminconsole/internal/store"
)

const defaultLogLimit = 100

func (h *Handlers) listRequestLogs(w http.ResponseWriter, r *http.Request) {
	q := &store.RequestLogQuery{
		Limit:    defaultLogLimit,
		Resource: r.URL.Query().Get("resource"),
		Method:   r.URL.Query().Get("method"),
		UserID:   r.URL.Query().Get("user_id"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		q.Offset = offset
	}
	if status, err := strconv.Atoi(r.URL.Query().Get("status")); err == nil && status > 0 {
		q.StatusCode = status
	}

	logs, err := h.store.GetRequestLogs(q)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, logs)
}

func (h *Handlers) requestLogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetRequestLogStats()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) topEndpoints(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}
	endpoints, err := h.store.GetTopEndpoints(limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeList(w, endpoints)
}
