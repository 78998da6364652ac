/**
 * @description
 * This file contains the response envelope shared by every endpoint and the
 * helpers that write it. Success and failure responses carry the same shape
 * so clients can parse either unconditionally.
 */
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/store"
)

// Envelope is the uniform JSON response body.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination derives the full pagination block from a page request and the
// total row count.
func NewPagination(page, limit, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1 && total > 0,
	}
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, message string, data any) {
	respondPage(w, status, message, data, nil)
}

// respondPage writes a success envelope with a pagination block.
func respondPage(w http.ResponseWriter, status int, message string, data any, pagination *Pagination) {
	writeJSON(w, status, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// respondError maps an error to an HTTP status and writes a failure envelope.
// Unrecognized errors become opaque 500s so internals never leak to clients.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		message = "resource not found"
	case errors.Is(err, store.ErrDuplicate):
		status = http.StatusConflict
		message = "resource already exists"
	}

	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "error", err)
	}

	writeJSON(w, status, Envelope{
		Success: false,
		Message: message,
		Error:   http.StatusText(status),
	})
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	payload, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
