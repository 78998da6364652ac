/**
 * @description
 * This file contains the HTTP handlers for media upload and retrieval.
 * Uploads use multipart only for the file bytes; all structured content goes
 * through JSON endpoints that reference media by id.
 */
package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/app"
)

func (h *Handler) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(app.MaxMediaBytes); err != nil {
		respondError(w, h.logger, apperr.BadRequest("request is not valid multipart form data"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("file field is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	media, err := h.media.Save(r.Context(), header.Filename, contentType, header.Size, file, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "media uploaded", media)
}

func (h *Handler) handleGetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid media id"))
		return
	}

	media, f, err := h.media.Open(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(media.SizeBytes, 10))
	io.Copy(w, f)
}

func (h *Handler) handleGetMediaMeta(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid media id"))
		return
	}

	media, err := h.media.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "media fetched", media)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "dashboard fetched", summary)
}
