/**
 * @description
 * This file contains the HTTP handlers for the CMS surfaces: blogs, FAQs,
 * header banners, team members, the about-us page and general settings.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/apperr"
)

type blogRequest struct {
	Slug         string     `json:"slug" validate:"required,max=200"`
	Title        any        `json:"title" validate:"required"`
	Body         any        `json:"body" validate:"required"`
	CoverMediaID *uuid.UUID `json:"cover_media_id"`
	IsPublished  bool       `json:"is_published"`
}

func (r blogRequest) input() app.BlogInput {
	return app.BlogInput{
		Slug:         r.Slug,
		Title:        r.Title,
		Body:         r.Body,
		CoverMediaID: r.CoverMediaID,
		IsPublished:  r.IsPublished,
	}
}

func (h *Handler) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	publishedOnly := true
	if isAdmin(r) && queryBool(r, "all") {
		publishedOnly = false
	}

	blogs, total, err := h.cms.ListBlogs(r.Context(), LangFromContext(r.Context()), publishedOnly, limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "blogs fetched", blogs, NewPagination(page, limit, total))
}

func (h *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.cms.GetBlog(r.Context(), chi.URLParam(r, "slug"), LangFromContext(r.Context()), isAdmin(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "blog fetched", blog)
}

func (h *Handler) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req blogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	blog, err := h.cms.CreateBlog(r.Context(), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "blog created", blog)
}

func (h *Handler) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid blog id"))
		return
	}

	var req blogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	blog, err := h.cms.UpdateBlog(r.Context(), id, req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "blog updated", blog)
}

func (h *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid blog id"))
		return
	}

	if err := h.cms.DeleteBlog(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "blog deleted", nil)
}

type faqRequest struct {
	Question any `json:"question" validate:"required"`
	Answer   any `json:"answer" validate:"required"`
	Position int `json:"position" validate:"gte=0"`
}

func (h *Handler) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.cms.ListFAQs(r.Context(), LangFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "faqs fetched", faqs)
}

func (h *Handler) handleCreateFAQ(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req faqRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	faq, err := h.cms.CreateFAQ(r.Context(), app.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "faq created", faq)
}

func (h *Handler) handleUpdateFAQ(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid faq id"))
		return
	}

	var req faqRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	faq, err := h.cms.UpdateFAQ(r.Context(), id, app.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "faq updated", faq)
}

func (h *Handler) handleDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid faq id"))
		return
	}

	if err := h.cms.DeleteFAQ(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "faq deleted", nil)
}

type bannerRequest struct {
	Caption    any        `json:"caption" validate:"required"`
	MediaID    *uuid.UUID `json:"media_id"`
	LinkURL    string     `json:"link_url" validate:"omitempty,url"`
	ActiveFrom *time.Time `json:"active_from"`
	ActiveTo   *time.Time `json:"active_to"`
}

func (r bannerRequest) input() app.BannerInput {
	return app.BannerInput{
		Caption:    r.Caption,
		MediaID:    r.MediaID,
		LinkURL:    r.LinkURL,
		ActiveFrom: r.ActiveFrom,
		ActiveTo:   r.ActiveTo,
	}
}

func (h *Handler) handleActiveBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.cms.ActiveBanners(r.Context(), LangFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "banners fetched", banners)
}

func (h *Handler) handleListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.cms.ListBanners(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "banners fetched", banners)
}

func (h *Handler) handleCreateBanner(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req bannerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	banner, err := h.cms.CreateBanner(r.Context(), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "banner created", banner)
}

func (h *Handler) handleUpdateBanner(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid banner id"))
		return
	}

	var req bannerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	banner, err := h.cms.UpdateBanner(r.Context(), id, req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "banner updated", banner)
}

func (h *Handler) handleDeleteBanner(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid banner id"))
		return
	}

	if err := h.cms.DeleteBanner(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "banner deleted", nil)
}

type teamMemberRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Role         any        `json:"role" validate:"required"`
	Bio          any        `json:"bio"`
	PhotoMediaID *uuid.UUID `json:"photo_media_id"`
	Position     int        `json:"position" validate:"gte=0"`
}

func (r teamMemberRequest) input() app.TeamMemberInput {
	return app.TeamMemberInput{
		Name:         r.Name,
		Role:         r.Role,
		Bio:          r.Bio,
		PhotoMediaID: r.PhotoMediaID,
		Position:     r.Position,
	}
}

func (h *Handler) handleListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.cms.ListTeamMembers(r.Context(), LangFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "team fetched", members)
}

func (h *Handler) handleCreateTeamMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req teamMemberRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	member, err := h.cms.CreateTeamMember(r.Context(), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "team member created", member)
}

func (h *Handler) handleUpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid team member id"))
		return
	}

	var req teamMemberRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	member, err := h.cms.UpdateTeamMember(r.Context(), id, req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "team member updated", member)
}

func (h *Handler) handleDeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid team member id"))
		return
	}

	if err := h.cms.DeleteTeamMember(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "team member deleted", nil)
}

type aboutUsRequest struct {
	Title    any              `json:"title" validate:"required"`
	Sections []map[string]any `json:"sections"`
}

func (h *Handler) handleGetAboutUs(w http.ResponseWriter, r *http.Request) {
	page, err := h.cms.GetAboutUs(r.Context(), LangFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "about us fetched", page)
}

func (h *Handler) handleSaveAboutUs(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req aboutUsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	page, err := h.cms.SaveAboutUs(r.Context(), app.AboutUsInput{
		Title:    req.Title,
		Sections: req.Sections,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "about us saved", page)
}

type settingsRequest struct {
	StoreName        string   `json:"store_name" validate:"required,max=200"`
	EnabledLanguages []string `json:"enabled_languages" validate:"required,min=1,dive,len=2"`
	DefaultLanguage  string   `json:"default_language" validate:"required,len=2"`
	SupportEmail     string   `json:"support_email" validate:"omitempty,email"`
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.cms.GetSettings(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "settings fetched", settings)
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req settingsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	settings, err := h.cms.UpdateSettings(r.Context(), app.SettingsInput{
		StoreName:        req.StoreName,
		EnabledLanguages: req.EnabledLanguages,
		DefaultLanguage:  req.DefaultLanguage,
		SupportEmail:     req.SupportEmail,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "settings updated", settings)
}
