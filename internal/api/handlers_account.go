/**
 * @description
 * This file contains the HTTP handlers for memberships, the wishlist, saved
 * cards and product reviews.
 */
package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/apperr"
)

type planRequest struct {
	Code           string `json:"code" validate:"required,max=100"`
	Name           any    `json:"name" validate:"required"`
	Perks          any    `json:"perks"`
	PriceCents     int64  `json:"price_cents" validate:"gte=0"`
	DurationMonths int    `json:"duration_months" validate:"required,gt=0"`
	IsActive       bool   `json:"is_active"`
}

func (r planRequest) input() app.PlanInput {
	return app.PlanInput{
		Code:           r.Code,
		Name:           r.Name,
		Perks:          r.Perks,
		PriceCents:     r.PriceCents,
		DurationMonths: r.DurationMonths,
		IsActive:       r.IsActive,
	}
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	activeOnly := !isAdmin(r) || !queryBool(r, "all")

	plans, err := h.memberships.ListPlans(r.Context(), LangFromContext(r.Context()), activeOnly)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "plans fetched", plans)
}

func (h *Handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req planRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	plan, err := h.memberships.CreatePlan(r.Context(), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "plan created", plan)
}

func (h *Handler) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid plan id"))
		return
	}

	var req planRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	plan, err := h.memberships.UpdatePlan(r.Context(), id, req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "plan updated", plan)
}

func (h *Handler) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid plan id"))
		return
	}

	if err := h.memberships.DeletePlan(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "plan deleted", nil)
}

type joinMembershipRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
}

func (h *Handler) handleJoinMembership(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req joinMembershipRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	membership, err := h.memberships.Join(r.Context(), userID, req.PlanID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "membership started", membership)
}

func (h *Handler) handleGetMyMembership(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	membership, err := h.memberships.GetMine(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "membership fetched", membership)
}

func (h *Handler) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	items, err := h.account.Wishlist(r.Context(), userID, LangFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "wishlist fetched", items)
}

func (h *Handler) handleAddWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	productID, err := pathUUID(r, "productID")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid product id"))
		return
	}

	if err := h.account.AddToWishlist(r.Context(), userID, productID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "added to wishlist", nil)
}

func (h *Handler) handleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	productID, err := pathUUID(r, "productID")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid product id"))
		return
	}

	if err := h.account.RemoveFromWishlist(r.Context(), userID, productID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "removed from wishlist", nil)
}

type saveCardRequest struct {
	Brand        string `json:"brand" validate:"required,max=30"`
	Last4        string `json:"last4" validate:"required,len=4,numeric"`
	ExpiryMonth  int    `json:"expiry_month" validate:"required,gte=1,lte=12"`
	ExpiryYear   int    `json:"expiry_year" validate:"required,gte=2000"`
	GatewayToken string `json:"gateway_token" validate:"required"`
	IsDefault    bool   `json:"is_default"`
}

func (h *Handler) handleSaveCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req saveCardRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	card, err := h.account.SaveCard(r.Context(), userID, app.CardInput{
		Brand:        req.Brand,
		Last4:        req.Last4,
		ExpiryMonth:  req.ExpiryMonth,
		ExpiryYear:   req.ExpiryYear,
		GatewayToken: req.GatewayToken,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "card saved", card)
}

func (h *Handler) handleListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	cards, err := h.account.ListCards(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "cards fetched", cards)
}

func (h *Handler) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid card id"))
		return
	}

	if err := h.account.DeleteCard(r.Context(), userID, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "card deleted", nil)
}

type reviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Title     string    `json:"title" validate:"omitempty,max=200"`
	Body      string    `json:"body" validate:"required,max=10000"`
}

func (h *Handler) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	review, err := h.reviews.Submit(r.Context(), userID, app.ReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "review submitted", review)
}

func (h *Handler) handleListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid product id"))
		return
	}
	page, limit, offset := pageParams(r)

	reviews, total, err := h.reviews.ListForProduct(r.Context(), productID, limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "reviews fetched", reviews, NewPagination(page, limit, total))
}

func (h *Handler) handleListReviewsByStatus(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	reviews, total, err := h.reviews.ListByStatus(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "reviews fetched", reviews, NewPagination(page, limit, total))
}

type moderateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (h *Handler) handleModerateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid review id"))
		return
	}

	var req moderateReviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	review, err := h.reviews.Moderate(r.Context(), id, req.Status, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "review moderated", review)
}
