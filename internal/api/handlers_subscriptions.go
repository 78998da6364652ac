/**
 * @description
 * This file contains the HTTP handlers for subscriptions, their lifecycle
 * transitions and the admin discount rule endpoint.
 */
package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
)

type createSubscriptionRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Cycle     string    `json:"cycle" validate:"required,oneof=monthly quarterly biannual"`
}

func (h *Handler) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req createSubscriptionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	sub, err := h.subscriptions.Create(r.Context(), userID, req.ProductID, req.Cycle)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "subscription created", sub)
}

func (h *Handler) handleListMySubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	subs, err := h.subscriptions.ListMine(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "subscriptions fetched", subs)
}

// subscriptionAction dispatches the lifecycle endpoints that share the same
// shape: a subscription id in the path and no body.
func (h *Handler) subscriptionAction(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.mustUser(w, r)
		if !ok {
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			respondError(w, h.logger, apperr.BadRequest("invalid subscription id"))
			return
		}

		var sub any
		var message string
		switch action {
		case "cancel":
			sub, err = h.subscriptions.Cancel(r.Context(), id, userID)
			message = "subscription cancelled"
		case "pause":
			sub, err = h.subscriptions.Pause(r.Context(), id, userID)
			message = "subscription paused"
		case "resume":
			sub, err = h.subscriptions.Resume(r.Context(), id, userID)
			message = "subscription resumed"
		}
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		respond(w, http.StatusOK, message, sub)
	}
}

type autoRenewRequest struct {
	AutoRenew bool `json:"auto_renew"`
}

func (h *Handler) handleSetAutoRenew(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid subscription id"))
		return
	}

	var req autoRenewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	sub, err := h.subscriptions.SetAutoRenew(r.Context(), id, userID, req.AutoRenew)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "auto renew updated", sub)
}

type discountRuleRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Cycle     string    `json:"cycle" validate:"required,oneof=monthly quarterly biannual"`
	Percent   int       `json:"percent" validate:"gte=0,lte=100"`
}

func (h *Handler) handleUpsertDiscountRule(w http.ResponseWriter, r *http.Request) {
	var req discountRuleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	rule, err := h.subscriptions.UpsertDiscountRule(r.Context(), req.ProductID, req.Cycle, req.Percent)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "discount rule saved", rule)
}
