/**
 * @description
 * This file contains the HTTP handlers for checkout and order management,
 * plus the coupon admin and preview endpoints.
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

type placeOrderRequest struct {
	Items []struct {
		ProductID uuid.UUID `json:"product_id" validate:"required"`
		Quantity  int       `json:"quantity" validate:"required,gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
	CouponCode string `json:"coupon_code" validate:"omitempty,max=50"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	items := make([]app.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, app.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.PlaceOrder(r.Context(), userID, items, req.CouponCode)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "order placed", order)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid order id"))
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id, userID, isAdmin(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "order fetched", order)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	page, limit, offset := pageParams(r)

	orders, total, err := h.orders.ListOrders(r.Context(), userID, isAdmin(r), limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "orders fetched", orders, NewPagination(page, limit, total))
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid order id"))
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), id, userID, isAdmin(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "order cancelled", order)
}

type orderStatusRequest struct {
	From string `json:"from" validate:"required,oneof=pending paid shipped delivered cancelled"`
	To   string `json:"to" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid order id"))
		return
	}

	var req orderStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.From, req.To)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "order status updated", order)
}

type couponRequest struct {
	Code        string     `json:"code" validate:"required,max=50"`
	Type        string     `json:"type" validate:"required,oneof=percent fixed"`
	Percent     int        `json:"percent" validate:"gte=0,lte=100"`
	AmountCents int64      `json:"amount_cents" validate:"gte=0"`
	MaxUses     int        `json:"max_uses" validate:"gte=0"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until"`
	IsActive    bool       `json:"is_active"`
}

func (r couponRequest) input() app.CouponInput {
	return app.CouponInput{
		Code:        r.Code,
		Type:        r.Type,
		Percent:     r.Percent,
		AmountCents: r.AmountCents,
		MaxUses:     r.MaxUses,
		ValidFrom:   r.ValidFrom,
		ValidUntil:  r.ValidUntil,
		IsActive:    r.IsActive,
	}
}

func (h *Handler) handleCreateCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req couponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	coupon, err := h.coupons.Create(r.Context(), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "coupon created", coupon)
}

func (h *Handler) handleUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req couponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	coupon, err := h.coupons.Update(r.Context(), chi.URLParam(r, "code"), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "coupon updated", coupon)
}

func (h *Handler) handleListCoupons(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	coupons, total, err := h.coupons.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "coupons fetched", coupons, NewPagination(page, limit, total))
}

func (h *Handler) handleDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid coupon id"))
		return
	}

	if err := h.coupons.Delete(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "coupon deleted", nil)
}

type couponPreviewRequest struct {
	Code          string `json:"code" validate:"required,max=50"`
	SubtotalCents int64  `json:"subtotal_cents" validate:"gte=0"`
}

func (h *Handler) handlePreviewCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponPreviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	discount, err := h.coupons.Preview(r.Context(), req.Code, req.SubtotalCents)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "coupon valid", map[string]int64{
		"discount_cents": discount,
		"total_cents":    req.SubtotalCents - discount,
	})
}
