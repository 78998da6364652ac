/**
 * @description
 * This file contains the HTTP handlers for the product catalog and the
 * ingredient reference data.
 */
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/apperr"
)

type productRequest struct {
	Slug        string      `json:"slug" validate:"required,max=200"`
	Name        any         `json:"name" validate:"required"`
	Description any         `json:"description"`
	PriceCents  int64       `json:"price_cents" validate:"gte=0"`
	Currency    string      `json:"currency" validate:"omitempty,len=3"`
	IsActive    bool        `json:"is_active"`
	Ingredients []uuid.UUID `json:"ingredient_ids"`
}

func (r productRequest) input() app.ProductInput {
	return app.ProductInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Currency:    r.Currency,
		IsActive:    r.IsActive,
		Ingredients: r.Ingredients,
	}
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	// Customers only see active products; admins may request everything.
	activeOnly := true
	if isAdmin(r) && queryBool(r, "all") {
		activeOnly = false
	}

	products, total, err := h.catalog.ListProducts(r.Context(), LangFromContext(r.Context()), limit, offset, activeOnly)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "products fetched", products, NewPagination(page, limit, total))
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		// Fall back to slug lookup for storefront URLs.
		view, err := h.catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "id"), LangFromContext(r.Context()))
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		respond(w, http.StatusOK, "product fetched", view)
		return
	}

	view, err := h.catalog.GetProduct(r.Context(), id, LangFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "product fetched", view)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "product created", product)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid product id"))
		return
	}

	var req productRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, req.input(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "product updated", product)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid product id"))
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "product deleted", nil)
}

type ingredientRequest struct {
	Code        string `json:"code" validate:"required,max=100"`
	Name        any    `json:"name" validate:"required"`
	Description any    `json:"description"`
}

func (h *Handler) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	ingredients, total, err := h.catalog.ListIngredients(r.Context(), LangFromContext(r.Context()), limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "ingredients fetched", ingredients, NewPagination(page, limit, total))
}

func (h *Handler) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req ingredientRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	ingredient, err := h.catalog.CreateIngredient(r.Context(), app.IngredientInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "ingredient created", ingredient)
}

func (h *Handler) handleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, apperr.BadRequest("invalid ingredient id"))
		return
	}

	if err := h.catalog.DeleteIngredient(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "ingredient deleted", nil)
}
