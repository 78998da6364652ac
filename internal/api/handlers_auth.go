/**
 * @description
 * This file contains the HTTP handlers for registration, login, the caller's
 * own profile and referral attribution.
 */
package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/app"
)

type registerRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Name       string     `json:"name" validate:"required,max=200"`
	Password   string     `json:"password" validate:"required,min=8"`
	Language   string     `json:"language" validate:"omitempty,max=30"`
	ReferrerID *uuid.UUID `json:"referrer_id"`
}

type authResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, token, err := h.users.Register(r.Context(), app.RegisterInput{
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		Language:   req.Language,
		ReferrerID: req.ReferrerID,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "account created", authResponse{User: user.View(), Token: token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "login successful", authResponse{User: user.View(), Token: token})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "profile fetched", user.View())
}

type updateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=200"`
	Language string `json:"language" validate:"omitempty,max=30"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.Language)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "profile updated", user.View())
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	users, total, err := h.users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondPage(w, http.StatusOK, "users fetched", users, NewPagination(page, limit, total))
}

func (h *Handler) handleListReferrals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	referrals, err := h.users.ListReferrals(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "referrals fetched", referrals)
}

type attachReferralRequest struct {
	ChildID uuid.UUID `json:"child_id" validate:"required"`
}

func (h *Handler) handleAttachReferral(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.mustUser(w, r)
	if !ok {
		return
	}

	var req attachReferralRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	ref, err := h.users.AttachReferral(r.Context(), userID, req.ChildID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "referral recorded", ref)
}
