/**
 * @description
 * This file defines the Handler aggregate that holds every application
 * service the HTTP layer fronts, plus small helpers shared by the resource
 * handler files.
 */
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/domain"
)

// Handler holds the application services that handlers interact with.
type Handler struct {
	users         *app.UserService
	catalog       *app.CatalogService
	orders        *app.OrderService
	coupons       *app.CouponService
	subscriptions *app.SubscriptionService
	memberships   *app.MembershipService
	reviews       *app.ReviewService
	account       *app.AccountService
	cms           *app.CMSService
	media         *app.MediaService
	dashboard     *app.DashboardService
	logger        *slog.Logger
}

// NewHandler creates a new Handler over the application services.
func NewHandler(
	users *app.UserService,
	catalog *app.CatalogService,
	orders *app.OrderService,
	coupons *app.CouponService,
	subscriptions *app.SubscriptionService,
	memberships *app.MembershipService,
	reviews *app.ReviewService,
	account *app.AccountService,
	cms *app.CMSService,
	media *app.MediaService,
	dashboard *app.DashboardService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		users:         users,
		catalog:       catalog,
		orders:        orders,
		coupons:       coupons,
		subscriptions: subscriptions,
		memberships:   memberships,
		reviews:       reviews,
		account:       account,
		cms:           cms,
		media:         media,
		dashboard:     dashboard,
		logger:        logger,
	}
}

// mustUser returns the authenticated user's id or writes a 401.
func (h *Handler) mustUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "authentication required", Error: http.StatusText(http.StatusUnauthorized)})
	}
	return userID, ok
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

func isAdmin(r *http.Request) bool {
	return RoleFromContext(r.Context()) == domain.RoleAdmin
}
