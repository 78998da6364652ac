/**
 * @description
 * This file sets up the HTTP router using the go-chi/chi router. It defines
 * the public storefront routes, the authenticated customer routes and the
 * admin routes, and applies middleware for logging, CORS, authentication and
 * language resolution.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/auth"
)

// NewRouter creates a new Chi router and registers every route.
func NewRouter(h *Handler, tokens *auth.TokenService, settings app.SettingsRepository, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"https://*", "http://*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	lang := LanguageMiddleware(settings)

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront routes.
		r.Group(func(r chi.Router) {
			r.Use(lang)

			r.Post("/auth/register", h.handleRegister)
			r.Post("/auth/login", h.handleLogin)

			r.Get("/products", h.handleListProducts)
			r.Get("/products/{id}", h.handleGetProduct)
			r.Get("/products/{id}/reviews", h.handleListProductReviews)
			r.Get("/ingredients", h.handleListIngredients)
			r.Post("/coupons/preview", h.handlePreviewCoupon)
			r.Get("/membership-plans", h.handleListPlans)

			r.Get("/blogs", h.handleListBlogs)
			r.Get("/blogs/{slug}", h.handleGetBlog)
			r.Get("/faqs", h.handleListFAQs)
			r.Get("/banners", h.handleActiveBanners)
			r.Get("/team", h.handleListTeamMembers)
			r.Get("/about-us", h.handleGetAboutUs)

			r.Get("/media/{id}", h.handleGetMedia)
			r.Get("/media/{id}/meta", h.handleGetMediaMeta)
		})

		// Authenticated customer routes.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))
			r.Use(lang)

			r.Get("/me", h.handleGetProfile)
			r.Put("/me", h.handleUpdateProfile)
			r.Get("/me/referrals", h.handleListReferrals)
			r.Post("/me/referrals", h.handleAttachReferral)

			r.Post("/orders", h.handlePlaceOrder)
			r.Get("/orders", h.handleListOrders)
			r.Get("/orders/{id}", h.handleGetOrder)
			r.Post("/orders/{id}/cancel", h.handleCancelOrder)

			r.Post("/subscriptions", h.handleCreateSubscription)
			r.Get("/subscriptions", h.handleListMySubscriptions)
			r.Post("/subscriptions/{id}/cancel", h.subscriptionAction("cancel"))
			r.Post("/subscriptions/{id}/pause", h.subscriptionAction("pause"))
			r.Post("/subscriptions/{id}/resume", h.subscriptionAction("resume"))
			r.Put("/subscriptions/{id}/auto-renew", h.handleSetAutoRenew)

			r.Post("/memberships", h.handleJoinMembership)
			r.Get("/memberships/me", h.handleGetMyMembership)

			r.Get("/wishlist", h.handleGetWishlist)
			r.Put("/wishlist/{productID}", h.handleAddWishlistItem)
			r.Delete("/wishlist/{productID}", h.handleRemoveWishlistItem)

			r.Post("/cards", h.handleSaveCard)
			r.Get("/cards", h.handleListCards)
			r.Delete("/cards/{id}", h.handleDeleteCard)

			r.Post("/reviews", h.handleSubmitReview)

			r.Post("/media", h.handleUploadMedia)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))
			r.Use(RequireAdmin)
			r.Use(lang)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/dashboard", h.handleDashboard)
				r.Get("/users", h.handleListUsers)

				r.Post("/products", h.handleCreateProduct)
				r.Put("/products/{id}", h.handleUpdateProduct)
				r.Delete("/products/{id}", h.handleDeleteProduct)
				r.Post("/ingredients", h.handleCreateIngredient)
				r.Delete("/ingredients/{id}", h.handleDeleteIngredient)

				r.Put("/orders/{id}/status", h.handleUpdateOrderStatus)

				r.Post("/coupons", h.handleCreateCoupon)
				r.Get("/coupons", h.handleListCoupons)
				r.Put("/coupons/{code}", h.handleUpdateCoupon)
				r.Delete("/coupons/{id}", h.handleDeleteCoupon)

				r.Put("/discount-rules", h.handleUpsertDiscountRule)

				r.Post("/membership-plans", h.handleCreatePlan)
				r.Put("/membership-plans/{id}", h.handleUpdatePlan)
				r.Delete("/membership-plans/{id}", h.handleDeletePlan)

				r.Get("/reviews", h.handleListReviewsByStatus)
				r.Put("/reviews/{id}", h.handleModerateReview)

				r.Post("/blogs", h.handleCreateBlog)
				r.Put("/blogs/{id}", h.handleUpdateBlog)
				r.Delete("/blogs/{id}", h.handleDeleteBlog)

				r.Post("/faqs", h.handleCreateFAQ)
				r.Put("/faqs/{id}", h.handleUpdateFAQ)
				r.Delete("/faqs/{id}", h.handleDeleteFAQ)

				r.Get("/banners", h.handleListBanners)
				r.Post("/banners", h.handleCreateBanner)
				r.Put("/banners/{id}", h.handleUpdateBanner)
				r.Delete("/banners/{id}", h.handleDeleteBanner)

				r.Post("/team", h.handleCreateTeamMember)
				r.Put("/team/{id}", h.handleUpdateTeamMember)
				r.Delete("/team/{id}", h.handleDeleteTeamMember)

				r.Put("/about-us", h.handleSaveAboutUs)

				r.Get("/settings", h.handleGetSettings)
				r.Put("/settings", h.handleUpdateSettings)
			})
		})
	})

	return r
}
