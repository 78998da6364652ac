/**
 * @description
 * This file contains custom middleware for the HTTP router: bearer token
 * authentication, admin gating and per-request language resolution.
 */
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/auth"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	userIDKey    contextKey = "userID"
	userRoleKey  contextKey = "userRole"
	tokenLangKey contextKey = "tokenLang"
	langKey      contextKey = "lang"
)

// AuthMiddleware validates the bearer token and injects the caller's id, role
// and preferred language into the request context.
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "authorization header required", Error: http.StatusText(http.StatusUnauthorized)})
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "invalid authorization header format", Error: http.StatusText(http.StatusUnauthorized)})
				return
			}

			userID, claims, err := tokens.Verify(tokenString)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "invalid or expired token", Error: http.StatusText(http.StatusUnauthorized)})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, claims.Role)
			ctx = context.WithValue(ctx, tokenLangKey, claims.Lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role. It
// must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != domain.RoleAdmin {
			writeJSON(w, http.StatusForbidden, Envelope{Success: false, Message: "admin access required", Error: http.StatusText(http.StatusForbidden)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LanguageMiddleware resolves the response language for the request: the
// explicit ?lang parameter wins, then the authenticated user's preference
// from the token, then the configured default.
func LanguageMiddleware(settings app.SettingsRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			enabled, def := []string{i18n.DefaultLanguage}, i18n.DefaultLanguage
			if s, err := settings.GetSettings(r.Context()); err == nil && s != nil && len(s.EnabledLanguages) > 0 {
				enabled = s.EnabledLanguages
				if s.DefaultLanguage != "" {
					def = s.DefaultLanguage
				}
			}

			userPref, _ := r.Context().Value(tokenLangKey).(string)
			lang := i18n.ResolveLang(r.URL.Query().Get("lang"), userPref, enabled, def)

			ctx := context.WithValue(r.Context(), langKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user's id.
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// RoleFromContext returns the authenticated user's role, empty when absent.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// LangFromContext returns the resolved response language.
func LangFromContext(ctx context.Context) string {
	lang, _ := ctx.Value(langKey).(string)
	if lang == "" {
		return i18n.DefaultLanguage
	}
	return lang
}
