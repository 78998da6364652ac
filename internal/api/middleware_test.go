package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/auth"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
)

type settingsStub struct {
	settings *domain.GeneralSettings
}

func (s settingsStub) GetSettings(_ context.Context) (*domain.GeneralSettings, error) {
	if s.settings == nil {
		return nil, store.ErrNotFound
	}
	return s.settings, nil
}

func TestAuthMiddlewareRejectsMissingOrBadTokens(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not run for rejected requests")
	})
	mw := AuthMiddleware(tokens)(next)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInjectsCallerContext(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	user := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Language: "Dutch"}
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	var gotID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID, _ = UserFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthMiddleware(tokens)(next).ServeHTTP(rec, req)

	if gotID != user.ID {
		t.Fatalf("expected user id %s in context, got %s", user.ID, gotID)
	}
	if gotRole != domain.RoleAdmin {
		t.Fatalf("expected admin role in context, got %q", gotRole)
	}
}

func TestRequireAdminGatesByRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), userRoleKey, domain.RoleCustomer))
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), userRoleKey, domain.RoleAdmin))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestLanguageMiddlewareResolutionOrder(t *testing.T) {
	settings := settingsStub{settings: &domain.GeneralSettings{
		EnabledLanguages: []string{"en", "nl", "de"},
		DefaultLanguage:  "en",
	}}

	tests := []struct {
		name      string
		query     string
		tokenLang string
		want      string
	}{
		{
			name:      "explicit parameter wins over token preference",
			query:     "?lang=de",
			tokenLang: "nl",
			want:      "de",
		},
		{
			name:      "token preference wins over default",
			query:     "",
			tokenLang: "nl",
			want:      "nl",
		},
		{
			name:  "default when nothing is set",
			query: "",
			want:  "en",
		},
		{
			name:  "disabled language falls back to default",
			query: "?lang=fr",
			want:  "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = LangFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil)
			if tt.tokenLang != "" {
				req = req.WithContext(context.WithValue(req.Context(), tokenLangKey, tt.tokenLang))
			}
			LanguageMiddleware(settings)(next).ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Fatalf("expected lang %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLanguageMiddlewareDegradesWithoutSettings(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = LangFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	LanguageMiddleware(settingsStub{})(next).ServeHTTP(httptest.NewRecorder(), req)

	if got != "en" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}
