package app

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
)

type catalogRepoStub struct {
	settings    *domain.GeneralSettings
	created     *domain.Product
	product     *domain.Product
	ingredients map[uuid.UUID]*domain.Ingredient
}

func (s *catalogRepoStub) GetSettings(_ context.Context) (*domain.GeneralSettings, error) {
	if s.settings == nil {
		return nil, store.ErrNotFound
	}
	return s.settings, nil
}

func (s *catalogRepoStub) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	p.ID = uuid.New()
	s.created = p
	return p, nil
}

func (s *catalogRepoStub) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return p, nil
}

func (s *catalogRepoStub) SoftDeleteProduct(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (s *catalogRepoStub) GetProductByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, store.ErrNotFound
	}
	return s.product, nil
}

func (s *catalogRepoStub) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	if s.product == nil || s.product.Slug != slug {
		return nil, store.ErrNotFound
	}
	return s.product, nil
}

func (s *catalogRepoStub) ListProducts(_ context.Context, _, _ int, _ bool) ([]domain.Product, int, error) {
	if s.product == nil {
		return nil, 0, nil
	}
	return []domain.Product{*s.product}, 1, nil
}

func (s *catalogRepoStub) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	for _, id := range ids {
		if ing, ok := s.ingredients[id]; ok {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (s *catalogRepoStub) CreateIngredient(_ context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	ing.ID = uuid.New()
	return ing, nil
}

func (s *catalogRepoStub) ListIngredients(_ context.Context, _, _ int) ([]domain.Ingredient, int, error) {
	return nil, 0, nil
}

func (s *catalogRepoStub) SoftDeleteIngredient(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

type translatorStub struct{}

func (translatorStub) Translate(_ context.Context, text, _, target string) (string, error) {
	return text + " (" + target + ")", nil
}

func dutchSettings() *domain.GeneralSettings {
	return &domain.GeneralSettings{
		EnabledLanguages: []string{"en", "nl"},
		DefaultLanguage:  "en",
	}
}

func TestCreateProductExpandsCopyAcrossEnabledLanguages(t *testing.T) {
	repo := &catalogRepoStub{settings: dutchSettings()}
	svc := NewCatalogService(repo, translatorStub{})

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Slug:       "daily-blend",
		Name:       "Daily Blend",
		PriceCents: 2500,
		IsActive:   true,
	}, uuid.New())
	if err != nil {
		t.Fatalf("expected product to be created, got error: %v", err)
	}

	if got := product.Name["en"]; got != "Daily Blend" {
		t.Fatalf("expected english name kept verbatim, got %q", got)
	}
	if got := product.Name["nl"]; got != "Daily Blend (nl)" {
		t.Fatalf("expected dutch name auto-translated, got %q", got)
	}
	if product.Currency != "EUR" {
		t.Fatalf("expected default currency EUR, got %q", product.Currency)
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc := NewCatalogService(&catalogRepoStub{settings: dutchSettings()}, translatorStub{})

	_, err := svc.CreateProduct(context.Background(), ProductInput{Slug: "x", Name: "X", PriceCents: -1}, uuid.New())
	assertStatus(t, err, 422)
}

func TestGetProductLocalizesWithFallback(t *testing.T) {
	ingredient := &domain.Ingredient{
		ID:   uuid.New(),
		Code: "magnesium",
		Name: i18n.Text{"en": "Magnesium", "nl": "Magnesium (nl)"},
	}
	repo := &catalogRepoStub{
		settings: dutchSettings(),
		product: &domain.Product{
			ID:          uuid.New(),
			Slug:        "daily-blend",
			Name:        i18n.Text{"en": "Daily Blend", "nl": "Dagelijkse Mix"},
			Description: i18n.Text{"en": "An english-only description"},
			Ingredients: []uuid.UUID{ingredient.ID},
		},
		ingredients: map[uuid.UUID]*domain.Ingredient{ingredient.ID: ingredient},
	}
	svc := NewCatalogService(repo, translatorStub{})

	view, err := svc.GetProduct(context.Background(), repo.product.ID, "nl")
	if err != nil {
		t.Fatalf("expected product to resolve, got error: %v", err)
	}

	if view.Name != "Dagelijkse Mix" {
		t.Fatalf("expected dutch name, got %q", view.Name)
	}
	// Missing dutch copy falls back to the default language.
	if view.Description != "An english-only description" {
		t.Fatalf("expected fallback description, got %q", view.Description)
	}
	if len(view.Ingredients) != 1 || view.Ingredients[0].Name != "Magnesium (nl)" {
		t.Fatalf("expected localized ingredient join, got %+v", view.Ingredients)
	}
}

func TestGetProductUnknownIDIsNotFound(t *testing.T) {
	svc := NewCatalogService(&catalogRepoStub{settings: dutchSettings()}, translatorStub{})

	_, err := svc.GetProduct(context.Background(), uuid.New(), "en")
	assertStatus(t, err, 404)
}
