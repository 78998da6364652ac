/**
 * @description
 * This file contains the business logic for the product catalog and the
 * ingredient reference data. Admin writes run incoming copy through the
 * auto-translation expansion so every enabled language has a value; public
 * reads localize for the resolved request language.
 */
package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
)

// CatalogRepository defines the database operations the catalog service needs.
type CatalogRepository interface {
	SettingsRepository
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	SoftDeleteProduct(ctx context.Context, id, by uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit, offset int, activeOnly bool) ([]domain.Product, int, error)
	GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Ingredient, error)
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, limit, offset int) ([]domain.Ingredient, int, error)
	SoftDeleteIngredient(ctx context.Context, id, by uuid.UUID) error
}

// CatalogService provides catalog business logic.
type CatalogService struct {
	repo       CatalogRepository
	translator i18n.Translator
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo CatalogRepository, translator i18n.Translator) *CatalogService {
	return &CatalogService{repo: repo, translator: translator}
}

// ProductInput carries admin product writes. Name and Description accept
// either a plain string or an already-shaped language mapping.
type ProductInput struct {
	Slug        string
	Name        any
	Description any
	PriceCents  int64
	Currency    string
	IsActive    bool
	Ingredients []uuid.UUID
}

// CreateProduct creates a catalog item with expanded multi-language copy.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput, by uuid.UUID) (*domain.Product, error) {
	if in.PriceCents < 0 {
		return nil, apperr.Unprocessable("price must not be negative")
	}

	enabled, _ := languages(ctx, s.repo)
	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}

	product, err := s.repo.CreateProduct(ctx, &domain.Product{
		Slug:        in.Slug,
		Name:        i18n.Expand(ctx, in.Name, enabled, s.translator),
		Description: i18n.Expand(ctx, in.Description, enabled, s.translator),
		PriceCents:  in.PriceCents,
		Currency:    currency,
		IsActive:    in.IsActive,
		Ingredients: in.Ingredients,
		Audit:       domain.Audit{CreatedBy: &by},
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("a product with this slug already exists")
		}
		return nil, err
	}
	return product, nil
}

// UpdateProduct overwrites a catalog item with expanded multi-language copy.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput, by uuid.UUID) (*domain.Product, error) {
	if in.PriceCents < 0 {
		return nil, apperr.Unprocessable("price must not be negative")
	}

	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	enabled, _ := languages(ctx, s.repo)
	existing.Slug = in.Slug
	existing.Name = i18n.Expand(ctx, in.Name, enabled, s.translator)
	existing.Description = i18n.Expand(ctx, in.Description, enabled, s.translator)
	existing.PriceCents = in.PriceCents
	if in.Currency != "" {
		existing.Currency = in.Currency
	}
	existing.IsActive = in.IsActive
	existing.Ingredients = in.Ingredients
	existing.UpdatedBy = &by

	updated, err := s.repo.UpdateProduct(ctx, existing)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("a product with this slug already exists")
		}
		return nil, err
	}
	return updated, nil
}

// DeleteProduct soft-deletes a catalog item.
func (s *CatalogService) DeleteProduct(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteProduct(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("product not found")
	}
	return err
}

// GetProduct returns a localized product with its localized ingredients.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID, lang string) (*domain.ProductView, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return s.localizeProduct(ctx, product, lang)
}

// GetProductBySlug returns a localized product looked up by slug.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug, lang string) (*domain.ProductView, error) {
	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return s.localizeProduct(ctx, product, lang)
}

func (s *CatalogService) localizeProduct(ctx context.Context, product *domain.Product, lang string) (*domain.ProductView, error) {
	_, def := languages(ctx, s.repo)
	view := product.Localize(lang, def)

	ingredients, err := s.repo.GetIngredientsByIDs(ctx, product.Ingredients)
	if err != nil {
		return nil, err
	}
	for i := range ingredients {
		view.Ingredients = append(view.Ingredients, ingredients[i].Localize(lang, def))
	}
	return &view, nil
}

// ListProducts returns a localized page of catalog items.
func (s *CatalogService) ListProducts(ctx context.Context, lang string, limit, offset int, activeOnly bool) ([]domain.ProductView, int, error) {
	products, total, err := s.repo.ListProducts(ctx, limit, offset, activeOnly)
	if err != nil {
		return nil, 0, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.ProductView, 0, len(products))
	for i := range products {
		views = append(views, products[i].Localize(lang, def))
	}
	return views, total, nil
}

// IngredientInput carries admin ingredient writes.
type IngredientInput struct {
	Code        string
	Name        any
	Description any
}

// CreateIngredient creates reference data with expanded multi-language copy.
func (s *CatalogService) CreateIngredient(ctx context.Context, in IngredientInput, by uuid.UUID) (*domain.Ingredient, error) {
	enabled, _ := languages(ctx, s.repo)

	ing, err := s.repo.CreateIngredient(ctx, &domain.Ingredient{
		Code:        in.Code,
		Name:        i18n.Expand(ctx, in.Name, enabled, s.translator),
		Description: i18n.Expand(ctx, in.Description, enabled, s.translator),
		Audit:       domain.Audit{CreatedBy: &by},
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("an ingredient with this code already exists")
		}
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns a localized page of ingredients.
func (s *CatalogService) ListIngredients(ctx context.Context, lang string, limit, offset int) ([]domain.IngredientView, int, error) {
	ingredients, total, err := s.repo.ListIngredients(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.IngredientView, 0, len(ingredients))
	for i := range ingredients {
		views = append(views, ingredients[i].Localize(lang, def))
	}
	return views, total, nil
}

// DeleteIngredient soft-deletes an ingredient.
func (s *CatalogService) DeleteIngredient(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteIngredient(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("ingredient not found")
	}
	return err
}
