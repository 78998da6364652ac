/**
 * @description
 * Catalog models: products with multi-language name/description and the
 * ingredient reference data they link to. Monetary amounts are integer cents.
 */
package domain

import (
	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/i18n"
)

// Product is a sellable catalog item.
type Product struct {
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Name        i18n.Text   `json:"name"`
	Description i18n.Text   `json:"description"`
	PriceCents  int64       `json:"price_cents"`
	Currency    string      `json:"currency"`
	IsActive    bool        `json:"is_active"`
	Ingredients []uuid.UUID `json:"ingredient_ids"`
	Audit
}

// ProductView is the single-language response shape of a product.
type ProductView struct {
	ID          uuid.UUID        `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	PriceCents  int64            `json:"price_cents"`
	Currency    string           `json:"currency"`
	IsActive    bool             `json:"is_active"`
	Ingredients []IngredientView `json:"ingredients,omitempty"`
}

// Localize collapses the multi-language fields for the resolved language.
func (p *Product) Localize(lang, def string) ProductView {
	return ProductView{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        i18n.Resolve(p.Name, lang, def),
		Description: i18n.Resolve(p.Description, lang, def),
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		IsActive:    p.IsActive,
	}
}

// Ingredient is static reference data, importable from CSV.
type Ingredient struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	Audit
}

// IngredientView is the single-language response shape of an ingredient.
type IngredientView struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Localize collapses the multi-language fields for the resolved language.
func (i *Ingredient) Localize(lang, def string) IngredientView {
	return IngredientView{
		ID:          i.ID,
		Code:        i.Code,
		Name:        i18n.Resolve(i.Name, lang, def),
		Description: i18n.Resolve(i.Description, lang, def),
	}
}
