/**
 * @description
 * Database operations for the product catalog and ingredient reference data.
 * Multi-language name/description columns are JSONB; product ingredient links
 * are a uuid array column.
 */
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const productColumns = `id, slug, name, description, price_cents, currency, is_active, ingredient_ids, created_at, updated_at`

// CreateProduct inserts a catalog item.
func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (slug, name, description, price_cents, currency, is_active, ingredient_ids, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        RETURNING ` + productColumns
	row := r.db.QueryRow(ctx, query,
		p.Slug, p.Name, p.Description, p.PriceCents, p.Currency, p.IsActive, p.Ingredients, p.CreatedBy)

	created, err := scanProduct(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateProduct overwrites the mutable fields of a catalog item.
func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
        UPDATE products
        SET slug = $2, name = $3, description = $4, price_cents = $5, currency = $6,
            is_active = $7, ingredient_ids = $8, updated_at = NOW(), updated_by = $9
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + productColumns
	row := r.db.QueryRow(ctx, query,
		p.ID, p.Slug, p.Name, p.Description, p.PriceCents, p.Currency, p.IsActive, p.Ingredients, p.UpdatedBy)

	updated, err := scanProduct(row)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// SoftDeleteProduct marks a catalog item deleted without removing the row.
func (r *Repository) SoftDeleteProduct(ctx context.Context, id, by uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE products
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW(), updated_by = $2
        WHERE id = $1 AND is_deleted = FALSE`, id, by)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProductByID fetches a catalog item, excluding soft-deleted rows.
func (r *Repository) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND is_deleted = FALSE`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// GetProductBySlug fetches a catalog item by its unique slug.
func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1 AND is_deleted = FALSE`
	p, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// ListProducts returns a page of catalog items and the total count.
// When activeOnly is set, inactive items are excluded as well.
func (r *Repository) ListProducts(ctx context.Context, limit, offset int, activeOnly bool) ([]domain.Product, int, error) {
	filter := `is_deleted = FALSE`
	if activeOnly {
		filter += ` AND is_active = TRUE`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+filter).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+productColumns+`
        FROM products
        WHERE `+filter+`
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

// GetProductsByIDs fetches the given catalog items in one round trip.
func (r *Repository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
        SELECT `+productColumns+`
        FROM products
        WHERE id = ANY($1) AND is_deleted = FALSE`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

const ingredientColumns = `id, code, name, description, created_at, updated_at`

// CreateIngredient inserts an ingredient reference row.
func (r *Repository) CreateIngredient(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	query := `
        INSERT INTO ingredients (code, name, description, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $4)
        RETURNING ` + ingredientColumns
	created, err := scanIngredient(r.db.QueryRow(ctx, query, ing.Code, ing.Name, ing.Description, ing.CreatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpsertIngredientByCode inserts or refreshes an ingredient keyed on its
// unique code. Used by the CSV importer so re-runs are idempotent.
func (r *Repository) UpsertIngredientByCode(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	query := `
        INSERT INTO ingredients (code, name, description)
        VALUES ($1, $2, $3)
        ON CONFLICT (code) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            is_deleted = FALSE,
            deleted_at = NULL,
            updated_at = NOW()
        RETURNING ` + ingredientColumns
	upserted, err := scanIngredient(r.db.QueryRow(ctx, query, ing.Code, ing.Name, ing.Description))
	if err != nil {
		return nil, mapError(err)
	}
	return upserted, nil
}

// ListIngredients returns a page of ingredients and the total count.
func (r *Repository) ListIngredients(ctx context.Context, limit, offset int) ([]domain.Ingredient, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ingredients WHERE is_deleted = FALSE`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+ingredientColumns+`
        FROM ingredients
        WHERE is_deleted = FALSE
        ORDER BY code
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, 0, err
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, total, rows.Err()
}

// GetIngredientsByIDs fetches the given ingredients in one round trip.
func (r *Repository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
        SELECT `+ingredientColumns+`
        FROM ingredients
        WHERE id = ANY($1) AND is_deleted = FALSE`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, rows.Err()
}

// SoftDeleteIngredient marks an ingredient deleted.
func (r *Repository) SoftDeleteIngredient(ctx context.Context, id, by uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE ingredients
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW(), updated_by = $2
        WHERE id = $1 AND is_deleted = FALSE`, id, by)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.PriceCents, &p.Currency,
		&p.IsActive, &p.Ingredients, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanIngredient(row rowScanner) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := row.Scan(&ing.ID, &ing.Code, &ing.Name, &ing.Description, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}
