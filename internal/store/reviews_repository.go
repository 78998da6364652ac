/**
 * @description
 * Database operations for product reviews, wishlists and saved cards.
 */
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const reviewColumns = `id, product_id, user_id, rating, title, body, body_html, status, created_at, updated_at`

// CreateReview inserts a pending review.
func (r *Repository) CreateReview(ctx context.Context, rev *domain.Review) (*domain.Review, error) {
	query := `
        INSERT INTO reviews (product_id, user_id, rating, title, body, body_html, status, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $2, $2)
        RETURNING ` + reviewColumns
	row := r.db.QueryRow(ctx, query,
		rev.ProductID, rev.UserID, rev.Rating, rev.Title, rev.Body, rev.BodyHTML, rev.Status)

	created, err := scanReview(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateReviewStatus moves a review through moderation.
func (r *Repository) UpdateReviewStatus(ctx context.Context, id uuid.UUID, status string, by uuid.UUID) (*domain.Review, error) {
	query := `
        UPDATE reviews
        SET status = $2, updated_at = NOW(), updated_by = $3
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + reviewColumns
	rev, err := scanReview(r.db.QueryRow(ctx, query, id, status, by))
	if err != nil {
		return nil, mapError(err)
	}
	return rev, nil
}

// ListProductReviews returns a page of approved reviews for a product.
func (r *Repository) ListProductReviews(ctx context.Context, productID uuid.UUID, limit, offset int) ([]domain.Review, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM reviews
        WHERE product_id = $1 AND status = $2 AND is_deleted = FALSE`,
		productID, domain.ReviewApproved).Scan(&total)
	if err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+reviewColumns+`
        FROM reviews
        WHERE product_id = $1 AND status = $2 AND is_deleted = FALSE
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4`, productID, domain.ReviewApproved, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *rev)
	}
	return reviews, total, rows.Err()
}

// ListReviewsByStatus returns a page of reviews in a moderation state.
func (r *Repository) ListReviewsByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM reviews WHERE status = $1 AND is_deleted = FALSE`, status).Scan(&total)
	if err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+reviewColumns+`
        FROM reviews
        WHERE status = $1 AND is_deleted = FALSE
        ORDER BY created_at
        LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *rev)
	}
	return reviews, total, rows.Err()
}

// AddWishlistItem saves a product to a user's wishlist. Adding an item twice
// is a no-op.
func (r *Repository) AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO wishlist_items (user_id, product_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, product_id) DO NOTHING`, userID, productID)
	return mapError(err)
}

// RemoveWishlistItem deletes a product from a user's wishlist.
func (r *Repository) RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWishlistProductIDs returns the product ids on a user's wishlist, most
// recently added first.
func (r *Repository) ListWishlistProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
        SELECT product_id FROM wishlist_items
        WHERE user_id = $1
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const cardColumns = `id, user_id, brand, last4, expiry_month, expiry_year, gateway_token, is_default, created_at, updated_at`

// CreateSavedCard stores a tokenized payment method. When the card is marked
// default, any previous default for the user is cleared in the same
// transaction.
func (r *Repository) CreateSavedCard(ctx context.Context, c *domain.SavedCard) (*domain.SavedCard, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback(ctx)

	if c.IsDefault {
		if _, err := tx.Exec(ctx, `
            UPDATE saved_cards SET is_default = FALSE, updated_at = NOW()
            WHERE user_id = $1 AND is_deleted = FALSE`, c.UserID); err != nil {
			return nil, mapError(err)
		}
	}

	var created domain.SavedCard
	query := `
        INSERT INTO saved_cards (user_id, brand, last4, expiry_month, expiry_year, gateway_token, is_default)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + cardColumns
	err = tx.QueryRow(ctx, query,
		c.UserID, c.Brand, c.Last4, c.ExpiryMonth, c.ExpiryYear, c.GatewayToken, c.IsDefault).Scan(
		&created.ID, &created.UserID, &created.Brand, &created.Last4, &created.ExpiryMonth,
		&created.ExpiryYear, &created.GatewayToken, &created.IsDefault, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

// ListSavedCards returns a user's saved cards, default first.
func (r *Repository) ListSavedCards(ctx context.Context, userID uuid.UUID) ([]domain.SavedCard, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+cardColumns+`
        FROM saved_cards
        WHERE user_id = $1 AND is_deleted = FALSE
        ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var cards []domain.SavedCard
	for rows.Next() {
		var c domain.SavedCard
		err := rows.Scan(&c.ID, &c.UserID, &c.Brand, &c.Last4, &c.ExpiryMonth, &c.ExpiryYear,
			&c.GatewayToken, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// SoftDeleteSavedCard marks a card deleted, scoped to its owner.
func (r *Repository) SoftDeleteSavedCard(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE saved_cards
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rev domain.Review
	err := row.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Title, &rev.Body,
		&rev.BodyHTML, &rev.Status, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}
