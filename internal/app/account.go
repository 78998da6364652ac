/**
 * @description
 * This file contains the business logic for the personal account surface:
 * the wishlist and tokenized saved cards.
 */
package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
)

// AccountRepository defines the database operations the account service
// needs.
type AccountRepository interface {
	SettingsRepository
	AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error
	ListWishlistProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	CreateSavedCard(ctx context.Context, c *domain.SavedCard) (*domain.SavedCard, error)
	ListSavedCards(ctx context.Context, userID uuid.UUID) ([]domain.SavedCard, error)
	SoftDeleteSavedCard(ctx context.Context, id, userID uuid.UUID) error
}

// AccountService provides wishlist and saved card business logic.
type AccountService struct {
	repo AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// AddToWishlist saves a product to the user's wishlist. Re-adding an item is
// a no-op.
func (s *AccountService) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		return err
	}
	return s.repo.AddWishlistItem(ctx, userID, productID)
}

// RemoveFromWishlist removes a product from the user's wishlist. Removing an
// absent item is a no-op.
func (s *AccountService) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.RemoveWishlistItem(ctx, userID, productID)
}

// Wishlist returns the user's saved products localized for the resolved
// language. Products deleted since saving are silently dropped.
func (s *AccountService) Wishlist(ctx context.Context, userID uuid.UUID, lang string) ([]domain.ProductView, error) {
	ids, err := s.repo.ListWishlistProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.ProductView{}, nil
	}

	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.ProductView, 0, len(products))
	for i := range products {
		views = append(views, products[i].Localize(lang, def))
	}
	return views, nil
}

// CardInput carries a tokenized card registration from the payment gateway
// callback.
type CardInput struct {
	Brand        string
	Last4        string
	ExpiryMonth  int
	ExpiryYear   int
	GatewayToken string
	IsDefault    bool
}

// SaveCard stores a tokenized card. Marking a card default clears the flag on
// the user's other cards.
func (s *AccountService) SaveCard(ctx context.Context, userID uuid.UUID, in CardInput) (*domain.SavedCard, error) {
	if in.GatewayToken == "" {
		return nil, apperr.Unprocessable("gateway token is required")
	}
	if in.ExpiryMonth < 1 || in.ExpiryMonth > 12 {
		return nil, apperr.Unprocessable("expiry month must be between 1 and 12")
	}

	return s.repo.CreateSavedCard(ctx, &domain.SavedCard{
		UserID:       userID,
		Brand:        in.Brand,
		Last4:        in.Last4,
		ExpiryMonth:  in.ExpiryMonth,
		ExpiryYear:   in.ExpiryYear,
		GatewayToken: in.GatewayToken,
		IsDefault:    in.IsDefault,
	})
}

// ListCards returns the user's saved cards.
func (s *AccountService) ListCards(ctx context.Context, userID uuid.UUID) ([]domain.SavedCard, error) {
	return s.repo.ListSavedCards(ctx, userID)
}

// DeleteCard soft-deletes one of the user's own cards.
func (s *AccountService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	err := s.repo.SoftDeleteSavedCard(ctx, cardID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("card not found")
	}
	return err
}
