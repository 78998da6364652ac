/**
 * @description
 * This file contains the admin business logic for coupons.
 */
package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
)

// CouponRepository defines the database operations the coupon service needs.
type CouponRepository interface {
	CreateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	UpdateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context, limit, offset int) ([]domain.Coupon, int, error)
	SoftDeleteCoupon(ctx context.Context, id, by uuid.UUID) error
}

// CouponService provides coupon business logic.
type CouponService struct {
	repo CouponRepository
}

// NewCouponService creates a new coupon service.
func NewCouponService(repo CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

// CouponInput carries admin coupon writes.
type CouponInput struct {
	Code        string
	Type        string
	Percent     int
	AmountCents int64
	MaxUses     int
	ValidFrom   *time.Time
	ValidUntil  *time.Time
	IsActive    bool
}

func validateCouponInput(in CouponInput) error {
	switch in.Type {
	case domain.CouponTypePercent:
		if in.Percent < 0 || in.Percent > 100 {
			return apperr.Unprocessable("percent must be between 0 and 100")
		}
	case domain.CouponTypeFixed:
		if in.AmountCents < 0 {
			return apperr.Unprocessable("amount must not be negative")
		}
	default:
		return apperr.Unprocessable("coupon type must be percent or fixed")
	}
	if in.ValidFrom != nil && in.ValidUntil != nil && in.ValidUntil.Before(*in.ValidFrom) {
		return apperr.Unprocessable("validity window is inverted")
	}
	return nil
}

// Create stores a new coupon.
func (s *CouponService) Create(ctx context.Context, in CouponInput, by uuid.UUID) (*domain.Coupon, error) {
	if err := validateCouponInput(in); err != nil {
		return nil, err
	}

	coupon, err := s.repo.CreateCoupon(ctx, &domain.Coupon{
		Code:        in.Code,
		Type:        in.Type,
		Percent:     in.Percent,
		AmountCents: in.AmountCents,
		MaxUses:     in.MaxUses,
		ValidFrom:   in.ValidFrom,
		ValidUntil:  in.ValidUntil,
		IsActive:    in.IsActive,
		Audit:       domain.Audit{CreatedBy: &by},
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("a coupon with this code already exists")
		}
		return nil, err
	}
	return coupon, nil
}

// Update overwrites a coupon identified by its code.
func (s *CouponService) Update(ctx context.Context, code string, in CouponInput, by uuid.UUID) (*domain.Coupon, error) {
	if err := validateCouponInput(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("coupon not found")
		}
		return nil, err
	}

	existing.Type = in.Type
	existing.Percent = in.Percent
	existing.AmountCents = in.AmountCents
	existing.MaxUses = in.MaxUses
	existing.ValidFrom = in.ValidFrom
	existing.ValidUntil = in.ValidUntil
	existing.IsActive = in.IsActive
	existing.UpdatedBy = &by

	return s.repo.UpdateCoupon(ctx, existing)
}

// List returns a page of coupons.
func (s *CouponService) List(ctx context.Context, limit, offset int) ([]domain.Coupon, int, error) {
	return s.repo.ListCoupons(ctx, limit, offset)
}

// Delete soft-deletes a coupon.
func (s *CouponService) Delete(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteCoupon(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("coupon not found")
	}
	return err
}

// Preview computes the discount a code would give on a subtotal without
// redeeming it, so the storefront can show the price before checkout.
func (s *CouponService) Preview(ctx context.Context, code string, subtotalCents int64) (int64, error) {
	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, apperr.Unprocessable("coupon code is not valid")
		}
		return 0, err
	}
	if !coupon.Usable(time.Now()) {
		return 0, apperr.Unprocessable("coupon code is not valid")
	}
	return coupon.DiscountFor(subtotalCents), nil
}
