package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
)

type couponRepoStub struct {
	coupon *domain.Coupon
}

func (s *couponRepoStub) CreateCoupon(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	c.ID = uuid.New()
	s.coupon = c
	return c, nil
}

func (s *couponRepoStub) UpdateCoupon(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	return c, nil
}

func (s *couponRepoStub) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	if s.coupon == nil || s.coupon.Code != code {
		return nil, store.ErrNotFound
	}
	return s.coupon, nil
}

func (s *couponRepoStub) ListCoupons(_ context.Context, _, _ int) ([]domain.Coupon, int, error) {
	return nil, 0, nil
}

func (s *couponRepoStub) SoftDeleteCoupon(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func TestCreateCouponValidatesInput(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := from.Add(-time.Hour)

	tests := []struct {
		name       string
		in         CouponInput
		wantStatus int
	}{
		{
			name:       "percent above 100 rejected",
			in:         CouponInput{Code: "P", Type: domain.CouponTypePercent, Percent: 101},
			wantStatus: 422,
		},
		{
			name:       "negative fixed amount rejected",
			in:         CouponInput{Code: "F", Type: domain.CouponTypeFixed, AmountCents: -1},
			wantStatus: 422,
		},
		{
			name:       "unknown type rejected",
			in:         CouponInput{Code: "X", Type: "bogo"},
			wantStatus: 422,
		},
		{
			name:       "inverted validity window rejected",
			in:         CouponInput{Code: "W", Type: domain.CouponTypePercent, Percent: 10, ValidFrom: &from, ValidUntil: &until},
			wantStatus: 422,
		},
	}

	svc := NewCouponService(&couponRepoStub{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in, uuid.New())
			assertStatus(t, err, tt.wantStatus)
		})
	}
}

func TestPreviewComputesClampedDiscount(t *testing.T) {
	repo := &couponRepoStub{coupon: &domain.Coupon{
		Code:        "FLAT20",
		Type:        domain.CouponTypeFixed,
		AmountCents: 2000,
		IsActive:    true,
	}}
	svc := NewCouponService(repo)

	discount, err := svc.Preview(context.Background(), "FLAT20", 1500)
	if err != nil {
		t.Fatalf("expected preview to succeed, got error: %v", err)
	}
	if discount != 1500 {
		t.Fatalf("expected discount clamped to 1500, got %d", discount)
	}
}

func TestPreviewRejectsInactiveOrUnknownCoupon(t *testing.T) {
	repo := &couponRepoStub{coupon: &domain.Coupon{Code: "OFF", Type: domain.CouponTypePercent, Percent: 10, IsActive: false}}
	svc := NewCouponService(repo)

	_, err := svc.Preview(context.Background(), "OFF", 1000)
	assertStatus(t, err, 422)

	_, err = svc.Preview(context.Background(), "NOPE", 1000)
	assertStatus(t, err, 422)
}
