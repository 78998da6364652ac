package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
)

type orderRepoStub struct {
	products      map[uuid.UUID]*domain.Product
	coupon        *domain.Coupon
	created       *domain.Order
	order         *domain.Order
	statusUpdated []string
	incremented   []string
}

func (s *orderRepoStub) CreateOrder(_ context.Context, o *domain.Order) (*domain.Order, error) {
	o.ID = uuid.New()
	s.created = o
	return o, nil
}

func (s *orderRepoStub) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, store.ErrNotFound
	}
	return s.order, nil
}

func (s *orderRepoStub) ListOrders(_ context.Context, _ *uuid.UUID, _, _ int) ([]domain.Order, int, error) {
	return nil, 0, nil
}

func (s *orderRepoStub) UpdateOrderStatus(_ context.Context, id uuid.UUID, from, to string) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id || s.order.Status != from {
		return nil, store.ErrNotFound
	}
	s.order.Status = to
	s.statusUpdated = append(s.statusUpdated, to)
	return s.order, nil
}

func (s *orderRepoStub) GetProductsByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *orderRepoStub) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	if s.coupon == nil || s.coupon.Code != code {
		return nil, store.ErrNotFound
	}
	return s.coupon, nil
}

func (s *orderRepoStub) IncrementCouponUse(_ context.Context, code string) error {
	s.incremented = append(s.incremented, code)
	return nil
}

type publisherStub struct {
	published []string
}

func (p *publisherStub) Publish(_ context.Context, _, routingKey string, _ any) error {
	p.published = append(p.published, routingKey)
	return nil
}

func (p *publisherStub) Close() {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func productFixture(priceCents int64, active bool) *domain.Product {
	return &domain.Product{
		ID:         uuid.New(),
		Slug:       "daily-blend",
		Name:       i18n.Text{"en": "Daily Blend"},
		PriceCents: priceCents,
		Currency:   "EUR",
		IsActive:   active,
	}
}

func TestPlaceOrderPricesItemsAndAppliesCoupon(t *testing.T) {
	product := productFixture(2500, true)
	repo := &orderRepoStub{
		products: map[uuid.UUID]*domain.Product{product.ID: product},
		coupon:   &domain.Coupon{Code: "WELCOME10", Type: domain.CouponTypePercent, Percent: 10, IsActive: true},
	}
	pub := &publisherStub{}
	svc := NewOrderService(repo, pub, testLogger())

	order, err := svc.PlaceOrder(context.Background(), uuid.New(), []OrderItemInput{
		{ProductID: product.ID, Quantity: 2},
	}, "WELCOME10")
	if err != nil {
		t.Fatalf("expected order to be placed, got error: %v", err)
	}

	if order.SubtotalCents != 5000 {
		t.Fatalf("expected subtotal=5000, got %d", order.SubtotalCents)
	}
	if order.DiscountCents != 500 {
		t.Fatalf("expected discount=500, got %d", order.DiscountCents)
	}
	if order.TotalCents != 4500 {
		t.Fatalf("expected total=4500, got %d", order.TotalCents)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("expected status=pending, got %q", order.Status)
	}
	if len(repo.incremented) != 1 || repo.incremented[0] != "WELCOME10" {
		t.Fatalf("expected coupon use to be incremented once, got %v", repo.incremented)
	}
	if len(pub.published) != 1 || pub.published[0] != domain.RoutingKeyOrderCreated {
		t.Fatalf("expected order.created event, got %v", pub.published)
	}
}

func TestPlaceOrderClampsFixedDiscountToSubtotal(t *testing.T) {
	product := productFixture(1000, true)
	repo := &orderRepoStub{
		products: map[uuid.UUID]*domain.Product{product.ID: product},
		coupon:   &domain.Coupon{Code: "BIG", Type: domain.CouponTypeFixed, AmountCents: 99999, IsActive: true},
	}
	svc := NewOrderService(repo, &publisherStub{}, testLogger())

	order, err := svc.PlaceOrder(context.Background(), uuid.New(), []OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "BIG")
	if err != nil {
		t.Fatalf("expected order to be placed, got error: %v", err)
	}
	if order.DiscountCents != 1000 {
		t.Fatalf("expected discount clamped to subtotal 1000, got %d", order.DiscountCents)
	}
	if order.TotalCents != 0 {
		t.Fatalf("expected total=0 after clamping, got %d", order.TotalCents)
	}
}

func TestPlaceOrderRejectsInactiveProduct(t *testing.T) {
	product := productFixture(1000, false)
	repo := &orderRepoStub{products: map[uuid.UUID]*domain.Product{product.ID: product}}
	svc := NewOrderService(repo, &publisherStub{}, testLogger())

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), []OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "")
	assertStatus(t, err, 422)
}

func TestPlaceOrderRejectsEmptyAndNonPositiveItems(t *testing.T) {
	svc := NewOrderService(&orderRepoStub{}, &publisherStub{}, testLogger())

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), nil, "")
	assertStatus(t, err, 400)

	_, err = svc.PlaceOrder(context.Background(), uuid.New(), []OrderItemInput{
		{ProductID: uuid.New(), Quantity: 0},
	}, "")
	assertStatus(t, err, 422)
}

func TestPlaceOrderRejectsExhaustedCoupon(t *testing.T) {
	product := productFixture(1000, true)
	repo := &orderRepoStub{
		products: map[uuid.UUID]*domain.Product{product.ID: product},
		coupon:   &domain.Coupon{Code: "USEDUP", Type: domain.CouponTypePercent, Percent: 10, IsActive: true, MaxUses: 5, UsedCount: 5},
	}
	svc := NewOrderService(repo, &publisherStub{}, testLogger())

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), []OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	}, "USEDUP")
	assertStatus(t, err, 422)
}

func TestGetOrderHidesOtherUsersOrders(t *testing.T) {
	owner := uuid.New()
	order := &domain.Order{ID: uuid.New(), UserID: owner, Status: domain.OrderStatusPending}
	repo := &orderRepoStub{order: order}
	svc := NewOrderService(repo, &publisherStub{}, testLogger())

	_, err := svc.GetOrder(context.Background(), order.ID, uuid.New(), false)
	assertStatus(t, err, 404)

	got, err := svc.GetOrder(context.Background(), order.ID, uuid.New(), true)
	if err != nil {
		t.Fatalf("expected admin to read any order, got error: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %s, got %s", order.ID, got.ID)
	}
}

func TestCancelOrderOnlyWhenPending(t *testing.T) {
	owner := uuid.New()
	order := &domain.Order{ID: uuid.New(), UserID: owner, Status: domain.OrderStatusShipped}
	repo := &orderRepoStub{order: order}
	pub := &publisherStub{}
	svc := NewOrderService(repo, pub, testLogger())

	_, err := svc.CancelOrder(context.Background(), order.ID, owner, false)
	assertStatus(t, err, 409)

	order.Status = domain.OrderStatusPending
	cancelled, err := svc.CancelOrder(context.Background(), order.ID, owner, false)
	if err != nil {
		t.Fatalf("expected pending order to cancel, got error: %v", err)
	}
	if cancelled.Status != domain.OrderStatusCancelled {
		t.Fatalf("expected status=cancelled, got %q", cancelled.Status)
	}
	if len(pub.published) != 1 || pub.published[0] != domain.RoutingKeyOrderCancelled {
		t.Fatalf("expected order.cancelled event, got %v", pub.published)
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected application error, got %v", err)
	}
	if appErr.Status != status {
		t.Fatalf("expected status %d, got %d (%s)", status, appErr.Status, appErr.Message)
	}
}
