/**
 * @description
 * This file contains the business logic for placing and managing orders.
 * Checkout snapshots product prices, applies an optional coupon with the
 * discount clamped to the subtotal, and publishes an order event.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
	"github.com/viteezy/commerce-backend/pkg/rabbitmq"
)

// OrderRepository defines the database operations the order service needs.
type OrderRepository interface {
	CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]domain.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to string) (*domain.Order, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	IncrementCouponUse(ctx context.Context, code string) error
}

// OrderService provides order business logic.
type OrderService struct {
	repo      OrderRepository
	publisher rabbitmq.Publisher
	logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo OrderRepository, publisher rabbitmq.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, logger: logger}
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrder prices the requested items against the current catalog, applies
// the coupon if given and stores the order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, items []OrderItemInput, couponCode string) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperr.BadRequest("order must contain at least one item")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperr.Unprocessable("item quantity must be positive")
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var subtotal int64
	lines := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			return nil, apperr.Unprocessable("one or more products are unavailable")
		}
		line := domain.OrderItem{
			ProductID:      product.ID,
			ProductName:    i18n.Resolve(product.Name, i18n.DefaultLanguage, i18n.DefaultLanguage),
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
		}
		subtotal += line.LineTotal()
		lines = append(lines, line)
	}

	var discount int64
	var appliedCode *string
	if couponCode != "" {
		coupon, err := s.repo.GetCouponByCode(ctx, couponCode)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.Unprocessable("coupon code is not valid")
			}
			return nil, err
		}
		if !coupon.Usable(time.Now()) {
			return nil, apperr.Unprocessable("coupon code is not valid")
		}
		discount = coupon.DiscountFor(subtotal)
		appliedCode = &coupon.Code
	}

	order, err := s.repo.CreateOrder(ctx, &domain.Order{
		UserID:        userID,
		Status:        domain.OrderStatusPending,
		Items:         lines,
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    subtotal - discount,
		CouponCode:    appliedCode,
		PlacedAt:      time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if appliedCode != nil {
		if err := s.repo.IncrementCouponUse(ctx, *appliedCode); err != nil {
			s.logger.Warn("failed to increment coupon use", "code", *appliedCode, "error", err)
		}
	}

	s.publishOrderEvent(ctx, domain.RoutingKeyOrderCreated, order)
	return order, nil
}

// GetOrder returns one order. Customers can only read their own.
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, apperr.NotFound("order not found")
	}
	return order, nil
}

// ListOrders returns a page of orders: all of them for admins, otherwise the
// caller's own.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, isAdmin bool, limit, offset int) ([]domain.Order, int, error) {
	var filter *uuid.UUID
	if !isAdmin {
		filter = &userID
	}
	return s.repo.ListOrders(ctx, filter, limit, offset)
}

// CancelOrder cancels a pending order. Customers can only cancel their own.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, orderID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, apperr.Conflict("only pending orders can be cancelled")
	}

	cancelled, err := s.repo.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Conflict("order state changed, please retry")
		}
		return nil, err
	}

	s.publishOrderEvent(ctx, domain.RoutingKeyOrderCancelled, cancelled)
	return cancelled, nil
}

// UpdateStatus transitions an order between fulfilment states (admin).
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to string) (*domain.Order, error) {
	order, err := s.repo.UpdateOrderStatus(ctx, orderID, from, to)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Conflict("order is not in the expected state")
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, routingKey string, order *domain.Order) {
	err := s.publisher.Publish(ctx, domain.EventsExchange, routingKey, domain.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
		Status:     order.Status,
		Timestamp:  time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to publish order event", "order_id", order.ID, "routing_key", routingKey, "error", err)
	}
}
