/**
 * @description
 * This file contains the admin dashboard aggregation logic: headline counts,
 * revenue and the most recent orders in a single response.
 */
package app

import (
	"context"

	"github.com/viteezy/commerce-backend/internal/domain"
)

// DashboardRepository defines the aggregate queries the dashboard needs.
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountOrders(ctx context.Context) (int, error)
	SumRevenueCents(ctx context.Context) (int64, error)
	CountActiveSubscriptions(ctx context.Context) (int, error)
	CountReferrals(ctx context.Context) (int, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

// DashboardService assembles the admin overview.
type DashboardService struct {
	repo DashboardRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardSummary is the admin overview payload. Revenue excludes cancelled
// orders.
type DashboardSummary struct {
	TotalUsers          int            `json:"total_users"`
	TotalOrders         int            `json:"total_orders"`
	RevenueCents        int64          `json:"revenue_cents"`
	ActiveSubscriptions int            `json:"active_subscriptions"`
	TotalReferrals      int            `json:"total_referrals"`
	RecentOrders        []domain.Order `json:"recent_orders"`
}

// Summary gathers the dashboard aggregates.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.SumRevenueCents(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.CountActiveSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	referrals, err := s.repo.CountReferrals(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentOrders(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalUsers:          users,
		TotalOrders:         orders,
		RevenueCents:        revenue,
		ActiveSubscriptions: subs,
		TotalReferrals:      referrals,
		RecentOrders:        recent,
	}, nil
}
