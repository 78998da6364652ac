/**
 * @description
 * This file contains the business logic for membership plans and joining
 * them.
 */
package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
)

// MembershipRepository defines the database operations the membership service
// needs.
type MembershipRepository interface {
	SettingsRepository
	CreateMembershipPlan(ctx context.Context, p *domain.MembershipPlan) (*domain.MembershipPlan, error)
	UpdateMembershipPlan(ctx context.Context, p *domain.MembershipPlan) (*domain.MembershipPlan, error)
	GetMembershipPlanByID(ctx context.Context, id uuid.UUID) (*domain.MembershipPlan, error)
	ListMembershipPlans(ctx context.Context, activeOnly bool) ([]domain.MembershipPlan, error)
	SoftDeleteMembershipPlan(ctx context.Context, id, by uuid.UUID) error
	CreateMembership(ctx context.Context, m *domain.Membership) (*domain.Membership, error)
	GetActiveMembership(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Membership, error)
}

// MembershipService provides membership business logic.
type MembershipService struct {
	repo       MembershipRepository
	translator i18n.Translator
}

// NewMembershipService creates a new membership service.
func NewMembershipService(repo MembershipRepository, translator i18n.Translator) *MembershipService {
	return &MembershipService{repo: repo, translator: translator}
}

// PlanInput carries admin plan writes.
type PlanInput struct {
	Code           string
	Name           any
	Perks          any
	PriceCents     int64
	DurationMonths int
	IsActive       bool
}

// CreatePlan creates a membership plan with expanded multi-language copy.
func (s *MembershipService) CreatePlan(ctx context.Context, in PlanInput, by uuid.UUID) (*domain.MembershipPlan, error) {
	if in.PriceCents < 0 {
		return nil, apperr.Unprocessable("price must not be negative")
	}
	if in.DurationMonths <= 0 {
		return nil, apperr.Unprocessable("duration must be positive")
	}

	enabled, _ := languages(ctx, s.repo)
	plan, err := s.repo.CreateMembershipPlan(ctx, &domain.MembershipPlan{
		Code:           in.Code,
		Name:           i18n.Expand(ctx, in.Name, enabled, s.translator),
		Perks:          i18n.Expand(ctx, in.Perks, enabled, s.translator),
		PriceCents:     in.PriceCents,
		DurationMonths: in.DurationMonths,
		IsActive:       in.IsActive,
		Audit:          domain.Audit{CreatedBy: &by},
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("a plan with this code already exists")
		}
		return nil, err
	}
	return plan, nil
}

// UpdatePlan overwrites a plan with expanded multi-language copy.
func (s *MembershipService) UpdatePlan(ctx context.Context, id uuid.UUID, in PlanInput, by uuid.UUID) (*domain.MembershipPlan, error) {
	existing, err := s.repo.GetMembershipPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}

	enabled, _ := languages(ctx, s.repo)
	existing.Name = i18n.Expand(ctx, in.Name, enabled, s.translator)
	existing.Perks = i18n.Expand(ctx, in.Perks, enabled, s.translator)
	existing.PriceCents = in.PriceCents
	existing.DurationMonths = in.DurationMonths
	existing.IsActive = in.IsActive
	existing.UpdatedBy = &by

	return s.repo.UpdateMembershipPlan(ctx, existing)
}

// ListPlans returns localized plans; non-admin callers only see active ones.
func (s *MembershipService) ListPlans(ctx context.Context, lang string, activeOnly bool) ([]domain.MembershipPlanView, error) {
	plans, err := s.repo.ListMembershipPlans(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.MembershipPlanView, 0, len(plans))
	for i := range plans {
		views = append(views, plans[i].Localize(lang, def))
	}
	return views, nil
}

// DeletePlan soft-deletes a plan.
func (s *MembershipService) DeletePlan(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteMembershipPlan(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("plan not found")
	}
	return err
}

// Join enrolls the user in a plan for the plan's duration. A user holds at
// most one active membership.
func (s *MembershipService) Join(ctx context.Context, userID, planID uuid.UUID) (*domain.Membership, error) {
	now := time.Now()

	if existing, err := s.repo.GetActiveMembership(ctx, userID, now); err == nil && existing != nil {
		return nil, apperr.Conflict("an active membership already exists")
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	plan, err := s.repo.GetMembershipPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperr.Unprocessable("plan is not open for enrollment")
	}

	return s.repo.CreateMembership(ctx, &domain.Membership{
		UserID:    userID,
		PlanID:    plan.ID,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, plan.DurationMonths, 0),
	})
}

// GetMine returns the caller's active membership, or a not-found error.
func (s *MembershipService) GetMine(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	m, err := s.repo.GetActiveMembership(ctx, userID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("no active membership")
		}
		return nil, err
	}
	return m, nil
}
