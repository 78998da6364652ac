package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
)

type subscriptionRepoStub struct {
	product *domain.Product
	rule    *domain.DiscountRule
	subs    map[uuid.UUID]*domain.Subscription
	due     []domain.Subscription
	updated []domain.Subscription
}

func (s *subscriptionRepoStub) CreateSubscription(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	sub.ID = uuid.New()
	if s.subs == nil {
		s.subs = map[uuid.UUID]*domain.Subscription{}
	}
	s.subs[sub.ID] = sub
	return sub, nil
}

func (s *subscriptionRepoStub) UpdateSubscription(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	s.updated = append(s.updated, *sub)
	return sub, nil
}

func (s *subscriptionRepoStub) GetSubscriptionByID(_ context.Context, id uuid.UUID) (*domain.Subscription, error) {
	sub, ok := s.subs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return sub, nil
}

func (s *subscriptionRepoStub) ListSubscriptionsByUser(_ context.Context, _ uuid.UUID) ([]domain.Subscription, error) {
	return nil, nil
}

func (s *subscriptionRepoStub) ListDueSubscriptions(_ context.Context, _ time.Time) ([]domain.Subscription, error) {
	return s.due, nil
}

func (s *subscriptionRepoStub) GetDiscountRule(_ context.Context, productID uuid.UUID, cycle string) (*domain.DiscountRule, error) {
	if s.rule == nil || s.rule.ProductID != productID || s.rule.Cycle != cycle {
		return nil, store.ErrNotFound
	}
	return s.rule, nil
}

func (s *subscriptionRepoStub) UpsertDiscountRule(_ context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	s.rule = rule
	return rule, nil
}

func (s *subscriptionRepoStub) GetProductByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, store.ErrNotFound
	}
	return s.product, nil
}

func TestCreateSubscriptionAppliesDiscountRule(t *testing.T) {
	product := &domain.Product{
		ID:         uuid.New(),
		Name:       i18n.Text{"en": "Daily Blend"},
		PriceCents: 2000,
		IsActive:   true,
	}
	repo := &subscriptionRepoStub{
		product: product,
		rule:    &domain.DiscountRule{ProductID: product.ID, Cycle: domain.CycleQuarterly, Percent: 15},
	}
	svc := NewSubscriptionService(repo, &publisherStub{}, testLogger())

	sub, err := svc.Create(context.Background(), uuid.New(), product.ID, domain.CycleQuarterly)
	if err != nil {
		t.Fatalf("expected subscription to be created, got error: %v", err)
	}

	// 3 months at 2000 is 6000, minus 15 percent.
	if sub.PricePerCycleCents != 5100 {
		t.Fatalf("expected price per cycle=5100, got %d", sub.PricePerCycleCents)
	}
	if sub.DiscountPercent != 15 {
		t.Fatalf("expected discount percent=15, got %d", sub.DiscountPercent)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Fatalf("expected status=active, got %q", sub.Status)
	}
	if !sub.AutoRenew {
		t.Fatal("expected auto renew to default on")
	}
}

func TestCreateSubscriptionWithoutRuleChargesFullPrice(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), PriceCents: 2000, IsActive: true}
	repo := &subscriptionRepoStub{product: product}
	svc := NewSubscriptionService(repo, &publisherStub{}, testLogger())

	sub, err := svc.Create(context.Background(), uuid.New(), product.ID, domain.CycleMonthly)
	if err != nil {
		t.Fatalf("expected subscription to be created, got error: %v", err)
	}
	if sub.PricePerCycleCents != 2000 {
		t.Fatalf("expected full price 2000, got %d", sub.PricePerCycleCents)
	}
	if sub.DiscountPercent != 0 {
		t.Fatalf("expected discount percent=0, got %d", sub.DiscountPercent)
	}
}

func TestCreateSubscriptionRejectsUnknownCycle(t *testing.T) {
	svc := NewSubscriptionService(&subscriptionRepoStub{}, &publisherStub{}, testLogger())

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "weekly")
	assertStatus(t, err, 422)
}

func TestRenewDueAdvancesAutoRenewingAndLapsesTheRest(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	renewing := domain.Subscription{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Cycle:            domain.CycleMonthly,
		Status:           domain.SubscriptionActive,
		CurrentPeriodEnd: now.Add(-time.Hour),
		AutoRenew:        true,
	}
	expiring := domain.Subscription{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Cycle:            domain.CycleMonthly,
		Status:           domain.SubscriptionActive,
		CurrentPeriodEnd: now.Add(-time.Hour),
		AutoRenew:        false,
	}
	repo := &subscriptionRepoStub{due: []domain.Subscription{renewing, expiring}}
	pub := &publisherStub{}
	svc := NewSubscriptionService(repo, pub, testLogger())

	renewed, err := svc.RenewDue(context.Background(), now)
	if err != nil {
		t.Fatalf("expected sweep to succeed, got error: %v", err)
	}
	if renewed != 1 {
		t.Fatalf("expected 1 renewal, got %d", renewed)
	}
	if len(repo.updated) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(repo.updated))
	}

	for _, sub := range repo.updated {
		switch sub.ID {
		case renewing.ID:
			wantEnd := now.AddDate(0, 1, 0)
			if !sub.CurrentPeriodEnd.Equal(wantEnd) {
				t.Fatalf("expected period end %v, got %v", wantEnd, sub.CurrentPeriodEnd)
			}
			if sub.Status != domain.SubscriptionActive {
				t.Fatalf("expected renewed subscription to stay active, got %q", sub.Status)
			}
		case expiring.ID:
			if sub.Status != domain.SubscriptionLapsed {
				t.Fatalf("expected non-renewing subscription to lapse, got %q", sub.Status)
			}
		default:
			t.Fatalf("unexpected subscription updated: %s", sub.ID)
		}
	}

	if len(pub.published) != 1 || pub.published[0] != domain.RoutingKeySubscriptionRenewed {
		t.Fatalf("expected one subscription.renewed event, got %v", pub.published)
	}
}

func TestPauseAndResumeGuardStatus(t *testing.T) {
	owner := uuid.New()
	sub := &domain.Subscription{
		ID:     uuid.New(),
		UserID: owner,
		Cycle:  domain.CycleMonthly,
		Status: domain.SubscriptionCancelled,
	}
	repo := &subscriptionRepoStub{subs: map[uuid.UUID]*domain.Subscription{sub.ID: sub}}
	svc := NewSubscriptionService(repo, &publisherStub{}, testLogger())

	_, err := svc.Pause(context.Background(), sub.ID, owner)
	assertStatus(t, err, 409)

	sub.Status = domain.SubscriptionActive
	if _, err := svc.Pause(context.Background(), sub.ID, owner); err != nil {
		t.Fatalf("expected active subscription to pause, got error: %v", err)
	}
	if _, err := svc.Resume(context.Background(), sub.ID, owner); err != nil {
		t.Fatalf("expected paused subscription to resume, got error: %v", err)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Fatalf("expected status=active after resume, got %q", sub.Status)
	}
}

func TestSubscriptionOwnershipHidesOthers(t *testing.T) {
	sub := &domain.Subscription{ID: uuid.New(), UserID: uuid.New(), Status: domain.SubscriptionActive}
	repo := &subscriptionRepoStub{subs: map[uuid.UUID]*domain.Subscription{sub.ID: sub}}
	svc := NewSubscriptionService(repo, &publisherStub{}, testLogger())

	_, err := svc.Cancel(context.Background(), sub.ID, uuid.New())
	assertStatus(t, err, 404)
}
