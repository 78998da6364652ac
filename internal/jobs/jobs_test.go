package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type renewerStub struct {
	renewed int
	err     error
	called  bool
}

func (s *renewerStub) RenewDue(_ context.Context, _ time.Time) (int, error) {
	s.called = true
	return s.renewed, s.err
}

type maintenanceRepoStub struct {
	couponsExpired int64
	couponsErr     error
	bannersChanged int64
	bannersErr     error
	couponsCalled  bool
	bannersCalled  bool
}

func (s *maintenanceRepoStub) DeactivateExpiredCoupons(_ context.Context, _ time.Time) (int64, error) {
	s.couponsCalled = true
	return s.couponsExpired, s.couponsErr
}

func (s *maintenanceRepoStub) SyncBannerWindows(_ context.Context, _ time.Time) (int64, error) {
	s.bannersCalled = true
	return s.bannersChanged, s.bannersErr
}

func newTestJobs(renewer *renewerStub, repo *maintenanceRepoStub) *Jobs {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJobs(renewer, repo, logger)
}

func TestRenewSubscriptionsRunsSweep(t *testing.T) {
	renewer := &renewerStub{renewed: 3}
	jobs := newTestJobs(renewer, &maintenanceRepoStub{})

	jobs.RenewSubscriptions()

	if !renewer.called {
		t.Fatal("expected renewal sweep to run")
	}
}

func TestRenewSubscriptionsSurvivesSweepFailure(t *testing.T) {
	renewer := &renewerStub{err: errors.New("db down")}
	jobs := newTestJobs(renewer, &maintenanceRepoStub{})

	// The job logs and returns; a failing sweep must not panic.
	jobs.RenewSubscriptions()

	if !renewer.called {
		t.Fatal("expected renewal sweep to run despite the failure")
	}
}

func TestExpireCouponsRunsBulkUpdate(t *testing.T) {
	repo := &maintenanceRepoStub{couponsExpired: 2}
	jobs := newTestJobs(&renewerStub{}, repo)

	jobs.ExpireCoupons()

	if !repo.couponsCalled {
		t.Fatal("expected coupon expiry update to run")
	}
}

func TestSyncBannersRunsBulkUpdate(t *testing.T) {
	repo := &maintenanceRepoStub{bannersChanged: 1}
	jobs := newTestJobs(&renewerStub{}, repo)

	jobs.SyncBanners()

	if !repo.bannersCalled {
		t.Fatal("expected banner window sync to run")
	}
}
