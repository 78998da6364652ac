/**
 * @description
 * This file contains the business logic for accounts: registration, login,
 * profile management and member referrals.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/auth"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
	"github.com/viteezy/commerce-backend/pkg/rabbitmq"
)

// UserRepository defines the database operations the user service needs.
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	CreateReferral(ctx context.Context, parentID, childID uuid.UUID) (*domain.MemberReferral, error)
	ListReferralChildren(ctx context.Context, parentID uuid.UUID) ([]domain.UserView, error)
}

// UserService provides account business logic.
type UserService struct {
	repo      UserRepository
	tokens    *auth.TokenService
	publisher rabbitmq.Publisher
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo UserRepository, tokens *auth.TokenService, publisher rabbitmq.Publisher, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, publisher: publisher, logger: logger}
}

// RegisterInput carries a registration request. ReferrerID optionally records
// a one-level member referral to the account that invited this one.
type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	Language   string
	ReferrerID *uuid.UUID
}

// Register creates an account, optionally records the referral and returns
// the new user with a signed token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	language := in.Language
	if language == "" {
		language = "English"
	}

	user, err := s.repo.CreateUser(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		Role:         domain.RoleCustomer,
		Language:     language,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperr.Conflict("an account with this email already exists")
		}
		return nil, "", err
	}

	if in.ReferrerID != nil {
		// Referral attribution is best effort; a bad referrer must not
		// fail the registration.
		if _, err := s.repo.CreateReferral(ctx, *in.ReferrerID, user.ID); err != nil {
			s.logger.Warn("failed to record member referral", "parent_id", *in.ReferrerID, "child_id", user.ID, "error", err)
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	if err := s.publisher.Publish(ctx, domain.EventsExchange, domain.RoutingKeyUserRegistered, domain.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
	}); err != nil {
		s.logger.Warn("failed to publish user registered event", "user_id", user.ID, "error", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperr.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile returns the account for the given id.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the fields a user manages themselves, including the
// stored language preference used for response localization.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, language string) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if language != "" {
		user.Language = language
	}
	return s.repo.UpdateUser(ctx, user)
}

// ListUsers returns a page of accounts (admin).
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserView, int, error) {
	users, total, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views := make([]domain.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return views, total, nil
}

// ListReferrals returns the accounts directly referred by the given user.
// Only one level is traversed.
func (s *UserService) ListReferrals(ctx context.Context, parentID uuid.UUID) ([]domain.UserView, error) {
	return s.repo.ListReferralChildren(ctx, parentID)
}

// AttachReferral records a parent -> child attribution after the fact, for
// example when a referral code is redeemed post-registration.
func (s *UserService) AttachReferral(ctx context.Context, parentID, childID uuid.UUID) (*domain.MemberReferral, error) {
	if parentID == childID {
		return nil, apperr.BadRequest("an account cannot refer itself")
	}
	ref, err := s.repo.CreateReferral(ctx, parentID, childID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("this account has already been referred")
		}
		return nil, err
	}
	return ref, nil
}
