package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/helper"
	"github.com/tazhibayda/piazza-service/internal/log"
	"github.com/tazhibayda/piazza-service/internal/security"
	"github.com/tazhibayda/piazza-service/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates an account. Email and username must both be unused.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	if _, err := s.store.FindUserByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storageErr("find user by email", err)
	}
	if _, err := s.store.FindUserByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storageErr("find user by username", err)
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock(),
	}
	// the unique indexes still catch a concurrent registration
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, storageErr("create user", err)
	}
	log.WithDD(ctx, s.log).Info("user registered",
		zap.String("user_id", u.ID.Hex()), zap.String("email", helper.Hash8(u.Email)))
	return u, nil
}

// Authenticate checks a login payload and returns the matching user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*domain.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	u, err := s.store.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: email or password is incorrect", domain.ErrAuthRejected)
	}
	if err != nil {
		return nil, storageErr("find user by email", err)
	}
	if !security.CheckPassword(u.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: email or password is incorrect", domain.ErrAuthRejected)
	}
	return u, nil
}

// Identify resolves the user behind an authenticated request.
func (s *Service) Identify(ctx context.Context, uid string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", domain.ErrAuthRejected)
	}
	u, err := s.store.FindUserByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user", domain.ErrAuthRejected)
	}
	return u, storageErr("find user", err)
}

// IssueToken signs an access token for u.
func IssueToken(secret string, ttl time.Duration, u *domain.User) (string, error) {
	return security.MakeAccess(secret, u.ID.Hex(), u.Username, ttl)
}
