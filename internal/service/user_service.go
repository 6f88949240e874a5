package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const (
	userListCacheKey = "users:list"
	userListCacheTTL = time.Minute
)

// UserService exposes roster operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, actorEmail, targetEmail, role string) (*model.User, error)
	UpdateProfile(ctx context.Context, email, name, password string) (*model.User, error)
	DeleteUser(ctx context.Context, actorEmail, targetEmail string) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, userListCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, userListCacheKey, payload, userListCacheTTL)
	}
	return users, nil
}

// UpdateRole changes the target user's role. A user may not change their own
// role through this path; the dashboard additionally disables the control.
func (s *userService) UpdateRole(ctx context.Context, actorEmail, targetEmail, role string) (*model.User, error) {
	if strings.EqualFold(actorEmail, targetEmail) {
		return nil, apperrors.ErrSelfTarget
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(targetEmail))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, userListCacheKey)
	return user, nil
}

// UpdateProfile rewrites name and/or password of the given account. Empty
// fields are left untouched.
func (s *userService) UpdateProfile(ctx context.Context, email, name, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if name != "" {
		user.Name = name
	}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, userListCacheKey)
	return user, nil
}

// DeleteUser removes the target account. Self-deletion is rejected so an
// admin cannot lock themselves out through the roster.
func (s *userService) DeleteUser(ctx context.Context, actorEmail, targetEmail string) error {
	if strings.EqualFold(actorEmail, targetEmail) {
		return apperrors.ErrSelfTarget
	}

	rows, err := s.repo.DeleteByEmail(ctx, strings.ToLower(targetEmail))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrUserNotFound
	}
	_ = s.cache.Delete(ctx, userListCacheKey)
	return nil
}
