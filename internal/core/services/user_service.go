package services

import (
	"context"
	"fmt"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/pagination"

	"github.com/rs/zerolog"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
	log      zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log.With().Str("component", "users").Logger(),
	}
}

// UpdateRoleInput represents a role change made by an admin
type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) (*pagination.Response, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, storeError(err)
	}

	items := make([]*models.UserResponse, len(users))
	for i, user := range users {
		items[i] = user.ToResponse()
	}
	return pagination.NewResponse(items, params, total), nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound)
	}
	return user.ToResponse(), nil
}

// UpdateRole changes the role of another user
func (s *UserService) UpdateRole(ctx context.Context, id uint, admin *domain.Principal, role string) (*models.UserResponse, error) {
	if !admin.RequiresRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	// Prevent admin from changing own role
	if id == admin.ID {
		return nil, domain.ErrCannotChangeOwnRole
	}
	if !domain.Role(role).Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound)
	}

	s.log.Info().Uint("user_id", id).Uint("admin_id", admin.ID).Str("role", role).Msg("role changed")
	return s.GetUserByID(ctx, id)
}

// DeleteUser soft deletes another user. Tokens of the deleted user stop
// resolving on the next request; the email stays reserved.
func (s *UserService) DeleteUser(ctx context.Context, id uint, admin *domain.Principal) error {
	if !admin.RequiresRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if id == admin.ID {
		return domain.ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, domain.ErrUserNotFound)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return storeError(err)
	}

	s.log.Info().Uint("user_id", id).Uint("admin_id", admin.ID).Msg("user deleted")
	return nil
}
