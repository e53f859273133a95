package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/jwt"
	"learnhub/internal/pkg/password"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *jwt.Manager
	log      zerolog.Logger
	hashCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *jwt.Manager,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With().Str("component", "auth").Logger(),
		hashCost: password.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost used for new passwords
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

// Authenticate verifies a bearer token and loads its subject.
//
// Signature and expiry are checked before any I/O. The subject is then read
// from the store on every call so that deleted accounts and role changes
// take effect immediately. No role check happens here.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subject %d no longer exists", domain.ErrUnauthenticated, userID)
		}
		return nil, storeError(err)
	}

	return user.ToPrincipal(), nil
}

// Register creates a student account and signs it in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	// 1. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 2. Hash password
	if !password.ValidatePassword(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, password.MinLength)
	}
	hashedPassword, err := password.HashWithCost(input.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	// 3. Create user
	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashedPassword,
		Role:     string(domain.RoleStudent),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, storeError(err)
	}

	s.log.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user registered")

	return s.issue(user)
}

// Login checks email and password and mints an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrInvalidCredentials)
	}

	if !password.Verify(input.Password, user.Password) {
		s.log.Info().Uint("user_id", user.ID).Msg("login rejected: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user logged in")

	return s.issue(user)
}

// TokenTTL returns the lifetime of issued access tokens
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
