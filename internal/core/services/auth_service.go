package services

import (
	"context"
	"errors"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo    repositories.UserRepository
	userService *UserService
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	userService *UserService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		userService: userService,
		cfg:         cfg,
	}
}

// SignupInput represents registration input
type SignupInput struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=191"`
	Password string      `json:"password" validate:"required,min=8,max=32"`
	Type     domain.Role `json:"type" validate:"required,oneof=ADMIN BORROWER"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateSelfInput represents the fields a user may change on their own account
type UpdateSelfInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=191"`
	Password *string `json:"password" validate:"omitempty,min=8,max=32"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// Signup registers a new user
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.User, error) {
	// 1. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	// 2. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create user; a concurrent signup trips the unique index
	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Type:     input.Type,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.Type)
	return user, nil
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue token
	token, err := s.IssueToken(user, 0)
	if err != nil {
		return nil, err
	}

	log.Printf("🔐 User logged in: %s", user.Email)

	return &AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// IssueToken signs an access token for user; ttl <= 0 means the session TTL
func (s *AuthService) IssueToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.cfg.JWT.TTL()
	}
	return jwt.GenerateAccessToken(user.ID, string(user.Type), s.cfg.JWT.Secret, ttl)
}

// Me returns the caller's own account
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.userService.GetByID(ctx, userID)
}

// UpdateSelf applies a self-service update to the caller's own account
func (s *AuthService) UpdateSelf(ctx context.Context, userID uint, input *UpdateSelfInput) (*models.User, error) {
	return s.userService.Update(ctx, userID, &UpdateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
}
