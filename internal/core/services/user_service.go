package services

import (
	"context"
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/password"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents admin create user input
type CreateUserInput struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=191"`
	Password string      `json:"password" validate:"required,min=8,max=32"`
	Type     domain.Role `json:"type" validate:"omitempty,oneof=ADMIN BORROWER"`
}

// UpdateUserInput represents a partial user update; nil fields are left untouched
type UpdateUserInput struct {
	Name     *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string      `json:"email" validate:"omitempty,email,max=191"`
	Password *string      `json:"password" validate:"omitempty,min=8,max=32"`
	Type     *domain.Role `json:"type" validate:"omitempty,oneof=ADMIN BORROWER"`
}

// Create creates a user; the unique email index decides duplicates
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Type
	if role == "" {
		role = domain.RoleBorrower
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Type:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Printf("✅ User created: %s (%s)", user.Email, user.Type)
	return user, nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, q *pagination.Query) (*pagination.Page[models.User], error) {
	return s.userRepo.List(ctx, q)
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrUserNotFound)
	}
	return user, nil
}

// Update merges input into the user with the given id
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Type != nil {
		user.Type = *input.Type
	}
	if input.Password != nil {
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// Delete soft deletes a user
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, domain.ErrUserNotFound)
	}

	log.Printf("🗑️ User deleted: %d", id)
	return nil
}
