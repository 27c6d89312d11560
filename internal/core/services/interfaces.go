package services

import (
	"context"
	"errors"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Note: AuthService implementation is in auth_service.go
// Note: UserService implementation is in user_service.go

// BookCatalog defines what the borrowing workflow needs from the book service
type BookCatalog interface {
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	AdjustQuantity(ctx context.Context, id uint, delta int) (bool, error)
}

// UserDirectory defines what the borrowing workflow needs from the user service
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// BorrowingReader defines the read side used by the overdue sweep
type BorrowingReader interface {
	ListOverdue(ctx context.Context) ([]*models.BorrowingProcess, error)
}

// mapNotFound turns gorm.ErrRecordNotFound into the given domain error
func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// isDuplicate reports whether err is a unique index violation
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
