package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/pkg/pagination"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q *pagination.Query) (*pagination.Page[models.User], error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsAdmin(ctx context.Context) (bool, error)
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	List(ctx context.Context, q *pagination.Query) (*pagination.Page[models.Book], error)
	// AdjustQuantity applies delta to available_quantity in one statement.
	// It reports false when no row changed.
	AdjustQuantity(ctx context.Context, id uint, delta int) (bool, error)
}

// BorrowingRepository defines borrowing process repository interface
type BorrowingRepository interface {
	Create(ctx context.Context, bp *models.BorrowingProcess) error
	GetByID(ctx context.Context, id uint) (*models.BorrowingProcess, error)
	Update(ctx context.Context, bp *models.BorrowingProcess) error
	HardDelete(ctx context.Context, id uint) error
	List(ctx context.Context, q *pagination.Query) (*pagination.Page[models.BorrowingProcess], error)
	ListBorrowedBetween(ctx context.Context, from, to time.Time) ([]*models.BorrowingProcess, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*models.BorrowingProcess, error)
}
