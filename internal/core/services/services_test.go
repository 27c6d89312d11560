package services

import (
	"context"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedNow is the clock used by the workflow tests
var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

type fixture struct {
	db        *gorm.DB
	users     *UserService
	books     *BookService
	borrowing *BorrowingService
	auth      *AuthService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	userRepo := repositories.NewUserRepository(db)

	users := NewUserService(userRepo)
	books := NewBookService(repositories.NewBookRepository(db))
	borrowing := NewBorrowingService(repositories.NewBorrowingRepository(db), users, books)
	borrowing.now = func() time.Time { return fixedNow }

	dashboard := NewDashboardService(db)
	dashboard.now = func() time.Time { return fixedNow }

	return &fixture{
		db:        db,
		users:     users,
		books:     books,
		borrowing: borrowing,
		auth:      NewAuthService(userRepo, users, testutil.Config()),
		dashboard: dashboard,
	}
}

func (f *fixture) createUser(t *testing.T, email string, role domain.Role) *models.User {
	t.Helper()

	user, err := f.users.Create(context.Background(), &CreateUserInput{
		Name:     "User " + email,
		Email:    email,
		Password: "password123",
		Type:     role,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) createBook(t *testing.T, isbn string, qty int) *models.Book {
	t.Helper()

	book, err := f.books.Create(context.Background(), &CreateBookInput{
		Title:             "Title " + isbn,
		Author:            "Author " + isbn,
		Description:       "A book",
		ISBN:              ISBN(isbn),
		ShelfLocation:     "A1",
		AvailableQuantity: &qty,
	})
	require.NoError(t, err)
	return book
}

func (f *fixture) stock(t *testing.T, bookID uint) int {
	t.Helper()

	book, err := f.books.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	return book.AvailableQuantity
}
