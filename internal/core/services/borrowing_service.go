package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"
)

// BorrowingService runs the checkout and return workflow
type BorrowingService struct {
	borrowingRepo repositories.BorrowingRepository
	users         UserDirectory
	books         BookCatalog
	now           func() time.Time
}

// NewBorrowingService creates a new borrowing process service
func NewBorrowingService(
	borrowingRepo repositories.BorrowingRepository,
	users UserDirectory,
	books BookCatalog,
) *BorrowingService {
	return &BorrowingService{
		borrowingRepo: borrowingRepo,
		users:         users,
		books:         books,
		now:           time.Now,
	}
}

// CheckoutInput represents a new loan
type CheckoutInput struct {
	UserID  uint   `json:"user_id" validate:"required"`
	BookID  uint   `json:"book_id" validate:"required"`
	DueDate string `json:"due_date" validate:"required"`
}

// UpdateBorrowingInput represents a partial loan update
type UpdateBorrowingInput struct {
	UserID     *uint   `json:"user_id" validate:"omitempty,gt=0"`
	BookID     *uint   `json:"book_id" validate:"omitempty,gt=0"`
	DueDate    *string `json:"due_date"`
	ReturnedAt *string `json:"returned_at"`
	IsReturned *bool   `json:"isReturned"`
}

// Export is a rendered CSV report
type Export struct {
	Filename string
	Data     []byte
	Rows     int
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 timestamps
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(domain.DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// Checkout records a loan and takes one copy off the shelf when one is available
func (s *BorrowingService) Checkout(ctx context.Context, input *CheckoutInput) (*models.BorrowingProcess, error) {
	dueDate, err := ParseDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	// 1. Borrower and book must exist
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	book, err := s.books.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	// 2. Take a copy; with no stock left the loan is still recorded
	if book.AvailableQuantity > 0 {
		taken, err := s.books.AdjustQuantity(ctx, book.ID, -1)
		if err != nil {
			return nil, err
		}
		if taken {
			book.AvailableQuantity--
		}
	}

	// 3. Record the loan
	bp := &models.BorrowingProcess{
		BorrowerID: user.ID,
		BookID:     book.ID,
		BorrowedAt: s.now(),
		DueDate:    dueDate,
	}
	if err := s.borrowingRepo.Create(ctx, bp); err != nil {
		return nil, err
	}

	bp.Borrower = user
	bp.Book = book

	log.Printf("📖 Book checked out: %q by %s (loan #%d, stock %d)", book.Title, user.Email, bp.ID, book.AvailableQuantity)
	return bp, nil
}

// Return marks a loan returned and puts the copy back on the shelf
func (s *BorrowingService) Return(ctx context.Context, id uint) (*models.BorrowingProcess, error) {
	bp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	bp.ReturnedAt = &now
	bp.IsReturned = true

	if _, err := s.books.AdjustQuantity(ctx, bp.BookID, 1); err != nil {
		return nil, err
	}
	if bp.Book != nil {
		bp.Book.AvailableQuantity++
	}

	if err := s.borrowingRepo.Update(ctx, bp); err != nil {
		return nil, err
	}

	log.Printf("📗 Book returned: loan #%d", bp.ID)
	return bp, nil
}

// List returns a page of loans with borrower and book loaded
func (s *BorrowingService) List(ctx context.Context, q *pagination.Query) (*pagination.Page[models.BorrowingProcess], error) {
	return s.borrowingRepo.List(ctx, q)
}

// GetByID gets a loan by ID
func (s *BorrowingService) GetByID(ctx context.Context, id uint) (*models.BorrowingProcess, error) {
	bp, err := s.borrowingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrBorrowingNotFound)
	}
	return bp, nil
}

// Update merges input into a loan; stock counters are not touched
func (s *BorrowingService) Update(ctx context.Context, id uint, input *UpdateBorrowingInput) (*models.BorrowingProcess, error) {
	bp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		user, err := s.users.GetByID(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
		bp.BorrowerID = user.ID
		bp.Borrower = user
	}
	if input.BookID != nil {
		book, err := s.books.GetByID(ctx, *input.BookID)
		if err != nil {
			return nil, err
		}
		bp.BookID = book.ID
		bp.Book = book
	}
	if input.DueDate != nil {
		due, err := ParseDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		bp.DueDate = due
	}
	if input.ReturnedAt != nil {
		returned, err := ParseDate(*input.ReturnedAt)
		if err != nil {
			return nil, err
		}
		bp.ReturnedAt = &returned
	}
	if input.IsReturned != nil {
		bp.IsReturned = *input.IsReturned
	}

	if err := s.borrowingRepo.Update(ctx, bp); err != nil {
		return nil, err
	}
	return bp, nil
}

// Remove permanently deletes a loan
func (s *BorrowingService) Remove(ctx context.Context, id uint) error {
	if err := s.borrowingRepo.HardDelete(ctx, id); err != nil {
		return mapNotFound(err, domain.ErrBorrowingNotFound)
	}

	log.Printf("🗑️ Borrowing process removed: %d", id)
	return nil
}

// ListOverdue lists unreturned loans whose due date has passed
func (s *BorrowingService) ListOverdue(ctx context.Context) ([]*models.BorrowingProcess, error) {
	return s.borrowingRepo.ListOverdue(ctx, s.now())
}

var exportHeader = []string{
	"ID",
	"Borrower Name",
	"Borrower Email",
	"Book Title",
	"Book Author",
	"Book ISBN",
	"Borrowed At",
	"Due Date",
	"Returned At",
	"Returned Status",
}

// ExportMonthCSV renders every loan borrowed in the current calendar month
func (s *BorrowingService) ExportMonthCSV(ctx context.Context) (*Export, error) {
	now := s.now()
	from, to := monthRange(now)

	list, err := s.borrowingRepo.ListBorrowedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, bp := range list {
		if err := w.Write(exportRow(bp, now)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	log.Printf("📤 Exported %d borrowing processes for %s", len(list), now.Format("2006-01"))

	return &Export{
		Filename: exportFilename(now),
		Data:     buf.Bytes(),
		Rows:     len(list),
	}, nil
}

// monthRange returns the first and last second of now's calendar month
func monthRange(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	to := time.Date(y, m+1, 0, 23, 59, 59, 0, now.Location())
	return from, to
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("borrowing-processes-%d-%02d.csv", now.Year(), int(now.Month()))
}

func exportRow(bp *models.BorrowingProcess, now time.Time) []string {
	var borrowerName, borrowerEmail, title, author, isbn string
	if bp.Borrower != nil {
		borrowerName, borrowerEmail = bp.Borrower.Name, bp.Borrower.Email
	}
	if bp.Book != nil {
		title, author, isbn = bp.Book.Title, bp.Book.Author, bp.Book.ISBN
	}

	returnedAt := "Not Returned"
	if bp.ReturnedAt != nil {
		returnedAt = bp.ReturnedAt.Format(domain.DateLayout)
	}

	return []string{
		strconv.FormatUint(uint64(bp.ID), 10),
		orNA(borrowerName),
		orNA(borrowerEmail),
		orNA(title),
		orNA(author),
		orNA(isbn),
		bp.BorrowedAt.Format(domain.DateLayout),
		bp.DueDate.Format(domain.DateLayout),
		returnedAt,
		string(bp.Status(now)),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
