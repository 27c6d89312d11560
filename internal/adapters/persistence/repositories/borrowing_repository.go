package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// BorrowingPagination is the listing config for GET /borrowing-process
var BorrowingPagination = pagination.Config{
	Columns: map[string]pagination.Column{
		"id":            {Expr: "borrowings.id", Kind: pagination.Int},
		"isReturned":    {Expr: "borrowings.is_returned", Kind: pagination.Bool},
		"borrowed_at":   {Expr: "borrowings.borrowed_at", Kind: pagination.Date},
		"due_date":      {Expr: "borrowings.due_date", Kind: pagination.Date},
		"returned_at":   {Expr: "borrowings.returned_at", Kind: pagination.Date},
		"created_at":    {Expr: "borrowings.created_at", Kind: pagination.Date},
		"borrower.name": {Expr: "borrower.name"},
		"book.title":    {Expr: "book.title"},
		"book.author":   {Expr: "book.author"},
	},
	Sortable:      []string{"id", "borrowed_at", "due_date", "returned_at", "created_at"},
	DefaultSortBy: []pagination.Sort{{Column: "created_at", Direction: "DESC"}},
	Searchable:    []string{"borrower.name", "book.title", "book.author"},
	Filterable: map[string][]pagination.Operator{
		"isReturned":  {pagination.OpEq},
		"borrowed_at": {pagination.OpGte, pagination.OpLte},
		"due_date":    {pagination.OpGte, pagination.OpLte, pagination.OpLt},
		"returned_at": {pagination.OpGte, pagination.OpLte},
	},
	Joins: []string{
		"LEFT JOIN users borrower ON borrower.id = borrowings.borrower_id",
		"LEFT JOIN books book ON book.id = borrowings.book_id",
	},
	Preloads: []string{"Borrower", "Book"},
}

// borrowingRepository implements BorrowingRepository interface
type borrowingRepository struct {
	baseRepository[models.BorrowingProcess]
}

// NewBorrowingRepository creates a new borrowing process repository
func NewBorrowingRepository(db *gorm.DB) BorrowingRepository {
	return &borrowingRepository{baseRepository[models.BorrowingProcess]{db: db, listCfg: BorrowingPagination}}
}

// withRelations preloads borrower and book; soft-deleted ones stay visible
func (r *borrowingRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Borrower", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Book", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

// GetByID gets a borrowing process with borrower and book loaded
func (r *borrowingRepository) GetByID(ctx context.Context, id uint) (*models.BorrowingProcess, error) {
	var bp models.BorrowingProcess
	err := r.withRelations(ctx).Where("id = ?", id).First(&bp).Error
	if err != nil {
		return nil, err
	}
	return &bp, nil
}

// HardDelete permanently removes a borrowing process
func (r *borrowingRepository) HardDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.BorrowingProcess{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBorrowedBetween lists loans whose borrowed_at falls in [from, to], newest first
func (r *borrowingRepository) ListBorrowedBetween(ctx context.Context, from, to time.Time) ([]*models.BorrowingProcess, error) {
	var list []*models.BorrowingProcess
	err := r.withRelations(ctx).
		Where("borrowed_at BETWEEN ? AND ?", from, to).
		Order("borrowed_at DESC").
		Order("id DESC").
		Find(&list).Error
	return list, err
}

// ListOverdue lists unreturned loans past their due date
func (r *borrowingRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.BorrowingProcess, error) {
	var list []*models.BorrowingProcess
	err := r.withRelations(ctx).
		Where("is_returned = ? AND due_date < ?", false, now).
		Order("due_date ASC").
		Find(&list).Error
	return list, err
}
