package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// BookPagination is the listing config for GET /books
var BookPagination = pagination.Config{
	Columns: map[string]pagination.Column{
		"id":                 {Expr: "books.id", Kind: pagination.Int},
		"title":              {Expr: "books.title"},
		"author":             {Expr: "books.author"},
		"ISBN":               {Expr: "books.isbn"},
		"shelf_location":     {Expr: "books.shelf_location"},
		"available_quantity": {Expr: "books.available_quantity", Kind: pagination.Int},
		"created_at":         {Expr: "books.created_at", Kind: pagination.Date},
	},
	Sortable:      []string{"id", "title", "author", "created_at"},
	DefaultSortBy: []pagination.Sort{{Column: "created_at", Direction: "DESC"}},
	Searchable:    []string{"title", "author", "ISBN", "shelf_location"},
	Filterable: map[string][]pagination.Operator{
		"shelf_location":     {pagination.OpEq, pagination.OpIlike, pagination.OpContains},
		"author":             {pagination.OpEq, pagination.OpIlike, pagination.OpContains},
		"ISBN":               {pagination.OpEq, pagination.OpIlike, pagination.OpContains},
		"available_quantity": {pagination.OpGte, pagination.OpLte},
	},
}

// bookRepository implements BookRepository interface
type bookRepository struct {
	baseRepository[models.Book]
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{baseRepository[models.Book]{db: db, listCfg: BookPagination}}
}

// GetByISBN gets a book by ISBN
func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// AdjustQuantity moves available_quantity by delta; decrements never go below zero
func (r *bookRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id)
	if delta < 0 {
		tx = tx.Where("available_quantity >= ?", -delta)
	}

	result := tx.UpdateColumn("available_quantity", gorm.Expr("available_quantity + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
