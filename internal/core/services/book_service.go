package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ISBN accepts either a JSON string or a JSON number
type ISBN string

// UnmarshalJSON implements json.Unmarshaler
func (i *ISBN) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = ISBN(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = ISBN(n.String())
	return nil
}

// BookService handles the book catalog
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title             string `json:"title" validate:"required,max=255"`
	Author            string `json:"author" validate:"required,max=255"`
	Description       string `json:"description" validate:"required"`
	ISBN              ISBN   `json:"ISBN" validate:"required,max=32"`
	ShelfLocation     string `json:"shelf_location" validate:"required,max=50"`
	AvailableQuantity *int   `json:"available_quantity" validate:"required,gt=0"`
}

// UpdateBookInput represents a partial book update
type UpdateBookInput struct {
	Title             *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author            *string `json:"author" validate:"omitempty,min=1,max=255"`
	Description       *string `json:"description"`
	ISBN              *ISBN   `json:"ISBN" validate:"omitempty,min=1,max=32"`
	ShelfLocation     *string `json:"shelf_location" validate:"omitempty,min=1,max=50"`
	AvailableQuantity *int    `json:"available_quantity" validate:"omitempty,gte=0"`
}

// Create adds a book unless its ISBN is already catalogued
func (s *BookService) Create(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	isbn := string(input.ISBN)

	// 1. Look up ISBN; the unique index still guards concurrent creates
	_, err := s.bookRepo.GetByISBN(ctx, isbn)
	switch {
	case err == nil:
		return nil, domain.ErrBookAlreadyExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// 2. Insert
	book := &models.Book{
		Title:             input.Title,
		Author:            input.Author,
		Description:       input.Description,
		ISBN:              isbn,
		ShelfLocation:     input.ShelfLocation,
		AvailableQuantity: *input.AvailableQuantity,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrBookAlreadyExists
		}
		return nil, err
	}

	log.Printf("📚 Book created: %s (ISBN %s)", book.Title, book.ISBN)
	return book, nil
}

// List returns a page of books
func (s *BookService) List(ctx context.Context, q *pagination.Query) (*pagination.Page[models.Book], error) {
	return s.bookRepo.List(ctx, q)
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrBookNotFound)
	}
	return book, nil
}

// Update merges input into the book with the given id
func (s *BookService) Update(ctx context.Context, id uint, input *UpdateBookInput) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.ISBN != nil {
		book.ISBN = string(*input.ISBN)
	}
	if input.ShelfLocation != nil {
		book.ShelfLocation = *input.ShelfLocation
	}
	if input.AvailableQuantity != nil {
		book.AvailableQuantity = *input.AvailableQuantity
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrBookAlreadyExists
		}
		return nil, err
	}

	return book, nil
}

// AdjustQuantity moves the stock counter of a book by delta
func (s *BookService) AdjustQuantity(ctx context.Context, id uint, delta int) (bool, error) {
	return s.bookRepo.AdjustQuantity(ctx, id, delta)
}
