package services

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ISBN_AcceptsNumberOrString(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ISBN
	}{
		{name: "number", body: `{"ISBN": 9780131103627}`, want: "9780131103627"},
		{name: "string", body: `{"ISBN": "978-0-13-110362-7"}`, want: "978-0-13-110362-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input CreateBookInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &input))
			assert.Equal(t, tt.want, input.ISBN)
		})
	}

	var input CreateBookInput
	assert.Error(t, json.Unmarshal([]byte(`{"ISBN": true}`), &input))
}

func Test_BookService_Create_DuplicateISBN(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createBook(t, "111", 2)

	qty := 4
	_, err := f.books.Create(ctx, &CreateBookInput{
		Title:             "Another",
		Author:            "Someone",
		Description:       "Same ISBN",
		ISBN:              "111",
		ShelfLocation:     "B1",
		AvailableQuantity: &qty,
	})
	assert.ErrorIs(t, err, domain.ErrBookAlreadyExists)

	var count int64
	require.NoError(t, f.db.Model(&models.Book{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_BookService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book := f.createBook(t, "222", 1)
	other := f.createBook(t, "333", 1)

	title := "Renamed"
	qty := 7
	updated, err := f.books.Update(ctx, book.ID, &UpdateBookInput{Title: &title, AvailableQuantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 7, updated.AvailableQuantity)
	assert.Equal(t, "222", updated.ISBN)

	taken := ISBN(other.ISBN)
	_, err = f.books.Update(ctx, book.ID, &UpdateBookInput{ISBN: &taken})
	assert.ErrorIs(t, err, domain.ErrBookAlreadyExists)

	_, err = f.books.Update(ctx, 9999, &UpdateBookInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func Test_BookService_AdjustQuantity_NeverNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book := f.createBook(t, "444", 1)

	ok, err := f.books.AdjustQuantity(ctx, book.ID, -1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.books.AdjustQuantity(ctx, book.ID, -1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, f.stock(t, book.ID))

	ok, err = f.books.AdjustQuantity(ctx, book.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, f.stock(t, book.ID))
}

func Test_BookService_List_SearchAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createBook(t, "555", 0)
	f.createBook(t, "666", 3)

	q, err := repositories.BookPagination.Parse(url.Values{"search": {"666"}})
	require.NoError(t, err)
	page, err := f.books.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "666", page.Items[0].ISBN)

	q, err = repositories.BookPagination.Parse(url.Values{"filter.available_quantity": {"$gte:1"}})
	require.NoError(t, err)
	page, err = f.books.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].AvailableQuantity)
	assert.Equal(t, int64(1), page.Meta.TotalItems)
}
