package pagination_test

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libraryhub/internal/pkg/pagination"
)

type item struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Shelf    string
	Quantity int
	Active   bool
}

var itemConfig = pagination.Config{
	Columns: map[string]pagination.Column{
		"id":       {Expr: "items.id", Kind: pagination.Int},
		"name":     {Expr: "items.name"},
		"shelf":    {Expr: "items.shelf"},
		"quantity": {Expr: "items.quantity", Kind: pagination.Int},
		"active":   {Expr: "items.active", Kind: pagination.Bool},
	},
	Sortable:      []string{"id", "name", "quantity"},
	DefaultSortBy: []pagination.Sort{{Column: "id", Direction: "ASC"}},
	Searchable:    []string{"name", "shelf"},
	Filterable: map[string][]pagination.Operator{
		"shelf":    {pagination.OpEq, pagination.OpIlike, pagination.OpIn},
		"quantity": {pagination.OpGte, pagination.OpLte, pagination.OpBtw},
		"active":   {pagination.OpEq},
		"name":     {pagination.OpNull, pagination.OpEq},
	},
}

func newItemsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "items.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&item{}))

	rows := []item{
		{Name: "Dune", Shelf: "A1", Quantity: 3, Active: true},
		{Name: "Emma", Shelf: "A1", Quantity: 0, Active: false},
		{Name: "Ulysses", Shelf: "B2", Quantity: 5, Active: true},
		{Name: "Beloved", Shelf: "C3", Quantity: 1, Active: true},
		{Name: "Dracula", Shelf: "B2", Quantity: 2, Active: false},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func Test_Parse_Defaults(t *testing.T) {
	q, err := itemConfig.Parse(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, pagination.DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, []pagination.Sort{{Column: "id", Direction: "ASC"}}, q.SortBy)
	assert.Empty(t, q.Filters)
}

func Test_Parse_LimitIsCapped(t *testing.T) {
	q, err := itemConfig.Parse(url.Values{"limit": {"100000"}, "page": {"3"}})
	require.NoError(t, err)

	assert.Equal(t, pagination.MaxLimit, q.Limit)
	assert.Equal(t, 2*pagination.MaxLimit, q.Offset())
}

func Test_Parse_InvalidPageFallsBack(t *testing.T) {
	q, err := itemConfig.Parse(url.Values{"page": {"-2"}, "limit": {"abc"}})
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, pagination.DefaultLimit, q.Limit)
}

func Test_Parse_Filters(t *testing.T) {
	q, err := itemConfig.Parse(url.Values{
		"filter.shelf":    {"$in:A1,B2"},
		"filter.quantity": {"$not:$gte:3"},
		"filter.active":   {"true"},
		"sortBy":          {"name:desc"},
	})
	require.NoError(t, err)

	byColumn := map[string]pagination.Filter{}
	for _, f := range q.Filters {
		byColumn[f.Column] = f
	}

	assert.Equal(t, pagination.OpIn, byColumn["shelf"].Op)
	assert.Equal(t, []string{"A1", "B2"}, byColumn["shelf"].Values)
	assert.Equal(t, pagination.OpGte, byColumn["quantity"].Op)
	assert.True(t, byColumn["quantity"].Not)
	assert.Equal(t, pagination.OpEq, byColumn["active"].Op)
	assert.Equal(t, []pagination.Sort{{Column: "name", Direction: "DESC"}}, q.SortBy)
}

func Test_Parse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "unknown_sort_column", values: url.Values{"sortBy": {"shelf:ASC"}}},
		{name: "bad_sort_direction", values: url.Values{"sortBy": {"name:SIDEWAYS"}}},
		{name: "unknown_filter_column", values: url.Values{"filter.id": {"$eq:1"}}},
		{name: "operator_not_allowed", values: url.Values{"filter.active": {"$gt:true"}}},
		{name: "unknown_operator", values: url.Values{"filter.shelf": {"$regex:A.*"}}},
		{name: "bad_int_value", values: url.Values{"filter.quantity": {"$gte:lots"}}},
		{name: "bad_bool_value", values: url.Values{"filter.active": {"maybe"}}},
		{name: "btw_needs_two_values", values: url.Values{"filter.quantity": {"$btw:1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := itemConfig.Parse(tt.values)
			assert.ErrorIs(t, err, pagination.ErrInvalidQuery)
		})
	}
}

func Test_Find_PagesAndLinks(t *testing.T) {
	db := newItemsDB(t)

	q, err := itemConfig.Parse(url.Values{"limit": {"2"}, "page": {"2"}})
	require.NoError(t, err)
	q.Path = "/items"

	page, err := pagination.Find[item](context.Background(), db, itemConfig, q)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ulysses", page.Items[0].Name)
	assert.Equal(t, "Beloved", page.Items[1].Name)

	assert.Equal(t, int64(5), page.Meta.TotalItems)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 2, page.Meta.ItemsPerPage)
	assert.Equal(t, [][2]string{{"id", "ASC"}}, page.Meta.SortBy)

	assert.Contains(t, page.Links.First, "page=1")
	assert.Contains(t, page.Links.Previous, "page=1")
	assert.Contains(t, page.Links.Current, "page=2")
	assert.Contains(t, page.Links.Next, "page=3")
	assert.Contains(t, page.Links.Last, "page=3")
}

func Test_Find_FiltersAndSearch(t *testing.T) {
	db := newItemsDB(t)

	tests := []struct {
		name   string
		values url.Values
		want   []string
	}{
		{name: "eq", values: url.Values{"filter.shelf": {"$eq:B2"}}, want: []string{"Ulysses", "Dracula"}},
		{name: "ilike", values: url.Values{"filter.shelf": {"$ilike:a"}}, want: []string{"Dune", "Emma"}},
		{name: "in", values: url.Values{"filter.shelf": {"$in:A1,C3"}}, want: []string{"Dune", "Emma", "Beloved"}},
		{name: "gte", values: url.Values{"filter.quantity": {"$gte:3"}}, want: []string{"Dune", "Ulysses"}},
		{name: "not_gte", values: url.Values{"filter.quantity": {"$not:$gte:3"}}, want: []string{"Emma", "Beloved", "Dracula"}},
		{name: "btw", values: url.Values{"filter.quantity": {"$btw:1,2"}}, want: []string{"Beloved", "Dracula"}},
		{name: "bool", values: url.Values{"filter.active": {"$eq:false"}}, want: []string{"Emma", "Dracula"}},
		{name: "search_case_insensitive", values: url.Values{"search": {"DU"}}, want: []string{"Dune"}},
		{name: "search_other_column", values: url.Values{"search": {"c3"}}, want: []string{"Beloved"}},
		{name: "sorted_desc", values: url.Values{"sortBy": {"quantity:DESC"}, "limit": {"2"}}, want: []string{"Ulysses", "Dune"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := itemConfig.Parse(tt.values)
			require.NoError(t, err)

			page, err := pagination.Find[item](context.Background(), db, itemConfig, q)
			require.NoError(t, err)

			names := make([]string, 0, len(page.Items))
			for _, it := range page.Items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func Test_Find_EmptyResult(t *testing.T) {
	db := newItemsDB(t)

	q, err := itemConfig.Parse(url.Values{"search": {"nothing-matches"}})
	require.NoError(t, err)

	page, err := pagination.Find[item](context.Background(), db, itemConfig, q)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Meta.TotalItems)
	assert.Equal(t, 0, page.Meta.TotalPages)
	assert.Empty(t, page.Links.Next)
}

func Test_Configure(t *testing.T) {
	prevDefault, prevMax := pagination.DefaultLimit, pagination.MaxLimit
	defer func() { pagination.DefaultLimit, pagination.MaxLimit = prevDefault, prevMax }()

	pagination.Configure(50, 20)
	assert.Equal(t, 20, pagination.MaxLimit)
	assert.Equal(t, 20, pagination.DefaultLimit)

	pagination.Configure(0, -1)
	assert.Equal(t, 20, pagination.MaxLimit)
	assert.Equal(t, 20, pagination.DefaultLimit)
}

type dueItem struct {
	ID  uint      `gorm:"primaryKey"`
	Due time.Time `gorm:"type:date"`
}

var dueConfig = pagination.Config{
	Columns: map[string]pagination.Column{
		"id":  {Expr: "due_items.id", Kind: pagination.Int},
		"due": {Expr: "due_items.due", Kind: pagination.Date},
	},
	Sortable:      []string{"id"},
	DefaultSortBy: []pagination.Sort{{Column: "id", Direction: "ASC"}},
	Filterable: map[string][]pagination.Operator{
		"due": {pagination.OpLte, pagination.OpGte, pagination.OpLt, pagination.OpEq},
	},
}

func Test_Find_DateFiltersUseLocalMidnight(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("UTC+9", 9*60*60)
	defer func() { time.Local = prev }()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "due.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dueItem{}))

	for _, day := range []int{9, 10, 11} {
		require.NoError(t, db.Create(&dueItem{Due: time.Date(2026, time.March, day, 0, 0, 0, 0, time.Local)}).Error)
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "$lte:2026-03-10", want: []string{"2026-03-09", "2026-03-10"}},
		{filter: "$gte:2026-03-10", want: []string{"2026-03-10", "2026-03-11"}},
		{filter: "$lt:2026-03-10", want: []string{"2026-03-09"}},
		{filter: "$eq:2026-03-10", want: []string{"2026-03-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			q, err := dueConfig.Parse(url.Values{"filter.due": {tt.filter}})
			require.NoError(t, err)

			page, err := pagination.Find[dueItem](context.Background(), db, dueConfig, q)
			require.NoError(t, err)

			days := make([]string, 0, len(page.Items))
			for _, it := range page.Items {
				days = append(days, it.Due.In(time.Local).Format("2006-01-02"))
			}
			assert.Equal(t, tt.want, days)
		})
	}
}
