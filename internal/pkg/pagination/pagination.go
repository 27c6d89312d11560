package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DefaultLimit is the default number of items per page
var DefaultLimit = 10

// MaxLimit is the maximum number of items per page
var MaxLimit = 100

// Configure overrides the package-wide limits; non-positive values are ignored
func Configure(defaultLimit, maxLimit int) {
	if defaultLimit > 0 {
		DefaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		MaxLimit = maxLimit
	}
	if DefaultLimit > MaxLimit {
		DefaultLimit = MaxLimit
	}
}

// ErrInvalidQuery is returned for unknown columns, operators or malformed values
var ErrInvalidQuery = errors.New("invalid pagination query")

// Kind tells how filter values for a column are converted before binding
type Kind int

const (
	String Kind = iota
	Int
	Bool
	Date
)

// Operator is a filter operator as written in the query string
type Operator string

const (
	OpEq       Operator = "$eq"
	OpGt       Operator = "$gt"
	OpGte      Operator = "$gte"
	OpLt       Operator = "$lt"
	OpLte      Operator = "$lte"
	OpIlike    Operator = "$ilike"
	OpContains Operator = "$contains"
	OpNull     Operator = "$null"
	OpIn       Operator = "$in"
	OpBtw      Operator = "$btw"

	notPrefix = "$not"
)

var knownOps = map[Operator]bool{
	OpEq: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true,
	OpIlike: true, OpContains: true, OpNull: true, OpIn: true, OpBtw: true,
}

// Column maps a public column name to its SQL expression
type Column struct {
	Expr string
	Kind Kind
}

// Sort is one ordering term
type Sort struct {
	Column    string
	Direction string
}

// Config declares what a listing endpoint accepts
type Config struct {
	Columns       map[string]Column
	Sortable      []string
	DefaultSortBy []Sort
	Searchable    []string
	Filterable    map[string][]Operator
	Joins         []string
	Preloads      []string // loaded with soft-deleted rows included
}

// Filter is one parsed filter.<col> term
type Filter struct {
	Column string
	Op     Operator
	Not    bool
	Values []string
	Raw    string
}

// Query represents the parsed pagination parameters of a request
type Query struct {
	Page    int
	Limit   int
	SortBy  []Sort
	Search  string
	Filters []Filter
	Path    string
}

// Offset returns the number of rows to skip
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Meta represents pagination metadata
type Meta struct {
	ItemsPerPage int                 `json:"itemsPerPage"`
	TotalItems   int64               `json:"totalItems"`
	CurrentPage  int                 `json:"currentPage"`
	TotalPages   int                 `json:"totalPages"`
	SortBy       [][2]string         `json:"sortBy"`
	SearchBy     []string            `json:"searchBy"`
	Search       string              `json:"search,omitempty"`
	Filter       map[string][]string `json:"filter,omitempty"`
}

// Links holds navigation URLs for a page
type Links struct {
	First    string `json:"first,omitempty"`
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current"`
	Next     string `json:"next,omitempty"`
	Last     string `json:"last,omitempty"`
}

// Page is one page of T with its metadata
type Page[T any] struct {
	Items []T
	Meta  Meta
	Links Links
}

// FromCtx extracts and validates pagination parameters from a request
func FromCtx(c *fiber.Ctx, cfg Config) (*Query, error) {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	q, err := cfg.Parse(values)
	if err != nil {
		return nil, err
	}
	q.Path = c.BaseURL() + c.Path()
	return q, nil
}

// Parse validates raw query values against the config
func (cfg Config) Parse(values url.Values) (*Query, error) {
	q := &Query{
		Page:   1,
		Limit:  DefaultLimit,
		Search: strings.TrimSpace(values.Get("search")),
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	for _, raw := range values["sortBy"] {
		s, err := cfg.parseSort(raw)
		if err != nil {
			return nil, err
		}
		q.SortBy = append(q.SortBy, s)
	}
	if len(q.SortBy) == 0 {
		q.SortBy = append(q.SortBy, cfg.DefaultSortBy...)
	}

	for key, raws := range values {
		if !strings.HasPrefix(key, "filter.") {
			continue
		}
		column := strings.TrimPrefix(key, "filter.")
		for _, raw := range raws {
			f, err := cfg.parseFilter(column, raw)
			if err != nil {
				return nil, err
			}
			q.Filters = append(q.Filters, f)
		}
	}

	return q, nil
}

func (cfg Config) parseSort(raw string) (Sort, error) {
	column, direction, _ := strings.Cut(raw, ":")
	if !contains(cfg.Sortable, column) {
		return Sort{}, fmt.Errorf("%w: column %q is not sortable", ErrInvalidQuery, column)
	}

	direction = strings.ToUpper(direction)
	switch direction {
	case "":
		direction = "ASC"
	case "ASC", "DESC":
	default:
		return Sort{}, fmt.Errorf("%w: bad sort direction %q", ErrInvalidQuery, direction)
	}
	return Sort{Column: column, Direction: direction}, nil
}

func (cfg Config) parseFilter(column, raw string) (Filter, error) {
	allowed, ok := cfg.Filterable[column]
	if !ok {
		return Filter{}, fmt.Errorf("%w: column %q is not filterable", ErrInvalidQuery, column)
	}

	f := Filter{Column: column, Op: OpEq, Raw: raw}
	rest := raw
	if strings.HasPrefix(rest, notPrefix+":") {
		f.Not = true
		rest = strings.TrimPrefix(rest, notPrefix+":")
	}

	if strings.HasPrefix(rest, "$") {
		op, value, _ := strings.Cut(rest, ":")
		f.Op = Operator(op)
		rest = value
	}
	if !knownOps[f.Op] {
		return Filter{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, f.Op)
	}
	if !containsOp(allowed, f.Op) {
		return Filter{}, fmt.Errorf("%w: operator %s not allowed on %q", ErrInvalidQuery, f.Op, column)
	}

	switch f.Op {
	case OpNull:
	case OpIn:
		f.Values = strings.Split(rest, ",")
	case OpBtw:
		f.Values = strings.Split(rest, ",")
		if len(f.Values) != 2 {
			return Filter{}, fmt.Errorf("%w: $btw on %q needs two values", ErrInvalidQuery, column)
		}
	default:
		f.Values = []string{rest}
	}

	kind := cfg.Columns[column].Kind
	for _, v := range f.Values {
		if _, err := convert(kind, v); err != nil {
			return Filter{}, fmt.Errorf("%w: bad value %q for %q", ErrInvalidQuery, v, column)
		}
	}
	return f, nil
}

func convert(kind Kind, v string) (interface{}, error) {
	switch kind {
	case Int:
		return strconv.Atoi(v)
	case Bool:
		return strconv.ParseBool(v)
	case Date:
		// date-only values are local midnight, like stored dates
		if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
			return t, nil
		}
		return time.Parse(time.RFC3339, v)
	default:
		return v, nil
	}
}

// Apply adds joins, filters and search conditions to db
func (cfg Config) Apply(db *gorm.DB, q *Query) *gorm.DB {
	for _, join := range cfg.Joins {
		db = db.Joins(join)
	}

	for _, f := range q.Filters {
		db = cfg.applyFilter(db, f)
	}

	if q.Search != "" && len(cfg.Searchable) > 0 {
		term := "%" + strings.ToLower(q.Search) + "%"
		parts := make([]string, 0, len(cfg.Searchable))
		args := make([]interface{}, 0, len(cfg.Searchable))
		for _, name := range cfg.Searchable {
			parts = append(parts, "LOWER("+cfg.expr(name)+") LIKE ?")
			args = append(args, term)
		}
		db = db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	return db
}

func (cfg Config) applyFilter(db *gorm.DB, f Filter) *gorm.DB {
	col := cfg.Columns[f.Column]
	expr := cfg.expr(f.Column)
	args := make([]interface{}, 0, len(f.Values))
	for _, v := range f.Values {
		converted, _ := convert(col.Kind, v)
		args = append(args, converted)
	}

	var cond string
	switch f.Op {
	case OpEq:
		cond = expr + " = ?"
	case OpGt:
		cond = expr + " > ?"
	case OpGte:
		cond = expr + " >= ?"
	case OpLt:
		cond = expr + " < ?"
	case OpLte:
		cond = expr + " <= ?"
	case OpIlike, OpContains:
		cond = "LOWER(" + expr + ") LIKE ?"
		args = []interface{}{"%" + strings.ToLower(f.Values[0]) + "%"}
	case OpNull:
		cond = expr + " IS NULL"
	case OpIn:
		cond = expr + " IN ?"
		args = []interface{}{args}
	case OpBtw:
		cond = expr + " BETWEEN ? AND ?"
	}

	if f.Not {
		return db.Where("NOT ("+cond+")", args...)
	}
	return db.Where(cond, args...)
}

func (cfg Config) expr(name string) string {
	if col, ok := cfg.Columns[name]; ok && col.Expr != "" {
		return col.Expr
	}
	return name
}

// Find runs the counted, ordered and paged query for model T
func Find[T any](ctx context.Context, db *gorm.DB, cfg Config, q *Query) (*Page[T], error) {
	base := cfg.Apply(db.WithContext(ctx).Model(new(T)), q).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	// relations stay visible after they are soft deleted
	find := base
	for _, p := range cfg.Preloads {
		find = find.Preload(p, func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
	}
	for _, s := range q.SortBy {
		find = find.Order(cfg.expr(s.Column) + " " + s.Direction)
	}

	items := make([]T, 0, q.Limit)
	if err := find.Limit(q.Limit).Offset(q.Offset()).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items: items,
		Meta:  cfg.meta(q, total),
		Links: links(q, total),
	}, nil
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

func (cfg Config) meta(q *Query, total int64) Meta {
	m := Meta{
		ItemsPerPage: q.Limit,
		TotalItems:   total,
		CurrentPage:  q.Page,
		TotalPages:   totalPages(total, q.Limit),
		SortBy:       make([][2]string, 0, len(q.SortBy)),
		SearchBy:     cfg.Searchable,
		Search:       q.Search,
	}
	for _, s := range q.SortBy {
		m.SortBy = append(m.SortBy, [2]string{s.Column, s.Direction})
	}
	if len(q.Filters) > 0 {
		m.Filter = make(map[string][]string, len(q.Filters))
		for _, f := range q.Filters {
			m.Filter[f.Column] = append(m.Filter[f.Column], f.Raw)
		}
	}
	return m
}

func links(q *Query, total int64) Links {
	last := totalPages(total, q.Limit)
	l := Links{Current: pageURL(q, q.Page)}
	if last == 0 {
		return l
	}
	l.First = pageURL(q, 1)
	l.Last = pageURL(q, last)
	if q.Page > 1 {
		l.Previous = pageURL(q, q.Page-1)
	}
	if q.Page < last {
		l.Next = pageURL(q, q.Page+1)
	}
	return l
}

func pageURL(q *Query, page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(q.Limit))
	for _, s := range q.SortBy {
		v.Add("sortBy", s.Column+":"+s.Direction)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for _, f := range q.Filters {
		v.Add("filter."+f.Column, f.Raw)
	}
	return q.Path + "?" + v.Encode()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsOp(list []Operator, op Operator) bool {
	for _, v := range list {
		if v == op {
			return true
		}
	}
	return false
}
