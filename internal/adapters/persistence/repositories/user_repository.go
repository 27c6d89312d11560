package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// UserPagination is the listing config for GET /users
var UserPagination = pagination.Config{
	Columns: map[string]pagination.Column{
		"id":         {Expr: "users.id", Kind: pagination.Int},
		"name":       {Expr: "users.name"},
		"email":      {Expr: "users.email"},
		"type":       {Expr: "users.type"},
		"created_at": {Expr: "users.created_at", Kind: pagination.Date},
	},
	Sortable:      []string{"id", "name", "email", "created_at"},
	DefaultSortBy: []pagination.Sort{{Column: "created_at", Direction: "DESC"}},
	Searchable:    []string{"name", "email"},
	Filterable: map[string][]pagination.Operator{
		"type":  {pagination.OpEq},
		"email": {pagination.OpEq, pagination.OpIlike, pagination.OpContains},
	},
}

// userRepository implements UserRepository interface
type userRepository struct {
	baseRepository[models.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{baseRepository[models.User]{db: db, listCfg: UserPagination}}
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsAdmin checks if any admin account exists
func (r *userRepository) ExistsAdmin(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("type = ?", domain.RoleAdmin).Count(&count).Error
	return count > 0, err
}
