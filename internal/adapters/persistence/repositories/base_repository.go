package repositories

import (
	"context"

	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// baseRepository holds the CRUD shared by the entity repositories
type baseRepository[T any] struct {
	db      *gorm.DB
	listCfg pagination.Config
}

// Create inserts a new row
func (r *baseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// GetByID gets a row by primary key
func (r *baseRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update saves every column of entity
func (r *baseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

// Delete soft deletes a row, returning gorm.ErrRecordNotFound when nothing matched
func (r *baseRepository[T]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns a filtered, sorted page
func (r *baseRepository[T]) List(ctx context.Context, q *pagination.Query) (*pagination.Page[T], error) {
	return pagination.Find[T](ctx, r.db, r.listCfg, q)
}
