package models

import (
	"time"

	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ============================================================
// Accounts
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Type      domain.Role    `gorm:"size:20;not null;default:'BORROWER'" json:"type"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ============================================================
// Catalog
// ============================================================

// Book represents books table
type Book struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"size:255;not null" json:"title"`
	Author            string         `gorm:"size:255;not null" json:"author"`
	Description       string         `gorm:"type:text" json:"description"`
	ISBN              string         `gorm:"column:isbn;size:32;uniqueIndex;not null" json:"ISBN"`
	ShelfLocation     string         `gorm:"size:50;not null" json:"shelf_location"`
	AvailableQuantity int            `gorm:"not null" json:"available_quantity"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// ============================================================
// Circulation
// ============================================================

// BorrowingProcess represents borrowings table (one loan of one book)
type BorrowingProcess struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	BorrowerID uint           `gorm:"not null;index" json:"borrower_id"`
	BookID     uint           `gorm:"not null;index" json:"book_id"`
	BorrowedAt time.Time      `gorm:"type:date;not null;index" json:"borrowed_at"`
	DueDate    time.Time      `gorm:"type:date;not null" json:"due_date"`
	ReturnedAt *time.Time     `gorm:"type:date" json:"returned_at"`
	IsReturned bool           `gorm:"not null;default:false" json:"isReturned"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Borrower *User `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`
	Book     *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (BorrowingProcess) TableName() string {
	return "borrowings"
}

// Status derives the loan state at the given instant
func (bp *BorrowingProcess) Status(now time.Time) domain.BorrowingStatus {
	if bp.IsReturned {
		return domain.StatusReturned
	}
	if bp.DueDate.Before(now) {
		return domain.StatusOverdue
	}
	return domain.StatusActive
}

// ============================================================
// Auto Migration
// ============================================================

// Tables lists the library tables in migration order
func Tables() []schema.Tabler {
	return []schema.Tabler{
		&User{},
		&Book{},
		&BorrowingProcess{},
	}
}

// AutoMigrate creates or updates the library tables
func AutoMigrate(db *gorm.DB) error {
	tables := Tables()
	dst := make([]interface{}, len(tables))
	for i, t := range tables {
		dst[i] = t
	}
	return db.AutoMigrate(dst...)
}
