package services

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// recentLoansLimit caps the recent activity lists
const recentLoansLimit = 10

// DashboardService handles dashboard operations
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers     int64 `json:"total_users"`
	TotalAdmins    int64 `json:"total_admins"`
	TotalBorrowers int64 `json:"total_borrowers"`

	// Catalog Statistics
	TotalTitles     int64 `json:"total_titles"`
	AvailableCopies int64 `json:"available_copies"`
	OutOfStock      int64 `json:"out_of_stock"`

	// Loan Statistics
	ActiveLoans   int64 `json:"active_loans"`
	OverdueLoans  int64 `json:"overdue_loans"`
	ReturnedLoans int64 `json:"returned_loans"`

	// Monthly Statistics
	LoansThisMonth int64 `json:"loans_this_month"`

	// Recent Activity
	RecentLoans []LoanSummary `json:"recent_loans"`
}

// LoanSummary represents one loan in activity lists
type LoanSummary struct {
	ID           uint                   `json:"id"`
	BorrowerName string                 `json:"borrower_name"`
	BookTitle    string                 `json:"book_title"`
	BorrowedAt   time.Time              `json:"borrowed_at"`
	DueDate      time.Time              `json:"due_date"`
	Status       domain.BorrowingStatus `json:"status"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}
	now := s.now()
	db := s.db.WithContext(ctx)
	startOfMonth, endOfMonth := monthRange(now)

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		// User counts by type
		{&data.TotalUsers, db.Model(&models.User{})},
		{&data.TotalAdmins, db.Model(&models.User{}).Where("type = ?", domain.RoleAdmin)},
		{&data.TotalBorrowers, db.Model(&models.User{}).Where("type = ?", domain.RoleBorrower)},

		// Catalog
		{&data.TotalTitles, db.Model(&models.Book{})},
		{&data.OutOfStock, db.Model(&models.Book{}).Where("available_quantity <= 0")},

		// Loans by status
		{&data.ActiveLoans, db.Model(&models.BorrowingProcess{}).Where("is_returned = ? AND due_date >= ?", false, now)},
		{&data.OverdueLoans, db.Model(&models.BorrowingProcess{}).Where("is_returned = ? AND due_date < ?", false, now)},
		{&data.ReturnedLoans, db.Model(&models.BorrowingProcess{}).Where("is_returned = ?", true)},
		{&data.LoansThisMonth, db.Model(&models.BorrowingProcess{}).Where("borrowed_at BETWEEN ? AND ?", startOfMonth, endOfMonth)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	// Copies on the shelf
	if err := db.Model(&models.Book{}).
		Select("COALESCE(SUM(available_quantity), 0)").
		Scan(&data.AvailableCopies).Error; err != nil {
		return nil, err
	}

	// Recent loans
	recent, err := s.recentLoans(db, now, nil)
	if err != nil {
		return nil, err
	}
	data.RecentLoans = recent

	return data, nil
}

// ============================================================
// Borrower Dashboard
// ============================================================

// BorrowerDashboardData represents a borrower's own loan overview
type BorrowerDashboardData struct {
	ActiveLoans   int64         `json:"active_loans"`
	OverdueLoans  int64         `json:"overdue_loans"`
	ReturnedLoans int64         `json:"returned_loans"`
	RecentLoans   []LoanSummary `json:"recent_loans"`
}

// GetBorrowerDashboard returns loan statistics for one user
func (s *DashboardService) GetBorrowerDashboard(ctx context.Context, userID uint) (*BorrowerDashboardData, error) {
	data := &BorrowerDashboardData{}
	now := s.now()
	db := s.db.WithContext(ctx)
	mine := func() *gorm.DB {
		return db.Model(&models.BorrowingProcess{}).Where("borrower_id = ?", userID)
	}

	if err := mine().Where("is_returned = ? AND due_date >= ?", false, now).Count(&data.ActiveLoans).Error; err != nil {
		return nil, err
	}
	if err := mine().Where("is_returned = ? AND due_date < ?", false, now).Count(&data.OverdueLoans).Error; err != nil {
		return nil, err
	}
	if err := mine().Where("is_returned = ?", true).Count(&data.ReturnedLoans).Error; err != nil {
		return nil, err
	}

	recent, err := s.recentLoans(db, now, &userID)
	if err != nil {
		return nil, err
	}
	data.RecentLoans = recent

	return data, nil
}

// recentLoans lists the newest loans, optionally for one borrower
func (s *DashboardService) recentLoans(db *gorm.DB, now time.Time, borrowerID *uint) ([]LoanSummary, error) {
	query := db.
		Preload("Borrower", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Book", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("borrowed_at DESC").
		Order("id DESC").
		Limit(recentLoansLimit)
	if borrowerID != nil {
		query = query.Where("borrower_id = ?", *borrowerID)
	}

	var loans []*models.BorrowingProcess
	if err := query.Find(&loans).Error; err != nil {
		return nil, err
	}

	summaries := make([]LoanSummary, len(loans))
	for i, bp := range loans {
		summaries[i] = LoanSummary{
			ID:         bp.ID,
			BorrowedAt: bp.BorrowedAt,
			DueDate:    bp.DueDate,
			Status:     bp.Status(now),
		}
		if bp.Borrower != nil {
			summaries[i].BorrowerName = bp.Borrower.Name
		}
		if bp.Book != nil {
			summaries[i].BookTitle = bp.Book.Title
		}
	}
	return summaries, nil
}
