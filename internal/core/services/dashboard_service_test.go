package services

import (
	"context"
	"testing"

	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DashboardService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createUser(t, "admin@example.com", domain.RoleAdmin)
	ann := f.createUser(t, "ann@example.com", domain.RoleBorrower)
	ben := f.createUser(t, "ben@example.com", domain.RoleBorrower)

	book := f.createBook(t, "888", 2)
	f.createBook(t, "999", 4)

	checkout := func(userID uint, due string) uint {
		bp, err := f.borrowing.Checkout(ctx, &CheckoutInput{UserID: userID, BookID: book.ID, DueDate: due})
		require.NoError(t, err)
		return bp.ID
	}

	checkout(ann.ID, "2026-04-01")         // active
	late := checkout(ann.ID, "2026-03-01") // overdue, then returned
	checkout(ben.ID, "2026-03-05")         // overdue, no stock left so not decremented

	_, err := f.borrowing.Return(ctx, late)
	require.NoError(t, err)

	admin, err := f.dashboard.GetAdminDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), admin.TotalUsers)
	assert.Equal(t, int64(1), admin.TotalAdmins)
	assert.Equal(t, int64(2), admin.TotalBorrowers)
	assert.Equal(t, int64(2), admin.TotalTitles)
	assert.Equal(t, int64(5), admin.AvailableCopies)
	assert.Equal(t, int64(0), admin.OutOfStock)
	assert.Equal(t, int64(1), admin.ActiveLoans)
	assert.Equal(t, int64(1), admin.OverdueLoans)
	assert.Equal(t, int64(1), admin.ReturnedLoans)
	assert.Equal(t, int64(3), admin.LoansThisMonth)
	require.Len(t, admin.RecentLoans, 3)
	assert.Equal(t, "User ben@example.com", admin.RecentLoans[0].BorrowerName)
	assert.Equal(t, domain.StatusOverdue, admin.RecentLoans[0].Status)

	mine, err := f.dashboard.GetBorrowerDashboard(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.ActiveLoans)
	assert.Equal(t, int64(0), mine.OverdueLoans)
	assert.Equal(t, int64(1), mine.ReturnedLoans)
	require.Len(t, mine.RecentLoans, 2)
	for _, l := range mine.RecentLoans {
		assert.Equal(t, "Title 888", l.BookTitle)
	}
}
