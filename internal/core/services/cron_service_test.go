package services

import (
	"context"
	"testing"

	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewCronService_RejectsBadSchedule(t *testing.T) {
	f := newFixture(t)

	_, err := NewCronService(f.borrowing, "every tuesday")
	assert.Error(t, err)
}

func Test_CronService_OverdueSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "late@example.com", domain.RoleBorrower)
	book := f.createBook(t, "777", 5)

	checkout := func(due string) uint {
		bp, err := f.borrowing.Checkout(ctx, &CheckoutInput{UserID: user.ID, BookID: book.ID, DueDate: due})
		require.NoError(t, err)
		return bp.ID
	}

	checkout("2026-03-01")
	checkout("2026-02-15")
	returnedLate := checkout("2026-02-01")
	checkout("2026-04-01")

	_, err := f.borrowing.Return(ctx, returnedLate)
	require.NoError(t, err)

	overdue, err := f.borrowing.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "2026-02-15", overdue[0].DueDate.Format(domain.DateLayout))

	cron, err := NewCronService(f.borrowing, "30 8 * * *")
	require.NoError(t, err)

	n, err := cron.OverdueSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
