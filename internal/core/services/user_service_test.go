package services

import (
	"context"
	"net/url"
	"testing"

	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_UserService_Create_DefaultsToBorrower(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Create(context.Background(), &CreateUserInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBorrower, user.Type)

	_, err = f.users.Create(context.Background(), &CreateUserInput{
		Name:     "Grace Again",
		Email:    "grace@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func Test_UserService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "hal@example.com", domain.RoleBorrower)
	f.createUser(t, "taken@example.com", domain.RoleBorrower)

	role := domain.RoleAdmin
	updated, err := f.users.Update(ctx, user.ID, &UpdateUserInput{Type: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Type)

	taken := "taken@example.com"
	_, err = f.users.Update(ctx, user.ID, &UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, f.users.Delete(ctx, user.ID))

	_, err = f.users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, f.users.Delete(ctx, user.ID), domain.ErrUserNotFound)
}

func Test_UserService_List_FilterByType(t *testing.T) {
	f := newFixture(t)

	f.createUser(t, "a1@example.com", domain.RoleAdmin)
	f.createUser(t, "b1@example.com", domain.RoleBorrower)
	f.createUser(t, "b2@example.com", domain.RoleBorrower)

	q, err := repositories.UserPagination.Parse(url.Values{"filter.type": {"$eq:BORROWER"}})
	require.NoError(t, err)

	page, err := f.users.List(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.TotalItems)
	for _, u := range page.Items {
		assert.Equal(t, domain.RoleBorrower, u.Type)
	}
}
