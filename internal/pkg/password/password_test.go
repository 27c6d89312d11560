package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"libraryhub/internal/pkg/password"
)

func Test_HashAndVerify(t *testing.T) {
	prev := password.SetCost(bcrypt.MinCost)
	defer password.SetCost(prev)

	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, password.Verify("correct horse", hash))
	assert.False(t, password.Verify("wrong horse", hash))
	assert.False(t, password.Verify("correct horse", "not-a-hash"))
}

func Test_SetCost_ClampsToMinimum(t *testing.T) {
	prev := password.SetCost(1)
	defer password.SetCost(prev)

	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
