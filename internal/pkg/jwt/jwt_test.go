package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/pkg/jwt"
)

const secret = "unit-test-secret"

func Test_AccessToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateAccessToken(42, "ADMIN", secret, time.Hour)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, jwt.Issuer, claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func Test_AccessToken_UniqueIDs(t *testing.T) {
	a, err := jwt.GenerateAccessToken(1, "BORROWER", secret, time.Hour)
	require.NoError(t, err)
	b, err := jwt.GenerateAccessToken(1, "BORROWER", secret, time.Hour)
	require.NoError(t, err)

	ca, err := jwt.ValidateAccessToken(a, secret)
	require.NoError(t, err)
	cb, err := jwt.ValidateAccessToken(b, secret)
	require.NoError(t, err)

	assert.NotEqual(t, ca.ID, cb.ID)
}

func Test_ValidateAccessToken_Rejects(t *testing.T) {
	valid, err := jwt.GenerateAccessToken(7, "BORROWER", secret, time.Hour)
	require.NoError(t, err)
	expired, err := jwt.GenerateAccessToken(7, "BORROWER", secret, -time.Minute)
	require.NoError(t, err)

	foreignIssuer, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		UserID: 7,
		Role:   "ADMIN",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{UserID: 7}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "expired", token: expired, secret: secret, wantErr: jwt.ErrTokenExpired},
		{name: "wrong_secret", token: valid, secret: "other", wantErr: jwt.ErrTokenInvalid},
		{name: "garbage", token: "not-a-token", secret: secret, wantErr: jwt.ErrTokenInvalid},
		{name: "foreign_issuer", token: foreignIssuer, secret: secret, wantErr: jwt.ErrTokenInvalid},
		{name: "alg_none", token: unsigned, secret: secret, wantErr: jwt.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwt.ValidateAccessToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}
