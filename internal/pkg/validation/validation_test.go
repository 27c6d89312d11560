package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32"`
	Type     string `json:"type" validate:"required,oneof=ADMIN BORROWER"`
	Quantity *int   `json:"available_quantity" validate:"required,gt=0"`
}

func Test_Struct(t *testing.T) {
	one, zero := 1, 0

	tests := []struct {
		name    string
		input   signup
		wantErr string
	}{
		{
			name:  "valid",
			input: signup{Name: "Ada", Email: "ada@example.com", Password: "password123", Type: "ADMIN", Quantity: &one},
		},
		{
			name:    "missing_name",
			input:   signup{Email: "ada@example.com", Password: "password123", Type: "ADMIN", Quantity: &one},
			wantErr: "name is required",
		},
		{
			name:    "bad_email",
			input:   signup{Name: "Ada", Email: "ada", Password: "password123", Type: "ADMIN", Quantity: &one},
			wantErr: "email must be a valid email",
		},
		{
			name:    "short_password",
			input:   signup{Name: "Ada", Email: "ada@example.com", Password: "short", Type: "ADMIN", Quantity: &one},
			wantErr: "password must be at least 8",
		},
		{
			name:    "unknown_type",
			input:   signup{Name: "Ada", Email: "ada@example.com", Password: "password123", Type: "GUEST", Quantity: &one},
			wantErr: "type must be one of the following: ADMIN, BORROWER",
		},
		{
			name:    "zero_quantity",
			input:   signup{Name: "Ada", Email: "ada@example.com", Password: "password123", Type: "ADMIN", Quantity: &zero},
			wantErr: "available_quantity must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func Test_Struct_JoinsMessages(t *testing.T) {
	err := Struct(signup{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name is required; email is required")
}
