package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestVerifyPassword(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPassword(password)
	assert.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		isValid := VerifyPassword(hash, password)
		assert.True(t, isValid)
	})

	t.Run("wrong password", func(t *testing.T) {
		isValid := VerifyPassword(hash, "wrongpassword")
		assert.False(t, isValid)
	})

	t.Run("different hash each time", func(t *testing.T) {
		hash2, err := HashPassword(password)
		assert.NoError(t, err)
		assert.NotEqual(t, hash, hash2)
		assert.True(t, VerifyPassword(hash2, password))
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"strong password", "Password123", nil},
		{"too short", "Pw1", ErrPasswordTooShort},
		{"exactly seven characters", "Passw0r", ErrPasswordTooShort},
		{"no uppercase", "password123", ErrPasswordNoUpper},
		{"no lowercase", "PASSWORD123", ErrPasswordNoLower},
		{"no number", "PasswordOnly", ErrPasswordNoNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
