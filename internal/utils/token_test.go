package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-for-reset-tokens"

func TestGenerateResetToken_Success(t *testing.T) {
	// Arrange
	userID := uuid.NewString()

	// Act
	token, err := GenerateResetToken(userID, testSecretKey, 15*time.Minute)

	// Assert
	require.NoError(t, err, "GenerateResetToken should not return error")
	assert.NotEmpty(t, token, "Token should not be empty")
}

func TestValidateResetToken_Success(t *testing.T) {
	// Arrange
	userID := uuid.NewString()
	token, err := GenerateResetToken(userID, testSecretKey, 15*time.Minute)
	require.NoError(t, err, "Setup: GenerateResetToken should not fail")

	// Act
	claims, err := ValidateResetToken(token, testSecretKey)

	// Assert
	require.NoError(t, err, "ValidateResetToken should accept a fresh token")
	assert.Equal(t, userID, claims.UserID, "Claims should carry the original user id")
}

func TestValidateResetToken_Expired(t *testing.T) {
	// Arrange
	userID := uuid.NewString()
	token, err := GenerateResetToken(userID, testSecretKey, -1*time.Minute)
	require.NoError(t, err, "Setup: GenerateResetToken should not fail")

	// Act
	claims, err := ValidateResetToken(token, testSecretKey)

	// Assert
	assert.Error(t, err, "Expired token should be rejected")
	assert.Nil(t, claims)
}

func TestValidateResetToken_WrongSecret(t *testing.T) {
	// Arrange
	token, err := GenerateResetToken(uuid.NewString(), testSecretKey, 15*time.Minute)
	require.NoError(t, err)

	// Act
	claims, err := ValidateResetToken(token, "a-different-secret")

	// Assert
	assert.Error(t, err, "Token signed with another secret should be rejected")
	assert.Nil(t, claims)
}

func TestValidateResetToken_Malformed(t *testing.T) {
	malformedTokens := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	}

	for _, tokenString := range malformedTokens {
		claims, err := ValidateResetToken(tokenString, testSecretKey)
		assert.Error(t, err, "Malformed token %q should be rejected", tokenString)
		assert.Nil(t, claims)
	}
}

func TestValidateResetToken_Tampered(t *testing.T) {
	// Arrange
	token, err := GenerateResetToken(uuid.NewString(), testSecretKey, 15*time.Minute)
	require.NoError(t, err)
	tampered := token[:len(token)-2] + "xx"

	// Act
	claims, err := ValidateResetToken(tampered, testSecretKey)

	// Assert
	assert.Error(t, err, "Tampered signature should be rejected")
	assert.Nil(t, claims)
}
