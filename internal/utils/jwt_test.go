package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborly/forum/internal/models"
)

const (
	testSecret          = "test-secret-key-for-jwt-testing"
	testWrongSecret     = "wrong-secret-key-for-jwt-testing"
	testTokenDuration   = 1 * time.Hour
	testExpiredDuration = -1 * time.Hour
)

func createTestUser(isAdmin bool) *models.User {
	return &models.User{
		ID:       42,
		Username: "testuser",
		IsAdmin:  isAdmin,
	}
}

func TestGenerateToken_Success(t *testing.T) {
	user := createTestUser(false)

	token, err := GenerateToken(user, testSecret, testTokenDuration)

	require.NoError(t, err, "GenerateToken should not return error for valid input")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestValidateToken_Success(t *testing.T) {
	user := createTestUser(false)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	claims, err := ValidateToken(token, testSecret)

	require.NoError(t, err, "ValidateToken should not return error for valid token")
	assert.NotNil(t, claims, "Claims should not be nil")
	assert.Equal(t, user.ID, claims.UserID, "UserID should match")
	assert.Equal(t, user.Username, claims.Username, "Username should match")
	assert.False(t, claims.IsAdmin, "Resident token should not carry the admin claim")
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()), "Token should not be expired")
}

func TestValidateToken_AdminClaim(t *testing.T) {
	// The admin capability is captured at issuance. A token minted for
	// an admin keeps claiming admin until it expires, even if the row
	// changes underneath it.
	admin := createTestUser(true)
	token, err := GenerateToken(admin, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin, "Admin token should carry the admin claim")
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	user := createTestUser(false)
	token, err := GenerateToken(user, testSecret, testExpiredDuration)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	claims, err := ValidateToken(token, testSecret)

	assert.Error(t, err, "ValidateToken should return error for expired token")
	assert.Nil(t, claims)
	assert.Equal(t, ErrExpiredToken, err, "Expired token should map to ErrExpiredToken")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := createTestUser(false)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testWrongSecret)

	assert.Error(t, err, "ValidateToken should reject token signed with another secret")
	assert.Nil(t, claims)
}

func TestValidateToken_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"not-a-jwt",
		"aaa.bbb",
		"aaa.bbb.ccc.ddd",
	}

	for _, token := range malformed {
		t.Run(token, func(t *testing.T) {
			claims, err := ValidateToken(token, testSecret)
			assert.Error(t, err, "ValidateToken should reject malformed tokens")
			assert.Nil(t, claims)
		})
	}
}
