package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	user := models.User{
		ID:       uuid.New(),
		Username: "jane",
		Email:    "jane@example.com",
		Role:     "instructor",
	}

	signed, err := generateToken(user, "test-secret")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, "instructor", claims["role"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}

func TestGenerateTokenWrongSecretRejected(t *testing.T) {
	user := models.User{ID: uuid.New(), Email: "jane@example.com", Role: "student"}

	signed, err := generateToken(user, "secret-a")
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}

func TestUserResponseOmitsCredential(t *testing.T) {
	user := models.User{
		ID:       uuid.New(),
		Username: "jane",
		Email:    "jane@example.com",
		Password: "$2a$10$hash",
		Role:     "student",
	}

	resp := toUserResponse(user)
	assert.Equal(t, user.Username, resp.Username)
	assert.Equal(t, user.Email, resp.Email)
	// UserResponse has no credential field at all; this documents the shape.
	assert.NotContains(t, []string{resp.ID, resp.Username, resp.Email, resp.Role}, user.Password)
}
