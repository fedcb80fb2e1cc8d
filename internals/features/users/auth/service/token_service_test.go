package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capstonehub_backend/internals/configs"
	"capstonehub_backend/internals/constants"
	userModel "capstonehub_backend/internals/features/users/user/model"
)

func setTestSecrets(t *testing.T) {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	t.Cleanup(func() {
		configs.JWTSecret = ""
		configs.JWTRefreshSecret = ""
	})
}

func TestGenerateAccessTokenClaims(t *testing.T) {
	setTestSecrets(t)

	user := &userModel.UserModel{
		ID:       uuid.New(),
		UserName: "alice",
		Role:     constants.RoleStudent,
	}

	signed, err := GenerateAccessToken(user)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, constants.RoleStudent, claims["role"])
	assert.Equal(t, "alice", claims["user_name"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), exp, time.Minute)
}

func TestTokenExpiryReadsExp(t *testing.T) {
	setTestSecrets(t)

	user := &userModel.UserModel{ID: uuid.New(), UserName: "bob", Role: constants.RoleAdvisor}
	signed, err := GenerateAccessToken(user)
	require.NoError(t, err)

	exp := TokenExpiry(signed)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), exp, time.Minute)
}

func TestRefreshTokenHashIsDeterministic(t *testing.T) {
	setTestSecrets(t)

	token, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.Len(t, token, 64)

	first, err := ComputeRefreshHash(token)
	require.NoError(t, err)
	second, err := ComputeRefreshHash(token)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	otherHash, err := ComputeRefreshHash(other)
	require.NoError(t, err)
	assert.NotEqual(t, first, otherHash)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hashed, "s3cret-pass"))
	assert.False(t, CheckPassword(hashed, "wrong-pass"))
}
