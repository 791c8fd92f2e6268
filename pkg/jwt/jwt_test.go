package jwt

import (
	"testing"

	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, constant.RolePetOwner, constant.PlatformIdWeb, testSecret, 24)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserId)
	assert.Equal(t, constant.RolePetOwner, claims.Role)
	assert.Equal(t, constant.PlatformIdWeb, claims.PlatformId)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	token, err := GenerateToken(42, constant.RoleAdmin, constant.PlatformIdAdmin, testSecret, 24)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken(token, "another-secret")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken("not.a.token", testSecret)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := GenerateToken(42, constant.RoleAdmin, constant.PlatformIdAdmin, testSecret, -1)
		require.NoError(t, err)

		_, err = ParseToken(expired, testSecret)
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		bad, err := GenerateToken(42, constant.Role("intruder"), constant.PlatformIdWeb, testSecret, 24)
		require.NoError(t, err)

		_, err = ParseToken(bad, testSecret)
		assert.Error(t, err)
	})
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateToken(42, constant.RolePetOwner, constant.PlatformIdWeb, testSecret, 24)
	require.NoError(t, err)

	t.Run("matching identity", func(t *testing.T) {
		claims, err := ValidateToken(token, testSecret, 42, constant.PlatformIdWeb)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserId)
	})

	t.Run("wrong user", func(t *testing.T) {
		_, err := ValidateToken(token, testSecret, 43, constant.PlatformIdWeb)
		assert.Error(t, err)
	})

	t.Run("wrong platform", func(t *testing.T) {
		_, err := ValidateToken(token, testSecret, 42, constant.PlatformIdAdmin)
		assert.Error(t, err)
	})
}
