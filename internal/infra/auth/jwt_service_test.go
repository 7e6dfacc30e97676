package auth

import (
	"testing"
	"time"

	"blush/config"
	"blush/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig(access, refresh string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = access
	cfg.SecretKey.Refresh = refresh

	return cfg
}

func TestJWTService_IssueAndVerifyTokens(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(
		"test_access_secret_key_very_long_for_testing",
		"test_refresh_secret_key_very_long_for_testing",
	))
	require.NoError(t, err)

	userID := uuid.New()

	accessToken, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	refreshToken, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	accessClaims, err := svc.Verify(accessToken, service.TokenClassAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, service.TokenClassAccess, accessClaims.Class)
	assert.WithinDuration(t, time.Now().Add(svc.AccessTokenDuration()), accessClaims.ExpireAt, 5*time.Second)

	refreshClaims, err := svc.Verify(refreshToken, service.TokenClassRefresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenClassRefresh, refreshClaims.Class)
}

func TestJWTService_ClassMismatch(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("access-secret", "refresh-secret"))
	require.NoError(t, err)

	userID := uuid.New()

	refreshToken, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)

	// A refresh token presented as an access token must be rejected, and the
	// error must not reveal which check failed.
	claims, err := svc.Verify(refreshToken, service.TokenClassAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.EqualError(t, err, "invalid or expired token")

	accessToken, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)

	claims, err = svc.Verify(accessToken, service.TokenClassRefresh)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_SameSecretDifferentClass(t *testing.T) {
	// Even with identical secrets the type claim keeps the classes apart.
	svc, err := NewJWTService(newTestJWTConfig("shared-secret", "shared-secret"))
	require.NoError(t, err)

	refreshToken, err := svc.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(refreshToken, service.TokenClassAccess)
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestJWTConfig("issuer-access", "issuer-refresh"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestJWTConfig("other-access", "other-refresh"))
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := verifier.Verify(token, service.TokenClassAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		accessSecret:  "access-secret",
		refreshSecret: "refresh-secret",
		accessTTL:     -time.Minute,
		refreshTTL:    -time.Minute,
	}

	token, err := svc.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.Verify(token, service.TokenClassAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.EqualError(t, err, "invalid or expired token")
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("access-secret", "refresh-secret"))
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.Verify(token, service.TokenClassAccess)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

func TestJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(newTestJWTConfig("", "refresh-secret"))
	assert.Error(t, err)

	_, err = NewJWTService(newTestJWTConfig("access-secret", ""))
	assert.Error(t, err)
}

func TestJWTService_Durations(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("access-secret", "refresh-secret"))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, svc.AccessTokenDuration())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenDuration())
}

func TestJWTService_HashToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("access-secret", "refresh-secret"))
	require.NoError(t, err)

	first := svc.HashToken("some-raw-token")
	second := svc.HashToken("some-raw-token")
	other := svc.HashToken("another-raw-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	// hex-encoded SHA-256
	assert.Len(t, first, 64)
	assert.NotContains(t, first, "some-raw-token")
}
