package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-health-agent/internal/config"
	"github.com/vfg2006/meta-health-agent/pkg/apiErrors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(config.Auth{Secret: "test-secret"})
	require.NoError(t, err)
	return service
}

func TestNewService_RequiresSecret(t *testing.T) {
	service, err := NewService(config.Auth{})

	assert.Nil(t, service)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAndValidateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.IssueToken("ops", []string{"123"}, time.Hour)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.CanAccess("123"))
	assert.False(t, claims.CanAccess("456"))
}

func TestValidateToken_Expired(t *testing.T) {
	service := newTestService(t)
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	token, err := service.IssueToken("ops", nil, time.Hour)
	require.NoError(t, err)

	service.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = service.ValidateToken(token)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpiredToken)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, apiErrors.ErrExpiredToken, authErr.Code)
	assert.True(t, IsAuthorizationError(err))
}

func TestValidateToken_Invalid(t *testing.T) {
	service := newTestService(t)

	other, err := NewService(config.Auth{Secret: "other-secret"})
	require.NoError(t, err)
	foreign, err := other.IssueToken("ops", nil, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, token := range []string{"not-a-token", foreign, unsigned} {
		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
