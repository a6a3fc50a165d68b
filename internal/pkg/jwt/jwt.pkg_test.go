package jwt

import (
	types "efood-checkout/internal/common/type"
	"testing"
	"time"

	_jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	Setup("test-secret", time.Hour)

	token, exp, err := GenerateToken(types.SessionWithAuth{SessionID: "abc123"})
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *exp, 5*time.Second)

	session, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", session.SessionID)
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	Setup("secret-a", time.Hour)
	token, _, err := GenerateToken(types.SessionWithAuth{SessionID: "abc123"})
	require.NoError(t, err)

	Setup("secret-b", time.Hour)
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsMissingSession(t *testing.T) {
	Setup("test-secret", time.Hour)

	token, err := _jwt.NewWithClaims(_jwt.SigningMethodHS256, _jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	Setup("test-secret", time.Hour)

	token, err := _jwt.NewWithClaims(_jwt.SigningMethodHS256, _jwt.MapClaims{
		"exp":          time.Now().Add(-time.Minute).Unix(),
		SessionDataKey: map[string]any{"session_id": "abc"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
