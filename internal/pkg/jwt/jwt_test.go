package jwt

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	employeeID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken(auth.Claims{UserID: "user-1", EmployeeID: &employeeID})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, false, claims["is_admin"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon")

	_, _, err := svc.GenerateAccessToken(auth.Claims{UserID: "user-1"})
	assert.Error(t, err)
}
