package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "school-inventory/pkg/errors"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, issued, err := svc.GenerateSessionToken(7, "Administrator")
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "Administrator", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, time.Hour, svc.GetSessionTTL())
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("other", time.Hour).GenerateSessionToken(1, "Standard")
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := &jwtService{SecretKey: "secret", SessionExp: time.Minute, now: func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}}
	token, _, err := svc.GenerateSessionToken(1, "Standard")
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsNoneAlg(t *testing.T) {
	claims := &SessionClaims{UserID: 1, Role: "Administrator", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
