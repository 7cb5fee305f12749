package token_test

import (
	"testing"
	"time"

	"shopx/pkg/token"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

const (
	testSecret   = "test_jwt_secret"
	testIssuer   = "shopx-api"
	testAudience = "shopx-clients"
)

func newTestManager() *token.Manager {
	return token.NewManager(testSecret, testIssuer, testAudience)
}

func TestManager_RoundTrip(t *testing.T) {
	manager := newTestManager()

	signed, err := manager.Generate(42, "client")
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := manager.Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, testAudience, claims.Audience)

	// One day validity from issuance.
	assert.Equal(t, claims.IssuedAt+int64((24*time.Hour).Seconds()), claims.ExpiresAt)
}

func TestManager_SigningMethodIsHS512(t *testing.T) {
	manager := newTestManager()

	signed, err := manager.Generate(1, "admin")
	assert.NoError(t, err)

	parsed, _, err := new(jwt.Parser).ParseUnverified(signed, &token.Claims{})
	assert.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Header["alg"])
}

func TestManager_KeyRotationInvalidatesTokens(t *testing.T) {
	manager := newTestManager()

	signed, err := manager.Generate(7, "seller")
	assert.NoError(t, err)

	rotated := token.NewManager("another_secret", testIssuer, testAudience)
	_, err = rotated.Verify(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	manager := newTestManager()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS512, &token.Claims{
		UserID: 7,
		Role:   "client",
		StandardClaims: jwt.StandardClaims{
			Issuer:    testIssuer,
			Audience:  testAudience,
			IssuedAt:  time.Now().Add(-25 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	})
	signed, err := expired.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = manager.Verify(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestManager_RejectsWrongIssuerOrAudience(t *testing.T) {
	manager := newTestManager()

	for _, tc := range []struct {
		name     string
		issuer   string
		audience string
	}{
		{"wrong issuer", "someone-else", testAudience},
		{"wrong audience", testIssuer, "other-clients"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			foreign := token.NewManager(testSecret, tc.issuer, tc.audience)
			signed, err := foreign.Generate(7, "client")
			assert.NoError(t, err)

			_, err = manager.Verify(signed)
			assert.Error(t, err)
		})
	}
}

func TestManager_RejectsUnsignedAlgorithm(t *testing.T) {
	manager := newTestManager()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &token.Claims{
		UserID: 1,
		Role:   "admin",
		StandardClaims: jwt.StandardClaims{
			Issuer:    testIssuer,
			Audience:  testAudience,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = manager.Verify(signed)
	assert.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Verify("not.a.token")
	assert.Error(t, err)
	_, err = manager.Verify("")
	assert.Error(t, err)
}
