package token

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Validity window of issued tokens. Rotating the signing key invalidates
// every outstanding token immediately.
const tokenTTL = 24 * time.Hour

// Claims carried by a ShopX identity token: the user id and role, plus the
// standard issuer/audience/expiry fields.
type Claims struct {
	UserID int    `json:"id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Manager issues and verifies signed identity tokens. Tokens are the sole
// mechanism request handlers use to determine caller identity and role; no
// server-side session state exists.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewManager creates a Manager signing with the given symmetric key.
func NewManager(secret, issuer, audience string) *Manager {
	return &Manager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      tokenTTL,
	}
}

// Generate signs a token asserting the given user id and role, valid for
// one day from issuance.
func (m *Manager) Generate(userID int, role string) (string, error) {
	now := jwt.TimeFunc()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			Issuer:    m.issuer,
			Audience:  m.audience,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token string, returning its claims. Any
// failure (bad signature, expiry, wrong issuer or audience) yields an opaque
// invalid-token error.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.VerifyIssuer(m.issuer, true) || !claims.VerifyAudience(m.audience, true) {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
