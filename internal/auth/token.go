package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// DefaultTokenTTL is the session token lifetime when none is configured
const DefaultTokenTTL = 24 * time.Hour

// Claims carries the session token payload. The subject is the user id;
// the username rides along for log readability only, authorization
// always reloads the user.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer mints and parses signed session tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer. A zero ttl falls back to
// DefaultTokenTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// IssueToken mints a signed token for the user
func (i *Issuer) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns the user id it names.
// Expired, malformed or foreign-signed tokens all report
// domain.ErrAuthRequired.
func (i *Issuer) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrAuthRequired
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrAuthRequired
	}
	return claims.Subject, nil
}
