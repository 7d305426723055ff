// internal/auth/jwt.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baharkarakas/store-ratings/internal/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

type Claims struct {
	UserID int64       `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what the gate attaches to an authorized request.
type Identity struct {
	UserID int64
	Role   models.Role
}

// Issue signs an HS256 token for the user that expires after the configured TTL.
func (tm *TokenManager) Issue(userID int64, role models.Role) (string, time.Time, error) {
	now := tm.now()
	exp := now.Add(tm.ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Parse verifies signature, issuer and expiry.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// Authorize resolves an Authorization header value to an identity whose role is
// in allowed. An empty allowed set admits any authenticated role.
func (tm *TokenManager) Authorize(header string, allowed ...models.Role) (Identity, error) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Identity{}, ErrUnauthorized
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return Identity{}, ErrUnauthorized
	}
	claims, err := tm.Parse(token)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{UserID: claims.UserID, Role: claims.Role}
	if len(allowed) == 0 {
		return id, nil
	}
	for _, r := range allowed {
		if r == claims.Role {
			return id, nil
		}
	}
	return Identity{}, ErrForbidden
}
