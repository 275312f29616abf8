package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims mirrors the session artifact issued by the identity provider.
// The role assignment is authoritative here: it is baked into the signed
// token by the provider's access-token hook and is not mutable client-side.
type Claims struct {
	UserID   string `json:"sub,omitempty"`
	Email    string `json:"email,omitempty"`
	UserRole string `json:"user_role,omitempty"`
	jwt.RegisteredClaims
}

// Role returns the role claim, or "" when absent or unknown.
func (c *Claims) Role() models.Role {
	role := models.Role(c.UserRole)
	if !role.Valid() {
		return ""
	}
	return role
}

// TokenReader decodes and verifies session tokens. Decoding happens locally
// (no network round-trip), but the signature and expiry are always checked;
// an unverifiable token is treated the same as no token.
type TokenReader struct {
	secretKey []byte
}

func NewTokenReader(secretKey string) *TokenReader {
	return &TokenReader{secretKey: []byte(secretKey)}
}

// Parse validates the token and returns its claims.
func (r *TokenReader) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return r.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

// Sign issues a token with the given identity and role. Used by tests and
// by the admin CLI; production tokens come from the identity provider.
func (r *TokenReader) Sign(userID, email string, role models.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   userID,
		Email:    email,
		UserRole: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.secretKey)
}
