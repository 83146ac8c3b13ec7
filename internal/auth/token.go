package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Claims is the identity assertion carried by every authenticated request.
// The username lives in the registered "sub" claim.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Username() string { return c.Subject }

// TokenCodec signs and verifies access tokens with a secret and lifetime fixed
// at process start. The signing algorithm is pinned to HS256; tokens whose
// header declares anything else fail verification regardless of signature.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenCodec(secret, issuer string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration { return tc.ttl }

func (tc *TokenCodec) Encode(username string, userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tc.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (tc *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tc.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid || claims.Subject == "" || claims.UserID == uuid.Nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
