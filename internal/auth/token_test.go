package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func newTestCodec(ttl time.Duration) *TokenCodec {
	return NewTokenCodec(testSecret, "todolist-api", ttl)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(20 * time.Minute)
	userID := uuid.Must(uuid.NewV4())

	token, err := codec.Encode("alice", userID, "user")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	claims, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if claims.Username() != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username())
	}
	if claims.UserID != userID {
		t.Errorf("Expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "user" {
		t.Errorf("Expected role user, got %s", claims.Role)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := newTestCodec(-time.Minute)

	token, err := codec.Encode("alice", uuid.Must(uuid.NewV4()), "user")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = codec.Decode(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := newTestCodec(20 * time.Minute)
	other := NewTokenCodec("another-secret", "todolist-api", 20*time.Minute)

	token, err := other.Encode("alice", uuid.Must(uuid.NewV4()), "user")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = codec.Decode(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for foreign secret, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := newTestCodec(20 * time.Minute)

	_, err := codec.Decode("not.a.token")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Expected ErrTokenMalformed, got %v", err)
	}

	_, err = codec.Decode("")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Expected ErrTokenMalformed for empty token, got %v", err)
	}
}

func TestTokenCodec_RejectsForeignAlgorithm(t *testing.T) {
	codec := newTestCodec(20 * time.Minute)

	// Same secret, but signed with HS384. The codec pins HS256 and must not
	// accept the token even though the signature itself checks out.
	claims := Claims{
		UserID: uuid.Must(uuid.NewV4()),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Signing test token failed: %v", err)
	}

	_, err = codec.Decode(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for HS384 token, got %v", err)
	}
}

func TestTokenCodec_MissingIdentityClaims(t *testing.T) {
	codec := newTestCodec(20 * time.Minute)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Signing test token failed: %v", err)
	}

	_, err = codec.Decode(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for token without subject, got %v", err)
	}
}
