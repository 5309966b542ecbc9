package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	tok, err := NewAuthToken("s3cret", 42)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	if tok.ID == "" || strings.Count(tok.Token, ".") != 2 {
		t.Fatalf("unexpected token %+v", tok)
	}
	got, err := ParseAuthToken("s3cret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAuthToken: %v", err)
	}
	if got.UserID != 42 || got.ID != tok.ID {
		t.Fatalf("expected user 42 jti %s, got %+v", tok.ID, got)
	}
}

func TestAuthTokenUniqueIDs(t *testing.T) {
	a, _ := NewAuthToken("k", 1)
	b, _ := NewAuthToken("k", 1)
	if a.ID == b.ID || a.Token == b.Token {
		t.Fatal("two logins produced the same token")
	}
}

func TestParseAuthTokenRejects(t *testing.T) {
	wrong, _ := NewAuthToken("wrong", 7)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "7", ID: "x"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "x"})
	noSubRaw, _ := noSub.SignedString([]byte("right"))

	tests := []struct {
		name string
		raw  string
	}{
		{"wrong secret", wrong.Token},
		{"garbage", "not-a-token"},
		{"alg none", unsigned},
		{"missing subject", noSubRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAuthToken("right", tt.raw); !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestHashTokenID(t *testing.T) {
	h := HashTokenID("abc")
	if len(h) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h))
	}
	if h != HashTokenID("abc") || h == HashTokenID("abd") {
		t.Fatal("hash is not deterministic per input")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in clear")
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Fatal("expected match")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Fatal("expected mismatch")
	}
}
