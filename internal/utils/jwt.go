package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA‑256 hashing for token ids
    "encoding/hex"  // hex encoding and decoding functions
    "errors"
    "fmt"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrMalformedToken is returned by ParseAuthToken when the signature, the
// algorithm or the claims do not check out.
var ErrMalformedToken = errors.New("malformed token")

// AuthToken is a signed HS256 JWT handed to a client after login. The ID
// is the random jti claim; only its SHA‑256 is persisted so the token can be
// revoked server side. Tokens carry no expiry.
type AuthToken struct {
    Token  string // the serialized JWT string
    ID     string // jti claim
    UserID uint64 // sub claim
}

// NewAuthToken signs a token for userID with a fresh random jti.
func NewAuthToken(secret string, userID uint64) (AuthToken, error) {
    jti, err := randomHex(24)
    if err != nil {
        return AuthToken{}, err
    }
    claims := jwt.RegisteredClaims{
        Subject:  strconv.FormatUint(userID, 10),
        ID:       jti,
        IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AuthToken{}, err
    }
    return AuthToken{Token: signed, ID: jti, UserID: userID}, nil
}

// ParseAuthToken verifies the signature of raw and returns its claims.
// Revocation is not checked here; that needs the token store.
func ParseAuthToken(secret, raw string) (AuthToken, error) {
    var claims jwt.RegisteredClaims
    _, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil {
        return AuthToken{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
    }
    uid, err := strconv.ParseUint(claims.Subject, 10, 64)
    if err != nil || uid == 0 || claims.ID == "" {
        return AuthToken{}, ErrMalformedToken
    }
    return AuthToken{Token: raw, ID: claims.ID, UserID: uid}, nil
}

// HashTokenID returns the SHA‑256 hash of a jti as a hex string. This is
// the value stored in auth_tokens.
func HashTokenID(id string) string {
    sum := sha256.Sum256([]byte(id))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
