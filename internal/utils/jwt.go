package utils // token helpers shared by auth handlers and middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by ParseAuthToken for any token that
// fails verification: bad signature, wrong algorithm, malformed
// claims or expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthToken is a signed JWT plus its expiry. The token is the only
// credential the API issues; there is no server-side session store.
type AuthToken struct {
	Token string    // serialized JWT
	Exp   time.Time // UTC expiration time
}

// NewAuthToken builds and signs an HS256 JWT for a user. Claims are
// sub (user ID), role, exp and iat. ttlDays controls validity; the
// default configuration issues 7-day tokens.
func NewAuthToken(secret string, userID uint64, role string, ttlDays int) (AuthToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// ParseAuthToken verifies a serialized JWT and extracts the subject
// (user ID) and role claims. Tokens signed with a non-HMAC method are
// rejected regardless of the secret.
func ParseAuthToken(secret, raw string) (uint64, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	var userID uint64
	switch sub := claims["sub"].(type) {
	case float64:
		userID = uint64(sub)
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return 0, "", ErrInvalidToken
		}
		userID = n
	default:
		return 0, "", ErrInvalidToken
	}
	if userID == 0 {
		return 0, "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}
