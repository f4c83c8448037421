package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token stays valid. There is no
// revocation list; logout is client-side only.
const TokenValidity = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims binds a token to a user id alongside the registered expiry.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"id"`
}

// IssueToken signs an HS256 token for the user, expiring TokenValidity
// from now.
func IssueToken(userID uint, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

// UserIDFromToken verifies signature and expiry and returns the subject
// user id. Validity is determined purely by the token itself; no store
// lookup happens here.
func UserIDFromToken(tokenString string, secret []byte) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
