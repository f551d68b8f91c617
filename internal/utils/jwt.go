package utils // utils provides helper functions for token creation and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

// AccessToken is a signed JWT along with its expiry. The token is carried in
// the Authorization header as "Bearer <token>" on every protected endpoint.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claims are
// sub (user id), role, exp and iat. The TTL is given in minutes; the login
// flow uses 120 for a two-hour session.
func NewAccessToken(secret string, userID uint64, role model.Role, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role.String(),
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
