// Package security holds the credential hasher and token issuer used by the
// authentication service.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIssuer signs HS256 access tokens. The subject is the account id.
type JWTIssuer struct {
	secret []byte
	issuer string
}

func NewJWTIssuer(secret, issuer string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTIssuer{secret: []byte(secret), issuer: issuer}, nil
}

// Issue mints a token carrying iss, sub, iat, exp and the extra claims.
// Registered claim names in claims are overwritten.
func (i *JWTIssuer) Issue(subject string, issuedAt, expiresAt time.Time, claims map[string]any) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	if i.issuer != "" {
		mc["iss"] = i.issuer
	}
	mc["sub"] = subject
	mc["iat"] = issuedAt.Unix()
	mc["exp"] = expiresAt.Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(i.secret)
}
