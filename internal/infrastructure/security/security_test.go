package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, h.Matches("correct horse", hash))
	assert.False(t, h.Matches("wrong horse", hash))
	assert.False(t, h.Matches("correct horse", "not-a-hash"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestJWTIssuer_Issue(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTIssuer("top-secret", "securepass")
	require.NoError(t, err)

	iat := time.Now().Truncate(time.Second)
	exp := iat.Add(24 * time.Hour)
	tok, err := issuer.Issue("acc-1", iat, exp, map[string]any{"role": "USER", "sub": "spoofed"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("top-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "acc-1", sub)

	iss, err := claims.GetIssuer()
	require.NoError(t, err)
	assert.Equal(t, "securepass", iss)

	gotExp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, exp.Unix(), gotExp.Unix())

	gotIat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, iat.Unix(), gotIat.Unix())

	assert.Equal(t, "USER", claims["role"])
}

func TestJWTIssuer_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTIssuer("right", "")
	require.NoError(t, err)
	tok, err := issuer.Issue("acc-2", time.Now(), time.Now().Add(time.Hour), nil)
	require.NoError(t, err)

	_, err = jwt.Parse(tok, func(*jwt.Token) (interface{}, error) { return []byte("wrong"), nil })
	assert.Error(t, err)
}

func TestNewJWTIssuer_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTIssuer("", "securepass")
	assert.Error(t, err)
}
