package domain

import "time"

const (
	// RoleUser is the only role claim issued to account holders.
	RoleUser = "USER"

	// TokenLifetime is the fixed validity of an issued access token.
	TokenLifetime = 24 * time.Hour

	// MaxEmailLength bounds Account.Email.
	MaxEmailLength = 100

	// MaxCredentialBytes is the longest input bcrypt accepts.
	MaxCredentialBytes = 72
)

// Account models a registered user. CredentialHash is never serialized.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CredentialHash string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PublicAccount is what registration hands back to callers.
type PublicAccount struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult carries an issued token and its lifetime in milliseconds.
type LoginResult struct {
	Token           string
	ExpiresInMillis int64
}
