package ports

import (
	"context"

	"github.com/securepass/securepass/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name       string
	Email      string
	Credential string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.PublicAccount, error)
	Login(ctx context.Context, email, credential string) (*domain.LoginResult, error)
	DeleteAccount(ctx context.Context, callerAccountID string) error
}
