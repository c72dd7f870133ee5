package ports

import (
	"context"

	"github.com/securepass/securepass/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
// Lookups return domain.ErrNoRecord when nothing matches.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserts or replaces the account. It returns domain.ErrDuplicate
	// when the email is already taken by another account.
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// Delete removes the account and every vault entry it owns in one
	// atomic unit.
	Delete(ctx context.Context, account *domain.Account) error
}
