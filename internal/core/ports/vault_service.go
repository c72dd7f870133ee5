package ports

import (
	"context"

	"github.com/securepass/securepass/internal/core/domain"
)

// CreateEntryInput carries the data of a new vault entry.
type CreateEntryInput struct {
	Label  string
	Secret string
}

// UpdateEntryInput carries a partial update. Nil fields are left unchanged.
type UpdateEntryInput struct {
	Label  *string
	Secret *string
}

// ListEntriesInput selects one page of the caller's entries. PageIndex is
// zero-based.
type ListEntriesInput struct {
	PageIndex int
	PageSize  int
}

// VaultService defines the owner-scoped vault use cases. callerAccountID is
// the identity already resolved by the authentication boundary.
type VaultService interface {
	CreateEntry(ctx context.Context, input CreateEntryInput, callerAccountID string) (*domain.VaultEntryView, error)
	ListEntries(ctx context.Context, input ListEntriesInput, callerAccountID string) (*domain.Page[domain.VaultEntryView], error)
	GetEntry(ctx context.Context, id, callerAccountID string) (*domain.VaultEntryView, error)
	UpdateEntry(ctx context.Context, id string, input UpdateEntryInput, callerAccountID string) (*domain.VaultEntryView, error)
	DeleteEntry(ctx context.Context, id, callerAccountID string) error
}
