package ports

import (
	"context"

	"github.com/securepass/securepass/internal/core/domain"
)

// VaultRepository defines persistence operations for vault entries.
// Lookups return domain.ErrNoRecord when nothing matches.
type VaultRepository interface {
	FindByID(ctx context.Context, id string) (*domain.VaultEntry, error)
	// FindByIDAndOwner matches only when the entry exists and belongs to ownerID.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.VaultEntry, error)
	ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error)
	// FindPageByOwner returns one page of the owner's entries in store order
	// and the owner's total entry count.
	FindPageByOwner(ctx context.Context, ownerID string, pageIndex, pageSize int) ([]*domain.VaultEntry, int64, error)
	// Save inserts or replaces the entry. Inserting for an owner that does not
	// exist fails with domain.ErrNoRecord.
	Save(ctx context.Context, entry *domain.VaultEntry) (*domain.VaultEntry, error)
	Delete(ctx context.Context, entry *domain.VaultEntry) error
}
