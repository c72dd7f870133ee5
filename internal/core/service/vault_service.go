package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

const entryNotFoundMessage = "entry not found"

// VaultService implements the owner-scoped vault use cases.
type VaultService struct {
	entries  ports.VaultRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewVaultService(entries ports.VaultRepository, accounts ports.AccountRepository, logger zerolog.Logger) *VaultService {
	return &VaultService{entries: entries, accounts: accounts, logger: logger}
}

// CreateEntry stores a new entry owned by the caller.
func (s *VaultService) CreateEntry(ctx context.Context, in ports.CreateEntryInput, callerAccountID string) (*domain.VaultEntryView, error) {
	if strings.TrimSpace(in.Label) == "" {
		return nil, domain.Validation("label cannot be blank")
	}
	if strings.TrimSpace(in.Secret) == "" {
		return nil, domain.Validation("password cannot be blank")
	}

	if _, err := s.accounts.FindByID(ctx, callerAccountID); err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.NotFound("account not found")
		}
		s.logger.Error().Err(err).Str("account_id", callerAccountID).Msg("create entry: account lookup failed")
		return nil, domain.StoreFailure(err)
	}

	saved, err := s.entries.Save(ctx, &domain.VaultEntry{
		ID:      uuid.NewString(),
		Label:   in.Label,
		Secret:  in.Secret,
		OwnerID: callerAccountID,
	})
	if err != nil {
		// The owner vanished between the lookup and the insert.
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.NotFound("account not found")
		}
		s.logger.Error().Err(err).Str("account_id", callerAccountID).Msg("create entry: save failed")
		return nil, domain.StoreFailure(err)
	}

	s.logger.Info().Str("entry_id", saved.ID).Str("account_id", callerAccountID).Msg("entry created")
	view := saved.View()
	return &view, nil
}

// ListEntries returns one page of the caller's entries.
func (s *VaultService) ListEntries(ctx context.Context, in ports.ListEntriesInput, callerAccountID string) (*domain.Page[domain.VaultEntryView], error) {
	if in.PageIndex < 0 {
		return nil, domain.Validation("page index must not be negative")
	}
	if in.PageSize < 1 {
		return nil, domain.Validation("page size must be at least 1")
	}

	pageIndex := in.PageIndex
	if pageIndex > math.MaxInt/in.PageSize {
		// The offset does not fit in an int; no owner has that many
		// entries, so only the total is needed.
		pageIndex = 0
	}
	entries, total, err := s.entries.FindPageByOwner(ctx, callerAccountID, pageIndex, in.PageSize)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", callerAccountID).Msg("list entries failed")
		return nil, domain.StoreFailure(err)
	}

	if pageIndex != in.PageIndex {
		entries = nil
	}
	views := make([]domain.VaultEntryView, len(entries))
	for i, e := range entries {
		views[i] = e.View()
	}
	page := domain.NewPage(views, in.PageIndex, in.PageSize, total)
	return &page, nil
}

// GetEntry returns the entry only when the caller owns it; otherwise the
// entry is reported as absent.
func (s *VaultService) GetEntry(ctx context.Context, id, callerAccountID string) (*domain.VaultEntryView, error) {
	entry, err := s.entries.FindByIDAndOwner(ctx, id, callerAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.NotFound(entryNotFoundMessage)
		}
		s.logger.Error().Err(err).Str("entry_id", id).Msg("get entry failed")
		return nil, domain.StoreFailure(err)
	}

	view := entry.View()
	return &view, nil
}

// UpdateEntry applies the provided fields. Unlike GetEntry and DeleteEntry, an
// entry owned by someone else is reported as forbidden rather than absent.
func (s *VaultService) UpdateEntry(ctx context.Context, id string, in ports.UpdateEntryInput, callerAccountID string) (*domain.VaultEntryView, error) {
	if in.Label != nil && strings.TrimSpace(*in.Label) == "" {
		return nil, domain.Validation("label cannot be blank")
	}
	if in.Secret != nil && strings.TrimSpace(*in.Secret) == "" {
		return nil, domain.Validation("password cannot be blank")
	}

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.NotFound(entryNotFoundMessage)
		}
		s.logger.Error().Err(err).Str("entry_id", id).Msg("update entry: lookup failed")
		return nil, domain.StoreFailure(err)
	}

	if entry.OwnerID != callerAccountID {
		s.logger.Warn().Str("entry_id", id).Str("account_id", callerAccountID).Msg("update entry: caller is not the owner")
		return nil, domain.Forbidden("you are not allowed to update this entry")
	}

	if in.Label != nil {
		entry.Label = *in.Label
	}
	if in.Secret != nil {
		entry.Secret = *in.Secret
	}

	saved, err := s.entries.Save(ctx, entry)
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", id).Msg("update entry: save failed")
		return nil, domain.StoreFailure(err)
	}

	s.logger.Info().Str("entry_id", id).Msg("entry updated")
	view := saved.View()
	return &view, nil
}

// DeleteEntry removes the entry when the caller owns it.
func (s *VaultService) DeleteEntry(ctx context.Context, id, callerAccountID string) error {
	owned, err := s.entries.ExistsByIDAndOwner(ctx, id, callerAccountID)
	if err != nil {
		s.logger.Error().Err(err).Str("entry_id", id).Msg("delete entry: lookup failed")
		return domain.StoreFailure(err)
	}
	if !owned {
		return domain.NotFound(entryNotFoundMessage)
	}

	if err := s.entries.Delete(ctx, &domain.VaultEntry{ID: id, OwnerID: callerAccountID}); err != nil {
		s.logger.Error().Err(err).Str("entry_id", id).Msg("delete entry failed")
		return domain.StoreFailure(err)
	}

	s.logger.Info().Str("entry_id", id).Str("account_id", callerAccountID).Msg("entry deleted")
	return nil
}
