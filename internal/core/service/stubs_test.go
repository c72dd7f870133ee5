package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/securepass/securepass/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub store shared by the auth and vault tests. It mirrors the
// behaviour the real stores guarantee: unique email, owner-scoped lookups,
// insertion-ordered paging and cascading account deletion.
// ---------------------------------------------------------------------------

type stubStore struct {
	accounts  map[string]*domain.Account
	entries   map[string]*domain.VaultEntry
	order     []string
	failWith  error // if set, every call returns this error
	saveCalls int
}

func newStubStore() *stubStore {
	return &stubStore{
		accounts: make(map[string]*domain.Account),
		entries:  make(map[string]*domain.VaultEntry),
	}
}

type stubAccounts struct{ s *stubStore }
type stubEntries struct{ s *stubStore }

func (s *stubStore) Accounts() *stubAccounts { return &stubAccounts{s} }
func (s *stubStore) Entries() *stubEntries   { return &stubEntries{s} }

func (r *stubAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrNoRecord
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, a := range r.s.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrNoRecord
}

func (r *stubAccounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNoRecord) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubAccounts) Save(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for id, existing := range r.s.accounts {
		if existing.Email == a.Email && id != a.ID {
			return nil, domain.ErrDuplicate
		}
	}
	clone := *a
	now := time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.s.accounts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccounts) Delete(_ context.Context, a *domain.Account) error {
	if r.s.failWith != nil {
		return r.s.failWith
	}
	delete(r.s.accounts, a.ID)
	for id, e := range r.s.entries {
		if e.OwnerID == a.ID {
			delete(r.s.entries, id)
		}
	}
	return nil
}

func (r *stubEntries) FindByID(_ context.Context, id string) (*domain.VaultEntry, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	e, ok := r.s.entries[id]
	if !ok {
		return nil, domain.ErrNoRecord
	}
	clone := *e
	return &clone, nil
}

func (r *stubEntries) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.VaultEntry, error) {
	e, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, domain.ErrNoRecord
	}
	return e, nil
}

func (r *stubEntries) ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	_, err := r.FindByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, domain.ErrNoRecord) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubEntries) FindPageByOwner(_ context.Context, ownerID string, pageIndex, pageSize int) ([]*domain.VaultEntry, int64, error) {
	if r.s.failWith != nil {
		return nil, 0, r.s.failWith
	}
	var owned []*domain.VaultEntry
	for _, id := range r.s.order {
		if e, ok := r.s.entries[id]; ok && e.OwnerID == ownerID {
			clone := *e
			owned = append(owned, &clone)
		}
	}
	total := int64(len(owned))
	start := pageIndex * pageSize
	if start >= len(owned) {
		return []*domain.VaultEntry{}, total, nil
	}
	end := start + pageSize
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (r *stubEntries) Save(_ context.Context, e *domain.VaultEntry) (*domain.VaultEntry, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	r.s.saveCalls++
	if _, ok := r.s.accounts[e.OwnerID]; !ok {
		return nil, domain.ErrNoRecord
	}
	clone := *e
	if _, exists := r.s.entries[e.ID]; !exists {
		r.s.order = append(r.s.order, e.ID)
	}
	r.s.entries[e.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEntries) Delete(_ context.Context, e *domain.VaultEntry) error {
	if r.s.failWith != nil {
		return r.s.failWith
	}
	delete(r.s.entries, e.ID)
	return nil
}

// ---------------------------------------------------------------------------
// Security stubs
// ---------------------------------------------------------------------------

type stubHasher struct {
	hashErr error
}

func (h *stubHasher) Hash(plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed$" + reverse(plaintext), nil
}

func (h *stubHasher) Matches(plaintext, hash string) bool {
	return strings.HasPrefix(hash, "hashed$") && strings.TrimPrefix(hash, "hashed$") == reverse(plaintext)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

type issuedToken struct {
	subject   string
	issuedAt  time.Time
	expiresAt time.Time
	claims    map[string]any
}

type stubIssuer struct {
	issued []issuedToken
	err    error
}

func (i *stubIssuer) Issue(subject string, issuedAt, expiresAt time.Time, claims map[string]any) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.issued = append(i.issued, issuedToken{subject, issuedAt, expiresAt, claims})
	return "token-for-" + subject, nil
}
