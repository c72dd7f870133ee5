// Package memory implements the account and vault repositories in process
// memory. Both repositories share one lock so that account deletion and
// entry insertion are mutually atomic.
package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/securepass/securepass/internal/core/domain"
)

// Store owns the data behind AccountRepository and VaultRepository.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	emails   map[string]string // email -> account id
	entries  map[string]domain.VaultEntry
	order    []string // entry ids in insertion order
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		emails:   make(map[string]string),
		entries:  make(map[string]domain.VaultEntry),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Accounts returns the account repository view of the store.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s: s} }

// Entries returns the vault repository view of the store.
func (s *Store) Entries() *VaultRepository { return &VaultRepository{s: s} }

// Ping satisfies the readiness probe.
func (s *Store) Ping(context.Context) error { return nil }

// AccountRepository implements ports.AccountRepository.
type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrNoRecord
	}
	return &a, nil
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, domain.ErrNoRecord
	}
	a := r.s.accounts[id]
	return &a, nil
}

func (r *AccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.emails[email]
	return ok, nil
}

func (r *AccountRepository) Save(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if owner, taken := r.s.emails[a.Email]; taken && owner != a.ID {
		return nil, domain.ErrDuplicate
	}

	saved := *a
	now := r.s.now()
	if prev, ok := r.s.accounts[a.ID]; ok {
		saved.CreatedAt = prev.CreatedAt
		if prev.Email != a.Email {
			delete(r.s.emails, prev.Email)
		}
	} else {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	r.s.accounts[saved.ID] = saved
	r.s.emails[saved.Email] = saved.ID
	return &saved, nil
}

// Delete removes the account and every entry it owns under one lock.
func (r *AccountRepository) Delete(_ context.Context, a *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.accounts[a.ID]
	if !ok {
		return nil
	}
	delete(r.s.accounts, a.ID)
	delete(r.s.emails, prev.Email)

	kept := r.s.order[:0]
	for _, id := range r.s.order {
		if r.s.entries[id].OwnerID == a.ID {
			delete(r.s.entries, id)
			continue
		}
		kept = append(kept, id)
	}
	r.s.order = kept
	return nil
}

// VaultRepository implements ports.VaultRepository.
type VaultRepository struct {
	s *Store
}

func (r *VaultRepository) FindByID(_ context.Context, id string) (*domain.VaultEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.entries[id]
	if !ok {
		return nil, domain.ErrNoRecord
	}
	return &e, nil
}

func (r *VaultRepository) FindByIDAndOwner(_ context.Context, id, ownerID string) (*domain.VaultEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrNoRecord
	}
	return &e, nil
}

func (r *VaultRepository) ExistsByIDAndOwner(_ context.Context, id, ownerID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.entries[id]
	return ok && e.OwnerID == ownerID, nil
}

func (r *VaultRepository) FindPageByOwner(_ context.Context, ownerID string, pageIndex, pageSize int) ([]*domain.VaultEntry, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	start := math.MaxInt
	if pageSize > 0 && pageIndex <= math.MaxInt/pageSize {
		start = pageIndex * pageSize
	}
	var (
		total int
		page  = make([]*domain.VaultEntry, 0, min(pageSize, len(r.s.order)))
	)
	for _, id := range r.s.order {
		e := r.s.entries[id]
		if e.OwnerID != ownerID {
			continue
		}
		if total >= start && len(page) < pageSize {
			page = append(page, &e)
		}
		total++
	}
	return page, int64(total), nil
}

// Save inserts or replaces an entry. Inserting for a missing owner fails
// with domain.ErrNoRecord.
func (r *VaultRepository) Save(_ context.Context, e *domain.VaultEntry) (*domain.VaultEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[e.OwnerID]; !ok {
		return nil, domain.ErrNoRecord
	}

	saved := *e
	now := r.s.now()
	if prev, ok := r.s.entries[e.ID]; ok {
		saved.CreatedAt = prev.CreatedAt
	} else {
		saved.CreatedAt = now
		r.s.order = append(r.s.order, saved.ID)
	}
	saved.UpdatedAt = now

	r.s.entries[saved.ID] = saved
	return &saved, nil
}

func (r *VaultRepository) Delete(_ context.Context, e *domain.VaultEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.entries[e.ID]; !ok {
		return nil
	}
	delete(r.s.entries, e.ID)
	for i, id := range r.s.order {
		if id == e.ID {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return nil
}
