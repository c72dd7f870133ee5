package domain

import "time"

// VaultEntry is a labeled secret owned by exactly one Account. Secret is kept
// as entered by the owner.
type VaultEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Label     string    `json:"label" bson:"label"`
	Secret    string    `json:"secret" bson:"secret"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// View returns the public projection of the entry.
func (e *VaultEntry) View() VaultEntryView {
	return VaultEntryView{ID: e.ID, Label: e.Label, Secret: e.Secret}
}

// VaultEntryView is the shape returned by every vault operation.
type VaultEntryView struct {
	ID     string
	Label  string
	Secret string
}

// Page is one slice of an owner-scoped listing.
type Page[T any] struct {
	Items      []T
	PageIndex  int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// NewPage computes TotalPages from the total item count.
func NewPage[T any](items []T, pageIndex, pageSize int, total int64) Page[T] {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
