package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

// vaultFixture wires a vault service over a stub store holding two accounts.
type vaultFixture struct {
	store *stubStore
	svc   *VaultService
	alice string
	bob   string
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()
	store := newStubStore()
	accounts := store.Accounts()
	for _, a := range []*domain.Account{
		{ID: "acc-alice", Name: "Alice", Email: "alice@example.com", CredentialHash: "h"},
		{ID: "acc-bob", Name: "Bob", Email: "bob@example.com", CredentialHash: "h"},
	} {
		if _, err := accounts.Save(context.Background(), a); err != nil {
			t.Fatalf("seed account: %v", err)
		}
	}
	return &vaultFixture{
		store: store,
		svc:   NewVaultService(store.Entries(), accounts, zerolog.Nop()),
		alice: "acc-alice",
		bob:   "acc-bob",
	}
}

func (f *vaultFixture) create(t *testing.T, owner, label, secret string) *domain.VaultEntryView {
	t.Helper()
	v, err := f.svc.CreateEntry(context.Background(), ports.CreateEntryInput{Label: label, Secret: secret}, owner)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return v
}

func strPtr(s string) *string { return &s }

func TestVaultService_CreateEntry_Success(t *testing.T) {
	f := newVaultFixture(t)

	v := f.create(t, f.alice, "Gmail", "hunter2")
	if v.ID == "" {
		t.Fatal("expected generated id")
	}
	if v.Label != "Gmail" || v.Secret != "hunter2" {
		t.Fatalf("unexpected view %+v", v)
	}

	stored := f.store.entries[v.ID]
	if stored == nil || stored.OwnerID != f.alice {
		t.Fatalf("entry not stored with caller as owner: %+v", stored)
	}
}

func TestVaultService_CreateEntry_Validation(t *testing.T) {
	f := newVaultFixture(t)

	_, err := f.svc.CreateEntry(context.Background(), ports.CreateEntryInput{Label: "  ", Secret: "x"}, f.alice)
	if !errors.Is(err, domain.ErrValidation) || err.Error() != "label cannot be blank" {
		t.Fatalf("expected blank label validation, got %v", err)
	}

	_, err = f.svc.CreateEntry(context.Background(), ports.CreateEntryInput{Label: "x", Secret: ""}, f.alice)
	if !errors.Is(err, domain.ErrValidation) || err.Error() != "password cannot be blank" {
		t.Fatalf("expected blank secret validation, got %v", err)
	}

	if f.store.saveCalls != 0 {
		t.Fatalf("store must not be touched, got %d saves", f.store.saveCalls)
	}
}

func TestVaultService_CreateEntry_UnknownAccount(t *testing.T) {
	f := newVaultFixture(t)

	_, err := f.svc.CreateEntry(context.Background(), ports.CreateEntryInput{Label: "x", Secret: "y"}, "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "account not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestVaultService_ListEntries_Paging(t *testing.T) {
	f := newVaultFixture(t)
	for i := 0; i < 5; i++ {
		f.create(t, f.alice, fmt.Sprintf("label-%d", i), "s")
	}
	f.create(t, f.bob, "bob-only", "s")

	page, err := f.svc.ListEntries(context.Background(), ports.ListEntriesInput{PageIndex: 1, PageSize: 2}, f.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalItems != 5 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: items=%d pages=%d", page.TotalItems, page.TotalPages)
	}
	if page.PageIndex != 1 || page.PageSize != 2 {
		t.Fatalf("unexpected page coordinates: %d/%d", page.PageIndex, page.PageSize)
	}
	if len(page.Items) != 2 || page.Items[0].Label != "label-2" || page.Items[1].Label != "label-3" {
		t.Fatalf("unexpected items %+v", page.Items)
	}
}

func TestVaultService_ListEntries_Empty(t *testing.T) {
	f := newVaultFixture(t)

	page, err := f.svc.ListEntries(context.Background(), ports.ListEntriesInput{PageIndex: 0, PageSize: 10}, f.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", page.Items)
	}
	if page.TotalItems != 0 || page.TotalPages != 0 {
		t.Fatalf("unexpected totals: %+v", page)
	}
}

func TestVaultService_ListEntries_BeyondLastPage(t *testing.T) {
	f := newVaultFixture(t)
	f.create(t, f.alice, "only", "s")

	page, err := f.svc.ListEntries(context.Background(), ports.ListEntriesInput{PageIndex: 4, PageSize: 10}, f.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 || page.TotalItems != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestVaultService_ListEntries_OffsetOverflow(t *testing.T) {
	f := newVaultFixture(t)
	f.create(t, f.alice, "only", "s")

	in := ports.ListEntriesInput{PageIndex: math.MaxInt/2 + 1, PageSize: 2}
	page, err := f.svc.ListEntries(context.Background(), in, f.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.TotalItems != 1 || page.TotalPages != 1 || page.PageIndex != in.PageIndex {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestVaultService_ListEntries_Validation(t *testing.T) {
	f := newVaultFixture(t)

	for _, in := range []ports.ListEntriesInput{{PageIndex: -1, PageSize: 10}, {PageIndex: 0, PageSize: 0}} {
		if _, err := f.svc.ListEntries(context.Background(), in, f.alice); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestVaultService_GetEntry_OwnerIsolation(t *testing.T) {
	f := newVaultFixture(t)
	v := f.create(t, f.alice, "mail", "pw")

	got, err := f.svc.GetEntry(context.Background(), v.ID, f.alice)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if *got != *v {
		t.Fatalf("want %+v, got %+v", v, got)
	}

	_, err = f.svc.GetEntry(context.Background(), v.ID, f.bob)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("non-owner must see ErrNotFound, got %v", err)
	}
	_, missing := f.svc.GetEntry(context.Background(), "no-such-id", f.bob)
	if err.Error() != missing.Error() {
		t.Fatalf("foreign and missing entries must be indistinguishable: %q vs %q", err, missing)
	}
}

func TestVaultService_UpdateEntry_PartialFields(t *testing.T) {
	f := newVaultFixture(t)
	v := f.create(t, f.alice, "mail", "old")

	got, err := f.svc.UpdateEntry(context.Background(), v.ID, ports.UpdateEntryInput{Secret: strPtr("new")}, f.alice)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Label != "mail" || got.Secret != "new" {
		t.Fatalf("only secret should change, got %+v", got)
	}

	got, err = f.svc.UpdateEntry(context.Background(), v.ID, ports.UpdateEntryInput{Label: strPtr("inbox")}, f.alice)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Label != "inbox" || got.Secret != "new" {
		t.Fatalf("only label should change, got %+v", got)
	}
}

func TestVaultService_UpdateEntry_Errors(t *testing.T) {
	f := newVaultFixture(t)
	v := f.create(t, f.alice, "mail", "pw")

	_, err := f.svc.UpdateEntry(context.Background(), v.ID, ports.UpdateEntryInput{Label: strPtr("x")}, f.bob)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner update: expected ErrForbidden, got %v", err)
	}
	if f.store.entries[v.ID].Label != "mail" {
		t.Fatal("forbidden update must not modify the entry")
	}

	_, err = f.svc.UpdateEntry(context.Background(), "missing", ports.UpdateEntryInput{Label: strPtr("x")}, f.alice)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing entry: expected ErrNotFound, got %v", err)
	}

	_, err = f.svc.UpdateEntry(context.Background(), v.ID, ports.UpdateEntryInput{Secret: strPtr(" ")}, f.alice)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank secret: expected ErrValidation, got %v", err)
	}
}

func TestVaultService_DeleteEntry(t *testing.T) {
	f := newVaultFixture(t)
	v := f.create(t, f.alice, "mail", "pw")

	if err := f.svc.DeleteEntry(context.Background(), v.ID, f.bob); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("non-owner delete: expected ErrNotFound, got %v", err)
	}
	if _, ok := f.store.entries[v.ID]; !ok {
		t.Fatal("entry must survive a foreign delete")
	}

	if err := f.svc.DeleteEntry(context.Background(), v.ID, f.alice); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := f.svc.GetEntry(context.Background(), v.ID, f.alice); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted entry still visible: %v", err)
	}
	if err := f.svc.DeleteEntry(context.Background(), v.ID, f.alice); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestVaultService_StoreErrorsAreOpaque(t *testing.T) {
	f := newVaultFixture(t)
	f.store.failWith = errors.New("connection reset")

	_, err := f.svc.ListEntries(context.Background(), ports.ListEntriesInput{PageIndex: 0, PageSize: 10}, f.alice)
	if !errors.Is(err, domain.ErrStore) || err.Error() != "store failure" {
		t.Fatalf("expected opaque ErrStore, got %v", err)
	}
	if err := f.svc.DeleteEntry(context.Background(), "x", f.alice); !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}
