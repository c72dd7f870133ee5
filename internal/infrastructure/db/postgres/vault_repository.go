package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/securepass/securepass/internal/core/domain"
)

const entryColumns = `id, owner_id, label, secret, created_at, updated_at`

// VaultRepository implements ports.VaultRepository.
type VaultRepository struct {
	db  DBTX
	now func() time.Time
}

func NewVaultRepository(db DBTX) *VaultRepository {
	return &VaultRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.VaultEntry, error) {
	var e domain.VaultEntry
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Label, &e.Secret, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func (r *VaultRepository) findOne(ctx context.Context, query string, args ...any) (*domain.VaultEntry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *VaultRepository) FindByID(ctx context.Context, id string) (*domain.VaultEntry, error) {
	return r.findOne(ctx, `SELECT `+entryColumns+` FROM vault_entries WHERE id = $1`, id)
}

func (r *VaultRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.VaultEntry, error) {
	return r.findOne(ctx, `SELECT `+entryColumns+` FROM vault_entries WHERE id = $1 AND owner_id = $2`, id, ownerID)
}

func (r *VaultRepository) ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM vault_entries WHERE id = $1 AND owner_id = $2)`, id, ownerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// FindPageByOwner returns entries in creation order.
func (r *VaultRepository) FindPageByOwner(ctx context.Context, ownerID string, pageIndex, pageSize int) ([]*domain.VaultEntry, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vault_entries WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM vault_entries
		WHERE owner_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`,
		ownerID, pageSize, int64(pageIndex)*int64(pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.VaultEntry, 0, pageSize)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// Save upserts by id. The foreign key check on insert locks the owner row, so
// an insert racing a cascading account delete either lands before the delete
// or fails with domain.ErrNoRecord. Updates never move an entry to another
// owner.
func (r *VaultRepository) Save(ctx context.Context, e *domain.VaultEntry) (*domain.VaultEntry, error) {
	query := `
		INSERT INTO vault_entries (id, owner_id, label, secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			label = EXCLUDED.label,
			secret = EXCLUDED.secret,
			updated_at = EXCLUDED.updated_at
			WHERE vault_entries.owner_id = EXCLUDED.owner_id
		RETURNING ` + entryColumns

	saved, err := scanEntry(r.db.QueryRowContext(ctx, query, e.ID, e.OwnerID, e.Label, e.Secret, r.now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

func (r *VaultRepository) Delete(ctx context.Context, e *domain.VaultEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vault_entries WHERE id = $1`, e.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
