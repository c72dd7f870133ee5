package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/securepass/securepass/internal/core/domain"
)

const collectionVaultEntries = "vault_entries"

// VaultRepository implements ports.VaultRepository.
type VaultRepository struct {
	client   *mongo.Client
	col      *mongo.Collection
	accounts *mongo.Collection
	now      func() time.Time
}

func NewVaultRepository(db *mongo.Database) *VaultRepository {
	return &VaultRepository{
		client:   db.Client(),
		col:      db.Collection(collectionVaultEntries),
		accounts: db.Collection(collectionAccounts),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *VaultRepository) FindByID(ctx context.Context, id string) (*domain.VaultEntry, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *VaultRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.VaultEntry, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

func (r *VaultRepository) findOne(ctx context.Context, filter bson.M) (*domain.VaultEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.VaultEntry
	if err := r.col.FindOne(ctx, filter).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return &e, nil
}

func (r *VaultRepository) ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id, "owner_id": ownerID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count entries: %w", err)
	}
	return n > 0, nil
}

// FindPageByOwner returns entries in creation order.
func (r *VaultRepository) FindPageByOwner(ctx context.Context, ownerID string, pageIndex, pageSize int) ([]*domain.VaultEntry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(pageIndex) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]*domain.VaultEntry, 0, pageSize)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("decode entries: %w", err)
	}
	return entries, total, nil
}

// Save updates an existing entry in place, or inserts a new one inside a
// transaction that also writes the owner document. The owner write makes the
// insert conflict with a concurrent cascading account delete.
func (r *VaultRepository) Save(ctx context.Context, e *domain.VaultEntry) (*domain.VaultEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.VaultEntry
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": e.ID, "owner_id": e.OwnerID},
		bson.M{"$set": bson.M{"label": e.Label, "secret": e.Secret, "updated_at": now}},
		opts,
	).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	return r.insert(ctx, e, now)
}

func (r *VaultRepository) insert(ctx context.Context, e *domain.VaultEntry, now time.Time) (*domain.VaultEntry, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	doc := *e
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.accounts.UpdateOne(sc,
			bson.M{"_id": e.OwnerID},
			bson.M{"$set": bson.M{"last_entry_write_at": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("lock owner: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrNoRecord
		}
		if _, err := r.col.InsertOne(sc, doc); err != nil {
			return nil, fmt.Errorf("insert entry: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *VaultRepository) Delete(ctx context.Context, e *domain.VaultEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": e.ID}); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner listing index.
func (r *VaultRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
