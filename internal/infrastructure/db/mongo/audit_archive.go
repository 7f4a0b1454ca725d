package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

const collectionAuditEntries = "audit_entries"

// AuditArchive mirrors audit entries into MongoDB. Unlike the in-memory log
// it is unbounded; it exists for offline review, not for serving /audit.
type AuditArchive struct {
	col *mongo.Collection
}

func NewAuditArchive(db *mongo.Database) *AuditArchive {
	return &AuditArchive{col: db.Collection(collectionAuditEntries)}
}

// Archive inserts the entry. Re-archiving the same entry ID is ignored.
func (a *AuditArchive) Archive(ctx context.Context, entry domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := a.col.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("archive audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index used for per-store, per-wallet review.
func (a *AuditArchive) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := a.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "wallet_id", Value: 1}}},
	})
	return err
}
