package domain

import "time"

// AuditType identifies the mutation an audit entry records.
type AuditType string

const (
	AuditEarn  AuditType = "EARN"
	AuditReset AuditType = "RESET"
)

// DefaultAuditCapacity is how many entries each store retains.
const DefaultAuditCapacity = 200

// Actor is the identity that performed an audited mutation.
type Actor struct {
	UserID   string `json:"userId"   bson:"user_id"`
	Username string `json:"username" bson:"username"`
	Role     string `json:"role"     bson:"role"`
}

// AuditEntry is an immutable record of a ledger mutation. The EARN-only
// fields are nil for RESET entries.
type AuditEntry struct {
	ID          string    `json:"id"                    bson:"_id"`
	Timestamp   time.Time `json:"timestamp"             bson:"timestamp"`
	Type        AuditType `json:"type"                  bson:"type"`
	StoreID     string    `json:"storeId"               bson:"store_id"`
	WalletID    string    `json:"walletId"              bson:"wallet_id"`
	Actor       Actor     `json:"actor"                 bson:"actor"`
	AmountCents *int64    `json:"amountCents,omitempty" bson:"amount_cents,omitempty"`
	StampsAdded *int      `json:"stampsAdded,omitempty" bson:"stamps_added,omitempty"`
	StampsAfter *int      `json:"stampsAfter,omitempty" bson:"stamps_after,omitempty"`
}
