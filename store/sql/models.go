package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type deliveryClaimRecord struct {
	bun.BaseModel `bun:"table:webhook_delivery_claims,alias:wdc"`

	ID             string     `bun:"id,pk"`
	DeliveryKey    string     `bun:"delivery_key,notnull"`
	ClaimID        string     `bun:"claim_id,notnull"`
	Status         string     `bun:"status,notnull"`
	Attempts       int        `bun:"attempts,notnull"`
	LeaseSeconds   int64      `bun:"lease_seconds,notnull"`
	LeaseExpiresAt *time.Time `bun:"lease_expires_at,nullzero"`
	RetryAt        *time.Time `bun:"retry_at,nullzero"`
	LastError      string     `bun:"last_error"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
