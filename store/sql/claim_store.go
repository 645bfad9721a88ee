// Package sqlstore persists webhook delivery claims so that multiple
// receiver instances sharing a database acknowledge redeliveries
// exactly once.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-adyen/webhooks"
)

const defaultLease = 10 * time.Minute

const (
	statusProcessing = "processing"
	statusRetryReady = "retry_ready"
	statusComplete   = "complete"
)

// DeliveryClaimStore implements webhooks.ClaimStore on a relational
// ledger. A unique index on delivery_key makes the initial claim an
// insert race that exactly one receiver wins.
type DeliveryClaimStore struct {
	db   *bun.DB
	repo repository.Repository[*deliveryClaimRecord]
	now  func() time.Time
}

func NewDeliveryClaimStore(db *bun.DB) (*DeliveryClaimStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*deliveryClaimRecord](db, deliveryClaimHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid delivery claim repository wiring: %w", err)
		}
	}
	return &DeliveryClaimStore{
		db:   db,
		repo: repo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

func (s *DeliveryClaimStore) Claim(ctx context.Context, key string, lease time.Duration) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, fmt.Errorf("sqlstore: delivery claim store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("sqlstore: delivery key is required")
	}
	if lease <= 0 {
		lease = defaultLease
	}
	now := s.now()
	claimID := uuid.NewString()
	expiresAt := now.Add(lease)

	record := &deliveryClaimRecord{
		ID:             uuid.NewString(),
		DeliveryKey:    key,
		ClaimID:        claimID,
		Status:         statusProcessing,
		Attempts:       1,
		LeaseSeconds:   int64(lease / time.Second),
		LeaseExpiresAt: &expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if !isUniqueViolation(err) {
			return "", false, err
		}
		return s.reclaim(ctx, key, lease, now)
	}
	return claimID, true, nil
}

// reclaim takes over an existing row when its lease expired, its
// retry window opened, or its completion marker aged out. The claim
// guard on the update keeps two racing receivers from both winning.
func (s *DeliveryClaimStore) reclaim(ctx context.Context, key string, lease time.Duration, now time.Time) (string, bool, error) {
	existing, err := s.getByKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	switch existing.Status {
	case statusComplete, statusProcessing:
		if existing.LeaseExpiresAt != nil && now.Before(*existing.LeaseExpiresAt) {
			return "", false, nil
		}
		if existing.LeaseExpiresAt == nil && existing.Status == statusProcessing {
			return "", false, nil
		}
	case statusRetryReady:
		if existing.RetryAt != nil && now.Before(*existing.RetryAt) {
			return "", false, nil
		}
	default:
		return "", false, fmt.Errorf("sqlstore: unknown claim status %q for key %q", existing.Status, key)
	}

	claimID := uuid.NewString()
	expiresAt := now.Add(lease)
	res, err := s.db.NewUpdate().
		Model((*deliveryClaimRecord)(nil)).
		Set("claim_id = ?", claimID).
		Set("status = ?", statusProcessing).
		Set("attempts = attempts + 1").
		Set("lease_seconds = ?", int64(lease/time.Second)).
		Set("lease_expires_at = ?", expiresAt).
		Set("retry_at = NULL").
		Set("last_error = ''").
		Set("updated_at = ?", now).
		Where("delivery_key = ?", key).
		Where("claim_id = ?", existing.ClaimID).
		Exec(ctx)
	if err != nil {
		return "", false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", false, err
	}
	if affected == 0 {
		return "", false, nil
	}
	return claimID, true, nil
}

func (s *DeliveryClaimStore) Complete(ctx context.Context, claimID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: delivery claim store is not configured")
	}
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return fmt.Errorf("sqlstore: claim id is required")
	}
	record, err := s.getByClaimID(ctx, claimID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if record.Status != statusProcessing {
		return nil
	}
	now := s.now()
	ttl := time.Duration(record.LeaseSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultLease
	}
	expiresAt := now.Add(ttl)
	_, err = s.db.NewUpdate().
		Model((*deliveryClaimRecord)(nil)).
		Set("status = ?", statusComplete).
		Set("lease_expires_at = ?", expiresAt).
		Set("retry_at = NULL").
		Set("updated_at = ?", now).
		Where("claim_id = ?", claimID).
		Where("status = ?", statusProcessing).
		Exec(ctx)
	return err
}

func (s *DeliveryClaimStore) Fail(ctx context.Context, claimID string, cause error, retryAt time.Time) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: delivery claim store is not configured")
	}
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return fmt.Errorf("sqlstore: claim id is required")
	}
	record, err := s.getByClaimID(ctx, claimID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if record.Status != statusProcessing {
		return nil
	}
	now := s.now()
	if retryAt.IsZero() {
		retryAt = now
	}
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}
	_, err = s.db.NewUpdate().
		Model((*deliveryClaimRecord)(nil)).
		Set("status = ?", statusRetryReady).
		Set("retry_at = ?", retryAt.UTC()).
		Set("lease_expires_at = NULL").
		Set("last_error = ?", lastError).
		Set("updated_at = ?", now).
		Where("claim_id = ?", claimID).
		Where("status = ?", statusProcessing).
		Exec(ctx)
	return err
}

func (s *DeliveryClaimStore) getByKey(ctx context.Context, key string) (*deliveryClaimRecord, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("delivery_key", "=", key),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sqlstore: delivery claim not found for key %q", key)
	}
	return records[0], nil
}

func (s *DeliveryClaimStore) getByClaimID(ctx context.Context, claimID string) (*deliveryClaimRecord, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("claim_id", "=", claimID),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}

var _ webhooks.ClaimStore = (*DeliveryClaimStore)(nil)
