package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const accountColumns = `
id, public_id, name, klaviyo_api_key, conversion_metric_id,
last_synced_at, is_syncing, tag_names, report_date_times, created_at, updated_at`

const sqlGetAccountByID = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
`

// GetAccountByID retrieves an account by its internal id
func (s *Store) GetAccountByID(ctx context.Context, accountID uuid.UUID) (Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, sqlGetAccountByID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get account by id", err)
		return Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

const sqlGetAccountByPublicID = `
SELECT ` + accountColumns + `
FROM accounts
WHERE public_id = $1
`

// GetAccountByPublicID retrieves an account by its external alias
func (s *Store) GetAccountByPublicID(ctx context.Context, publicID string) (Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, sqlGetAccountByPublicID, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get account by public id", err)
		return Account{}, fmt.Errorf("failed to get account by public id: %w", err)
	}
	return account, nil
}

// GetAccountByIdentifier resolves an account once at the boundary: a value
// that parses as a UUID is treated as the internal id, anything else as the
// public id.
func (s *Store) GetAccountByIdentifier(ctx context.Context, identifier string) (Account, error) {
	if accountID, err := uuid.Parse(identifier); err == nil {
		return s.GetAccountByID(ctx, accountID)
	}
	return s.GetAccountByPublicID(ctx, identifier)
}

const sqlTryAcquireSyncLock = `
UPDATE accounts
SET is_syncing = TRUE, updated_at = NOW()
WHERE id = $1 AND is_syncing = FALSE
`

// TryAcquireSyncLock atomically flips is_syncing from false to true.
// Returns false when another sync already holds the flag.
func (s *Store) TryAcquireSyncLock(ctx context.Context, accountID uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, sqlTryAcquireSyncLock, accountID)
	if err != nil {
		s.logger.Error(ctx, "failed to acquire sync lock", err)
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read sync lock result: %w", err)
	}
	return rows > 0, nil
}

const sqlReleaseSyncLock = `
UPDATE accounts
SET is_syncing = FALSE, updated_at = NOW()
WHERE id = $1
`

// ReleaseSyncLock clears the is_syncing flag. Called on every sync failure
// path so a subsequent sync attempt is possible.
func (s *Store) ReleaseSyncLock(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, sqlReleaseSyncLock, accountID); err != nil {
		s.logger.Error(ctx, "failed to release sync lock", err)
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}

// FinalizeSyncParams carries the account bookkeeping written at the end of
// a successful fetch+merge phase.
type FinalizeSyncParams struct {
	LastSyncedAt    time.Time
	TagNames        StringList
	ReportDateTimes StringList
}

const sqlFinalizeSync = `
UPDATE accounts
SET last_synced_at = $2,
    is_syncing = FALSE,
    tag_names = $3,
    report_date_times = $4,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + accountColumns + `
`

// FinalizeSync records the sync timestamp, clears the sync flag, and
// refreshes the denormalized tag-name cache and report interval timestamps.
func (s *Store) FinalizeSync(ctx context.Context, accountID uuid.UUID, params FinalizeSyncParams) (Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, sqlFinalizeSync,
		accountID, params.LastSyncedAt, params.TagNames, params.ReportDateTimes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to finalize sync", err)
		return Account{}, fmt.Errorf("failed to finalize sync: %w", err)
	}
	return account, nil
}
