package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStore_GetAccountByIdentifier(t *testing.T) {
	t.Parallel()
	testDB := SetupTestDB(t)
	ctx := context.Background()

	account := createTestAccount(t, testDB)

	t.Run("internal id", func(t *testing.T) {
		got, err := testDB.Store.GetAccountByIdentifier(ctx, account.ID.String())
		if err != nil {
			t.Fatalf("GetAccountByIdentifier() error = %v", err)
		}
		if got.ID != account.ID {
			t.Errorf("ID = %v, want %v", got.ID, account.ID)
		}
	})

	t.Run("public id", func(t *testing.T) {
		got, err := testDB.Store.GetAccountByIdentifier(ctx, account.PublicID)
		if err != nil {
			t.Fatalf("GetAccountByIdentifier() error = %v", err)
		}
		if got.ID != account.ID {
			t.Errorf("ID = %v, want %v", got.ID, account.ID)
		}
	})

	t.Run("unknown public id", func(t *testing.T) {
		_, err := testDB.Store.GetAccountByIdentifier(ctx, "acct-does-not-exist")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown internal id", func(t *testing.T) {
		_, err := testDB.Store.GetAccountByIdentifier(ctx, uuid.New().String())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_TryAcquireSyncLock(t *testing.T) {
	t.Parallel()
	testDB := SetupTestDB(t)
	ctx := context.Background()

	account := createTestAccount(t, testDB)

	acquired, err := testDB.Store.TryAcquireSyncLock(ctx, account.ID)
	if err != nil {
		t.Fatalf("TryAcquireSyncLock() error = %v", err)
	}
	if !acquired {
		t.Fatal("expected first acquisition to succeed")
	}

	// Second acquisition must lose while the flag is held.
	acquired, err = testDB.Store.TryAcquireSyncLock(ctx, account.ID)
	if err != nil {
		t.Fatalf("TryAcquireSyncLock() error = %v", err)
	}
	if acquired {
		t.Fatal("expected second acquisition to fail while locked")
	}

	if err := testDB.Store.ReleaseSyncLock(ctx, account.ID); err != nil {
		t.Fatalf("ReleaseSyncLock() error = %v", err)
	}

	acquired, err = testDB.Store.TryAcquireSyncLock(ctx, account.ID)
	if err != nil {
		t.Fatalf("TryAcquireSyncLock() error = %v", err)
	}
	if !acquired {
		t.Fatal("expected acquisition to succeed after release")
	}
}

func TestStore_FinalizeSync(t *testing.T) {
	t.Parallel()
	testDB := SetupTestDB(t)
	ctx := context.Background()

	account := createTestAccount(t, testDB)
	if _, err := testDB.Store.TryAcquireSyncLock(ctx, account.ID); err != nil {
		t.Fatalf("TryAcquireSyncLock() error = %v", err)
	}

	syncedAt := time.Now().UTC().Truncate(time.Second)
	updated, err := testDB.Store.FinalizeSync(ctx, account.ID, FinalizeSyncParams{
		LastSyncedAt:    syncedAt,
		TagNames:        StringList{"VIP", "Newsletter"},
		ReportDateTimes: StringList{"2026-08-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatalf("FinalizeSync() error = %v", err)
	}

	if updated.IsSyncing {
		t.Error("expected is_syncing to be cleared")
	}
	if updated.LastSyncedAt == nil || !updated.LastSyncedAt.Equal(syncedAt) {
		t.Errorf("LastSyncedAt = %v, want %v", updated.LastSyncedAt, syncedAt)
	}
	if len(updated.TagNames) != 2 || updated.TagNames[0] != "VIP" {
		t.Errorf("TagNames = %v, want [VIP Newsletter]", updated.TagNames)
	}
	if len(updated.ReportDateTimes) != 1 {
		t.Errorf("ReportDateTimes = %v, want one entry", updated.ReportDateTimes)
	}
}
