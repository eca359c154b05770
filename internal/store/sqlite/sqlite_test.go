package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finsight/internal/core"
	"finsight/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "finsight.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTransaction(id, owner string) core.Transaction {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return core.Transaction{
		ID:        id,
		Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:    core.Money{Cents: 10000},
		Category:  core.Revenue,
		Status:    core.Paid,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndFindByOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, sampleTransaction("t1", "alice")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, sampleTransaction("t2", "bob")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := s.FindByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByOwner: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	got := rows[0]
	if got.ID != "t1" || got.Owner != "alice" {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Amount.Cents != 10000 || got.Category != core.Revenue || got.Status != core.Paid {
		t.Fatalf("fields did not round-trip: %+v", got)
	}
	if !got.Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date did not round-trip: %v", got.Date)
	}
}

func TestUpdateFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, sampleTransaction("t1", "alice")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	amount := core.Money{Cents: 2500}
	status := core.Pending
	updated, err := s.UpdateFields(ctx, "t1", "alice", core.Patch{Amount: &amount, Status: &status})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Amount.Cents != 2500 || updated.Status != core.Pending {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Category != core.Revenue {
		t.Fatalf("untouched field changed: %+v", updated)
	}

	// Foreign owner must look like a missing record.
	if _, err := s.UpdateFields(ctx, "t1", "mallory", core.Patch{Amount: &amount}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("foreign owner update = %v, want ErrNotFound", err)
	}
}

func TestDeleteByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, sampleTransaction("t1", "alice")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.DeleteByID(ctx, "t1", "mallory"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("foreign owner delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteByID(ctx, "t1", "alice"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := s.DeleteByID(ctx, "t1", "alice"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestUserStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := store.User{ID: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, u); !errors.Is(err, store.ErrUserExists) {
		t.Fatalf("duplicate user = %v, want ErrUserExists", err)
	}

	got, err := s.GetUserByID(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.PasswordHash != "hash" {
		t.Fatalf("hash did not round-trip: %+v", got)
	}

	if _, err := s.GetUserByID(ctx, "nobody"); !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("missing user = %v, want ErrUserNotFound", err)
	}
}
