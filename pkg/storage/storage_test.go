package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/afwatch/afwatch/pkg/registry"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var watch = registry.Watch{NCTID: "NCT01234567", ItemID: "farapulse", TrialName: "ADVENT-II"}

func TestRecordStatus_FirstSighting(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	changes, err := db.RecordStatus(ctx, watch, &registry.Status{Overall: "RECRUITING", PrimaryCompletion: "2026-09-30"})
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0].ChangeType != "added" {
		t.Fatalf("expected one added change, got %+v", changes)
	}
}

func TestRecordStatus_Updates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.RecordStatus(ctx, watch, &registry.Status{Overall: "RECRUITING", PrimaryCompletion: "2026-09-30"}); err != nil {
		t.Fatal(err)
	}

	// Unchanged status yields no changes.
	changes, err := db.RecordStatus(ctx, watch, &registry.Status{Overall: "RECRUITING", PrimaryCompletion: "2026-09-30"})
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}

	// Both fields changed yields one change each.
	changes, err = db.RecordStatus(ctx, watch, &registry.Status{Overall: "COMPLETED", PrimaryCompletion: "2026-12-15"})
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected two changes, got %+v", changes)
	}
	for _, c := range changes {
		if c.ChangeType != "updated" {
			t.Errorf("change type = %q", c.ChangeType)
		}
	}
}

func TestListRecentChanges(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	db.RecordStatus(ctx, watch, &registry.Status{Overall: "RECRUITING"})
	db.RecordStatus(ctx, watch, &registry.Status{Overall: "COMPLETED"})

	changes, err := db.ListRecentChanges(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	// Newest first.
	if changes[0].NewValue != "COMPLETED" {
		t.Errorf("first change = %+v", changes[0])
	}
}
