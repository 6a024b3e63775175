package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func entry(session string, gen uint64, key string, level int) Entry {
	return Entry{
		SessionID:     session,
		Generation:    gen,
		ObjectKey:     key,
		ObjectName:    key,
		Category:      "Star",
		Level:         level,
		DiscoveryText: "seen " + key,
		MaxPower:      4,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveObservation(entry("s1", 1, "sirius", 0)); err != nil {
		t.Fatalf("SaveObservation() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed on reopen: %v", err)
	}
	defer store.Close()

	entries, err := store.RecentObservations(10)
	if err != nil {
		t.Fatalf("RecentObservations() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ObjectKey != "sirius" {
		t.Errorf("expected sirius after reopen, got %+v", entries)
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	for i, key := range []string{"sirius", "m31", "aliens"} {
		id, err := store.SaveObservation(entry("s1", uint64(i+1), key, i))
		if err != nil {
			t.Fatalf("SaveObservation() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("expected positive ID, got %d", id)
		}
	}

	entries, err := store.RecentObservations(2)
	if err != nil {
		t.Fatalf("RecentObservations() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries with limit, got %d", len(entries))
	}
	// Newest first
	if entries[0].ObjectKey != "aliens" || entries[1].ObjectKey != "m31" {
		t.Errorf("Entries not in expected order: %+v", entries)
	}
	if entries[0].Generation != 3 || entries[0].Level != 2 || entries[0].DiscoveryText != "seen aliens" {
		t.Errorf("entry fields not round-tripped: %+v", entries[0])
	}
}

func TestStoreSaveRejectsIncomplete(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveObservation(Entry{ObjectKey: "sirius"}); err == nil {
		t.Error("expected error without session ID")
	}
	if _, err := store.SaveObservation(Entry{SessionID: "s1"}); err == nil {
		t.Error("expected error without object key")
	}
}

func TestStoreSessionObservations(t *testing.T) {
	store := openTestStore(t)

	store.SaveObservation(entry("s1", 2, "m31", 0))
	store.SaveObservation(entry("s2", 1, "sirius", 0))
	store.SaveObservation(entry("s1", 1, "sirius", 0))

	entries, err := store.SessionObservations("s1")
	if err != nil {
		t.Fatalf("SessionObservations() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries for s1, got %d", len(entries))
	}
	if entries[0].Generation != 1 || entries[1].Generation != 2 {
		t.Errorf("session entries not ordered by generation: %+v", entries)
	}
}

func TestStoreObjectStatistics(t *testing.T) {
	store := openTestStore(t)

	store.SaveObservation(entry("s1", 1, "sirius", 0))
	store.SaveObservation(entry("s2", 1, "sirius", 1))
	store.SaveObservation(entry("s2", 2, "m31", 2))

	stats, err := store.ObjectStatistics()
	if err != nil {
		t.Fatalf("ObjectStatistics() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(stats))
	}
	if stats[0].ObjectKey != "sirius" || stats[0].Sightings != 2 || stats[0].BestLevel != 1 {
		t.Errorf("unexpected sirius stats: %+v", stats[0])
	}
	if stats[1].ObjectKey != "m31" || stats[1].BestLevel != 2 {
		t.Errorf("unexpected m31 stats: %+v", stats[1])
	}
}

func TestStoreSummaryAndClear(t *testing.T) {
	store := openTestStore(t)

	sum, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Observations != 0 || sum.Sessions != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}

	store.SaveObservation(entry("s1", 1, "sirius", 0))
	store.SaveObservation(entry("s2", 1, "sirius", 0))
	store.SaveObservation(entry("s2", 2, "m31", 0))

	sum, err = store.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Sessions != 2 || sum.Observations != 3 || sum.Objects != 2 {
		t.Errorf("unexpected summary: %+v", sum)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	entries, _ := store.RecentObservations(10)
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", len(entries))
	}
}
