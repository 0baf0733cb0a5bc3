package store

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/docvault/docvault/internal/kv"
	"github.com/docvault/docvault/internal/testutil"
	"github.com/docvault/docvault/internal/vault"
)

func createTestMetadata(t *testing.T) *kv.Metadata {
	t.Helper()
	s, err := kv.Open(filepath.Join(t.TempDir(), "meta.json"))
	if err != nil {
		t.Fatalf("kv.Open() failed: %v", err)
	}
	return kv.NewMetadata(s, testutil.NewFixedClock())
}

func TestMigrator_MovesLegacyDocuments(t *testing.T) {
	docs := createTestStore(t)
	meta := createTestMetadata(t)
	ctx := context.Background()

	legacy := []vault.Document{
		createTestDocument("doc-1", "folder-1", "Old A"),
		createTestDocument("doc-2", "folder-1", "Old B"),
	}
	if err := meta.PutLegacyDocuments(legacy); err != nil {
		t.Fatalf("PutLegacyDocuments() failed: %v", err)
	}

	m := NewMigrator(docs, meta, zap.NewNop())
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	got, err := docs.List(ctx, "")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() = %d documents, want 2", len(got))
	}

	// Legacy key is cleared and the version tag advanced.
	_, present, err := meta.LegacyDocuments()
	if err != nil {
		t.Fatalf("LegacyDocuments() failed: %v", err)
	}
	if present {
		t.Error("legacy key still present after migration")
	}
	version, err := meta.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != kv.SchemaVersionMigrated {
		t.Errorf("schema version = %d, want %d", version, kv.SchemaVersionMigrated)
	}
}

func TestMigrator_Idempotent(t *testing.T) {
	docs := createTestStore(t)
	meta := createTestMetadata(t)
	ctx := context.Background()

	legacy := []vault.Document{
		createTestDocument("doc-1", "folder-1", "Old A"),
		createTestDocument("doc-2", "folder-2", "Old B"),
	}
	if err := meta.PutLegacyDocuments(legacy); err != nil {
		t.Fatalf("PutLegacyDocuments() failed: %v", err)
	}

	m := NewMigrator(docs, meta, zap.NewNop())
	if err := m.Run(ctx); err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}
	afterFirst, err := docs.List(ctx, "")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if err := m.Run(ctx); err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}
	afterSecond, err := docs.List(ctx, "")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(afterFirst) != len(afterSecond) {
		t.Fatalf("document count changed on re-run: %d -> %d", len(afterFirst), len(afterSecond))
	}
	for i := range afterFirst {
		if afterFirst[i].ID != afterSecond[i].ID || afterFirst[i].Title != afterSecond[i].Title {
			t.Errorf("document %d changed on re-run: %+v vs %+v", i, afterFirst[i], afterSecond[i])
		}
	}
}

func TestMigrator_ReentryAfterPartialRun(t *testing.T) {
	docs := createTestStore(t)
	meta := createTestMetadata(t)
	ctx := context.Background()

	// Simulate a crash after some records were written but before the
	// legacy key was cleared: the store already holds doc-1, and the
	// legacy list still names both.
	legacy := []vault.Document{
		createTestDocument("doc-1", "folder-1", "Old A"),
		createTestDocument("doc-2", "folder-1", "Old B"),
	}
	if err := docs.Upsert(ctx, legacy[0]); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := meta.PutLegacyDocuments(legacy); err != nil {
		t.Fatalf("PutLegacyDocuments() failed: %v", err)
	}

	m := NewMigrator(docs, meta, zap.NewNop())
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	got, err := docs.List(ctx, "")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List() = %d documents, want 2 (no duplicates from re-entry)", len(got))
	}
}

func TestMigrator_NoLegacyKey(t *testing.T) {
	docs := createTestStore(t)
	meta := createTestMetadata(t)
	ctx := context.Background()

	m := NewMigrator(docs, meta, zap.NewNop())
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() without legacy key failed: %v", err)
	}

	n, err := docs.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}

	// The gate is closed afterwards: version tag says migrated.
	version, err := meta.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != kv.SchemaVersionMigrated {
		t.Errorf("schema version = %d, want %d", version, kv.SchemaVersionMigrated)
	}
}

func TestMigrator_SkipsWhenAlreadyMigrated(t *testing.T) {
	docs := createTestStore(t)
	meta := createTestMetadata(t)
	ctx := context.Background()

	if err := meta.SetSchemaVersion(kv.SchemaVersionMigrated); err != nil {
		t.Fatalf("SetSchemaVersion() failed: %v", err)
	}
	// A legacy key lingering after the tag advanced must be ignored,
	// never re-imported.
	if err := meta.PutLegacyDocuments([]vault.Document{
		createTestDocument("ghost", "folder-1", "Should not migrate"),
	}); err != nil {
		t.Fatalf("PutLegacyDocuments() failed: %v", err)
	}

	m := NewMigrator(docs, meta, zap.NewNop())
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	n, err := docs.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0 (migration must be gated by the version tag)", n)
	}
}
