package store

import (
	"path/filepath"
	"testing"

	"github.com/docvault/docvault/internal/testutil"
	"github.com/docvault/docvault/internal/vault"
)

// createTestStore creates a file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documents.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestDocument creates a pdf document with minimal required fields.
func createTestDocument(id, folderID, title string) vault.Document {
	clock := testutil.NewFixedClock()
	return vault.Document{
		ID:        id,
		FolderID:  folderID,
		Title:     title,
		Payload:   []byte("%PDF-1.4 test"),
		Mime:      vault.MimePDF,
		CreatedAt: clock.Now(),
	}
}
