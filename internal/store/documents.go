package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/docvault/docvault/internal/vault"
)

const documentColumns = `id, folder_id, title, description, payload, mime_type, created_at, due_date, tags`

// List returns all documents, or only those owned by folderID when it
// is non-empty. Ordering follows the store's natural order (id, which
// is time-ordered for UUIDv7 ids).
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) List(ctx context.Context, folderID string) ([]vault.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY id`
	args := []any{}
	if folderID != "" {
		query = `SELECT ` + documentColumns + ` FROM documents WHERE folder_id = ? ORDER BY id`
		args = append(args, folderID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []vault.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// Get retrieves a single document by id.
// Returns vault.ErrDocumentNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (vault.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = ?
	`, id)

	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return vault.Document{}, fmt.Errorf("get document %s: %w", id, vault.ErrDocumentNotFound)
	}
	if err != nil {
		return vault.Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// Insert adds a new document record. Strict add, not upsert: a record
// with the same id fails with vault.ErrDuplicateID.
func (s *Store) Insert(ctx context.Context, d vault.Document) error {
	args, err := writeArgs(d)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("insert document %s: %w", d.ID, vault.ErrDuplicateID)
		}
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// Upsert replaces the record for d.ID, creating it if absent.
func (s *Store) Upsert(ctx context.Context, d vault.Document) error {
	args, err := writeArgs(d)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			folder_id   = excluded.folder_id,
			title       = excluded.title,
			description = excluded.description,
			payload     = excluded.payload,
			mime_type   = excluded.mime_type,
			created_at  = excluded.created_at,
			due_date    = excluded.due_date,
			tags        = excluded.tags
	`, args...)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	return nil
}

// Remove deletes the record for id. No-op if absent.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}
	return nil
}

// RemoveAll deletes each id in order. Not atomic as a whole: on
// failure it returns the ids that were removed before the failure,
// so callers can report the remainder as orphaned.
func (s *Store) RemoveAll(ctx context.Context, ids []string) ([]string, error) {
	removed := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
			return removed, fmt.Errorf("remove document %s: %w", id, err)
		}
		removed = append(removed, id)
	}
	return removed, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}
