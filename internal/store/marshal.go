package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docvault/docvault/internal/vault"
)

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// marshalTags converts a tag list to JSON TEXT for storage.
// Nil and empty both serialize to "[]" so rows compare cleanly.
func marshalTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}

// unmarshalTags parses JSON TEXT to a tag list. "[]" yields nil.
func unmarshalTags(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return tags, nil
}

// scanDocument reads one documents row into a vault.Document.
func scanDocument(sc scanner) (vault.Document, error) {
	var (
		d         vault.Document
		payload   string
		mime      string
		createdAt int64
		dueDate   sql.NullInt64
		tags      string
	)

	err := sc.Scan(&d.ID, &d.FolderID, &d.Title, &d.Description,
		&payload, &mime, &createdAt, &dueDate, &tags)
	if err != nil {
		return vault.Document{}, err
	}

	d.Payload, err = vault.DecodePayload(payload)
	if err != nil {
		return vault.Document{}, fmt.Errorf("document %s: %w", d.ID, err)
	}
	d.Mime = vault.MimeType(mime)
	d.CreatedAt = time.UnixMilli(createdAt).UTC()
	if dueDate.Valid {
		due := time.UnixMilli(dueDate.Int64).UTC()
		d.DueDate = &due
	}
	d.Tags, err = unmarshalTags(tags)
	if err != nil {
		return vault.Document{}, fmt.Errorf("document %s: %w", d.ID, err)
	}

	return d, nil
}

// writeArgs flattens a document into the column order used by the
// INSERT statements.
func writeArgs(d vault.Document) ([]any, error) {
	tags, err := marshalTags(d.Tags)
	if err != nil {
		return nil, err
	}

	var dueDate any
	if d.DueDate != nil {
		dueDate = d.DueDate.UnixMilli()
	}

	return []any{
		d.ID,
		d.FolderID,
		d.Title,
		d.Description,
		vault.EncodePayload(d.Mime, d.Payload),
		string(d.Mime),
		d.CreatedAt.UnixMilli(),
		dueDate,
		tags,
	}, nil
}
