package kv

import (
	"fmt"
	"time"

	"github.com/docvault/docvault/internal/vault"
)

// Schema versions for the persisted state. The migration from the
// legacy flat document list is a one-way transition:
//
//	legacy (version < 2, documents may live under the "documents" key)
//	  → migrated (version 2, documents live only in the document store)
const (
	SchemaVersionLegacy   = 1
	SchemaVersionMigrated = 2
)

// documentRecord is the legacy persisted shape of a document: one
// serialized array of these under a single key, payload encoded as a
// self-describing string. Retained only to support one-time migration.
type documentRecord struct {
	ID          string   `json:"id"`
	FolderID    string   `json:"folderId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Payload     string   `json:"payload"`
	Mime        string   `json:"mimeType"`
	CreatedAt   int64    `json:"createdAt"`
	DueDate     *int64   `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SchemaVersion returns the persisted schema version.
// An absent tag reads as SchemaVersionLegacy: stores written before
// versioning existed carry no tag.
func (m *Metadata) SchemaVersion() (int, error) {
	var v int
	ok, err := m.kv.Get(keySchemaVersion, &v)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	if !ok {
		return SchemaVersionLegacy, nil
	}
	return v, nil
}

// SetSchemaVersion persists the schema version tag.
func (m *Metadata) SetSchemaVersion(v int) error {
	if err := m.kv.Put(keySchemaVersion, v); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// LegacyDocuments returns the legacy flat document list, and whether
// the legacy key is present at all.
func (m *Metadata) LegacyDocuments() ([]vault.Document, bool, error) {
	var records []documentRecord
	ok, err := m.kv.Get(keyLegacyDocuments, &records)
	if err != nil {
		return nil, false, fmt.Errorf("legacy documents: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	docs := make([]vault.Document, 0, len(records))
	for _, r := range records {
		payload, err := vault.DecodePayload(r.Payload)
		if err != nil {
			return nil, true, fmt.Errorf("legacy document %s: %w", r.ID, err)
		}
		d := vault.Document{
			ID:          r.ID,
			FolderID:    r.FolderID,
			Title:       r.Title,
			Description: r.Description,
			Payload:     payload,
			Mime:        vault.MimeType(r.Mime),
			CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
			Tags:        vault.NormalizeTags(r.Tags),
		}
		if r.DueDate != nil {
			due := time.UnixMilli(*r.DueDate).UTC()
			d.DueDate = &due
		}
		docs = append(docs, d)
	}
	return docs, true, nil
}

// ClearLegacyDocuments erases the legacy key. No-op if absent.
func (m *Metadata) ClearLegacyDocuments() error {
	if err := m.kv.Delete(keyLegacyDocuments); err != nil {
		return fmt.Errorf("clear legacy documents: %w", err)
	}
	return nil
}

// PutLegacyDocuments writes documents under the legacy key.
// Only used by tests and by tooling that fabricates pre-migration state.
func (m *Metadata) PutLegacyDocuments(docs []vault.Document) error {
	records := make([]documentRecord, 0, len(docs))
	for _, d := range docs {
		r := documentRecord{
			ID:          d.ID,
			FolderID:    d.FolderID,
			Title:       d.Title,
			Description: d.Description,
			Payload:     vault.EncodePayload(d.Mime, d.Payload),
			Mime:        string(d.Mime),
			CreatedAt:   d.CreatedAt.UnixMilli(),
			Tags:        d.Tags,
		}
		if d.DueDate != nil {
			ms := d.DueDate.UnixMilli()
			r.DueDate = &ms
		}
		records = append(records, r)
	}
	if err := m.kv.Put(keyLegacyDocuments, records); err != nil {
		return fmt.Errorf("put legacy documents: %w", err)
	}
	return nil
}
