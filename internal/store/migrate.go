package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docvault/docvault/internal/kv"
)

// Migrator performs the one-shot transfer of documents from the
// legacy flat-list representation in the metadata store into the
// transactional document store.
//
// The migrated/unmigrated state is an explicit schema-version tag
// with a single one-way transition (legacy → migrated), so once the
// tag is advanced the gate costs one version read and nothing else.
//
// The clear-and-write boundary is not transactional: a crash after
// writing records but before advancing the tag re-runs the migration,
// which is harmless because every record is written as an upsert.
type Migrator struct {
	docs *Store
	meta *kv.Metadata
	log  *zap.Logger
}

// NewMigrator wires a migrator over the two stores.
func NewMigrator(docs *Store, meta *kv.Metadata, log *zap.Logger) *Migrator {
	return &Migrator{docs: docs, meta: meta, log: log}
}

// Run migrates legacy documents if the store is still in the legacy
// state. Invoked lazily from every document read path; idempotent.
func (m *Migrator) Run(ctx context.Context) error {
	version, err := m.meta.SchemaVersion()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if version >= kv.SchemaVersionMigrated {
		return nil
	}

	docs, present, err := m.meta.LegacyDocuments()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if present && len(docs) > 0 {
		m.log.Info("migrating legacy documents", zap.Int("count", len(docs)))
		for _, d := range docs {
			if err := m.docs.Upsert(ctx, d); err != nil {
				// Leave the legacy key and version tag untouched so
				// the next read retries from where this one failed.
				return fmt.Errorf("migrate: document %s: %w", d.ID, err)
			}
		}
	}

	if err := m.meta.ClearLegacyDocuments(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.meta.SetSchemaVersion(kv.SchemaVersionMigrated); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if present && len(docs) > 0 {
		m.log.Info("legacy migration complete", zap.Int("migrated", len(docs)))
	}
	return nil
}
