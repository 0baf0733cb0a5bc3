// Package vaultsvc orchestrates the vault's stores and pipeline
// behind the operation surface exposed to callers (the CLI here, a UI
// elsewhere). It owns the cross-store workflows the stores themselves
// stay ignorant of: referential checks before document writes,
// cascade delete, the lazy legacy migration gate, and turning
// pipeline output into stored documents.
package vaultsvc

import (
	"go.uber.org/zap"

	"github.com/docvault/docvault/internal/kv"
	"github.com/docvault/docvault/internal/pipeline"
	"github.com/docvault/docvault/internal/store"
	"github.com/docvault/docvault/internal/vault"
)

// Service is the vault's operation surface. Construct one per opened
// vault and share it; all dependencies are explicit, there are no
// package-level singletons.
type Service struct {
	meta  *kv.Metadata
	docs  *store.Store
	pipe  *pipeline.Pipeline
	mig   *store.Migrator
	log   *zap.Logger
	clock vault.Clock
}

// New wires a service over its stores and pipeline.
func New(meta *kv.Metadata, docs *store.Store, pipe *pipeline.Pipeline, log *zap.Logger, clock vault.Clock) *Service {
	return &Service{
		meta:  meta,
		docs:  docs,
		pipe:  pipe,
		mig:   store.NewMigrator(docs, meta, log),
		log:   log,
		clock: clock,
	}
}
