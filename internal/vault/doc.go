// Package vault defines the domain model for the document vault:
// folders, documents, and the error taxonomy shared by the stores
// and the pipeline.
//
// Ownership rules:
//   - Folder records are owned exclusively by the metadata store (internal/kv).
//   - Document records are owned exclusively by the document store (internal/store).
//   - Document.FolderID is a logical foreign key only; it is enforced by the
//     orchestration layer before insert and by cascade delete, never by the
//     stores themselves.
//
// Core invariant: a document's payload is empty if and only if its mime
// type is MimeNote. Validate enforces this on every write path.
package vault
