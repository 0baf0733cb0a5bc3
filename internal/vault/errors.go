package vault

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across stores and orchestration.
// Wrap with %w so callers can match via errors.Is.
var (
	// ErrDuplicateID is returned by a strict insert when a record with
	// the same id already exists. Recoverable: retry with a fresh id or
	// switch to upsert.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrFolderNotFound is returned when an operation references a
	// folder id that is not in the metadata store.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrDocumentNotFound is returned by point lookups for absent ids.
	ErrDocumentNotFound = errors.New("document not found")
)

// PartialCascadeError reports a cascade delete that removed the folder
// metadata but failed partway through deleting the owned documents.
// Orphaned lists the document ids still referencing the deleted folder.
//
// Not retried automatically: orphaned documents are treated as
// implicitly un-foldered until the caller re-runs the cascade.
type PartialCascadeError struct {
	FolderID string
	Removed  []string
	Orphaned []string
	Err      error
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("cascade delete of folder %s incomplete: %d removed, %d orphaned (%s): %v",
		e.FolderID, len(e.Removed), len(e.Orphaned), strings.Join(e.Orphaned, ", "), e.Err)
}

func (e *PartialCascadeError) Unwrap() error {
	return e.Err
}

// IsPartialCascade reports whether err is a PartialCascadeError,
// unwrapping as needed.
func IsPartialCascade(err error) bool {
	var pce *PartialCascadeError
	return errors.As(err, &pce)
}
