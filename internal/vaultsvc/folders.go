package vaultsvc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docvault/docvault/internal/vault"
)

// ListFolders returns all folders in insertion order.
func (s *Service) ListFolders() ([]vault.Folder, error) {
	return s.meta.ListFolders()
}

// SaveFolders replaces the whole folder collection.
func (s *Service) SaveFolders(folders []vault.Folder) error {
	return s.meta.SaveFolders(folders)
}

// BootstrapDefaults writes the fixed default folder set when the
// vault has no folders yet; otherwise a no-op.
func (s *Service) BootstrapDefaults() error {
	return s.meta.BootstrapDefaults()
}

// CreateFolder appends a new folder and returns it.
func (s *Service) CreateFolder(name string, color vault.FolderColor, icon string) (vault.Folder, error) {
	f := vault.NewFolder(s.clock, name, color, icon)
	if err := f.Validate(); err != nil {
		return vault.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	folders, err := s.meta.ListFolders()
	if err != nil {
		return vault.Folder{}, fmt.Errorf("create folder: %w", err)
	}
	if err := s.meta.SaveFolders(append(folders, f)); err != nil {
		return vault.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	s.log.Info("folder created", zap.String("folder_id", f.ID), zap.String("name", f.Name))
	return f, nil
}

// UpdateFolder replaces the folder with the same id, preserving the
// collection order. The id is immutable; a folder that does not exist
// fails with vault.ErrFolderNotFound.
func (s *Service) UpdateFolder(updated vault.Folder) error {
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	folders, err := s.meta.ListFolders()
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	found := false
	for i, f := range folders {
		if f.ID == updated.ID {
			folders[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("update folder %s: %w", updated.ID, vault.ErrFolderNotFound)
	}

	return s.meta.SaveFolders(folders)
}

// RemoveFolderCascade deletes a folder and every document it owns.
//
// The folder metadata goes first, then the owned documents one by
// one. Document deletion is not atomic as a whole: if it fails
// partway the folder is already gone and the remaining documents are
// orphaned - reported via *vault.PartialCascadeError, logged, and
// left for the caller to retry. Re-running the cascade on an already
// deleted folder is not possible (ErrFolderNotFound), but the
// orphans can still be removed individually.
func (s *Service) RemoveFolderCascade(ctx context.Context, folderID string) error {
	folders, err := s.meta.ListFolders()
	if err != nil {
		return fmt.Errorf("remove folder: %w", err)
	}

	kept := folders[:0]
	found := false
	for _, f := range folders {
		if f.ID == folderID {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("remove folder %s: %w", folderID, vault.ErrFolderNotFound)
	}

	// Collect owned documents before touching anything.
	owned, err := s.ListDocuments(ctx, folderID)
	if err != nil {
		return fmt.Errorf("remove folder %s: %w", folderID, err)
	}
	ids := make([]string, 0, len(owned))
	for _, d := range owned {
		ids = append(ids, d.ID)
	}

	if err := s.meta.SaveFolders(kept); err != nil {
		return fmt.Errorf("remove folder %s: %w", folderID, err)
	}

	removed, err := s.docs.RemoveAll(ctx, ids)
	if err != nil {
		orphaned := ids[len(removed):]
		cascadeErr := &vault.PartialCascadeError{
			FolderID: folderID,
			Removed:  removed,
			Orphaned: orphaned,
			Err:      err,
		}
		s.log.Error("cascade delete incomplete",
			zap.String("folder_id", folderID),
			zap.Int("removed", len(removed)),
			zap.Strings("orphaned", orphaned),
			zap.Error(err),
		)
		return cascadeErr
	}

	s.log.Info("folder removed",
		zap.String("folder_id", folderID),
		zap.Int("documents_removed", len(removed)),
	)
	return nil
}

// folderExists reports whether folderID is a live folder.
func (s *Service) folderExists(folderID string) (bool, error) {
	folders, err := s.meta.ListFolders()
	if err != nil {
		return false, err
	}
	for _, f := range folders {
		if f.ID == folderID {
			return true, nil
		}
	}
	return false, nil
}
