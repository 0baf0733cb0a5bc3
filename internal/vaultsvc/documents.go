package vaultsvc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docvault/docvault/internal/pipeline"
	"github.com/docvault/docvault/internal/vault"
)

// ListDocuments returns all documents, or only those in folderID when
// it is non-empty. Runs the legacy migration gate first, so a vault
// carrying a pre-transactional document list is transparently moved
// over on first read.
func (s *Service) ListDocuments(ctx context.Context, folderID string) ([]vault.Document, error) {
	if err := s.mig.Run(ctx); err != nil {
		return nil, err
	}
	return s.docs.List(ctx, folderID)
}

// GetDocument retrieves one document by id.
func (s *Service) GetDocument(ctx context.Context, id string) (vault.Document, error) {
	if err := s.mig.Run(ctx); err != nil {
		return vault.Document{}, err
	}
	return s.docs.Get(ctx, id)
}

// InsertDocument validates and stores a new document. The owning
// folder must exist: the referential check runs here, before the
// write, because the store itself never validates folder ids.
func (s *Service) InsertDocument(ctx context.Context, d vault.Document) error {
	if err := s.checkDocument(d); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	if err := s.docs.Insert(ctx, d); err != nil {
		return err
	}
	s.log.Info("document inserted",
		zap.String("document_id", d.ID),
		zap.String("folder_id", d.FolderID),
		zap.String("mime", string(d.Mime)),
	)
	return nil
}

// UpdateDocument validates and replaces the record for d.ID, creating
// it if absent.
func (s *Service) UpdateDocument(ctx context.Context, d vault.Document) error {
	if err := s.checkDocument(d); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return s.docs.Upsert(ctx, d)
}

// RemoveDocument deletes one document. No-op if absent.
func (s *Service) RemoveDocument(ctx context.Context, id string) error {
	return s.docs.Remove(ctx, id)
}

func (s *Service) checkDocument(d vault.Document) error {
	if err := d.Validate(); err != nil {
		return err
	}
	ok, err := s.folderExists(d.FolderID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("folder %s: %w", d.FolderID, vault.ErrFolderNotFound)
	}
	return nil
}

// ComposePdfFromImages runs the scan pipeline without storing the
// result. The report annotates which inputs were dropped.
func (s *Service) ComposePdfFromImages(raws [][]byte) ([]byte, *pipeline.Report, error) {
	return s.pipe.ComposeFromImages(raws)
}

// MergePdfs merges PDF byte streams without storing the result.
func (s *Service) MergePdfs(inputs [][]byte) ([]byte, *pipeline.Report, error) {
	return s.pipe.MergePdfs(inputs)
}

// ScanToDocument composes raw images into a PDF and stores it as a
// new document in folderID. Partial success (some images dropped) is
// still success; the report says what was lost.
func (s *Service) ScanToDocument(ctx context.Context, folderID, title string, raws [][]byte) (vault.Document, *pipeline.Report, error) {
	pdf, report, err := s.pipe.ComposeFromImages(raws)
	if err != nil {
		return vault.Document{}, report, err
	}

	d := vault.NewDocument(s.clock, folderID, title, vault.MimePDF, pdf)
	if err := s.InsertDocument(ctx, d); err != nil {
		return vault.Document{}, report, err
	}
	return d, report, nil
}

// MergeToDocument merges PDF streams and stores the result as a new
// document in folderID.
func (s *Service) MergeToDocument(ctx context.Context, folderID, title string, inputs [][]byte) (vault.Document, *pipeline.Report, error) {
	pdf, report, err := s.pipe.MergePdfs(inputs)
	if err != nil {
		return vault.Document{}, report, err
	}

	d := vault.NewDocument(s.clock, folderID, title, vault.MimePDF, pdf)
	if err := s.InsertDocument(ctx, d); err != nil {
		return vault.Document{}, report, err
	}
	return d, report, nil
}
