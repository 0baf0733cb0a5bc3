package kv

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/docvault/docvault/internal/vault"
)

// Keys used in the store file.
const (
	keyFolders         = "folders"
	keyLegacyDocuments = "documents"
	keySchemaVersion   = "schema_version"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// folderRecord is the persisted shape of a folder. Timestamps are
// unix milliseconds.
type folderRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CoverColor string `json:"coverColor"`
	Icon       string `json:"icon"`
	CreatedAt  int64  `json:"createdAt"`
}

func toRecord(f vault.Folder) folderRecord {
	return folderRecord{
		ID:         f.ID,
		Name:       f.Name,
		CoverColor: string(f.CoverColor),
		Icon:       f.Icon,
		CreatedAt:  f.CreatedAt.UnixMilli(),
	}
}

func fromRecord(r folderRecord) vault.Folder {
	return vault.Folder{
		ID:         r.ID,
		Name:       r.Name,
		CoverColor: vault.FolderColor(r.CoverColor),
		Icon:       r.Icon,
		CreatedAt:  time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// Metadata is the folder metadata store. It exclusively owns Folder
// records; callers read-modify-write the whole collection, insertion
// order is preserved.
type Metadata struct {
	kv    *Store
	clock vault.Clock
}

// NewMetadata wraps a kv store as the folder metadata store.
func NewMetadata(kv *Store, clock vault.Clock) *Metadata {
	return &Metadata{kv: kv, clock: clock}
}

// ListFolders returns all folders in insertion order.
// Returns an empty slice, not nil, when no folders exist.
func (m *Metadata) ListFolders() ([]vault.Folder, error) {
	var records []folderRecord
	if _, err := m.kv.Get(keyFolders, &records); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	folders := make([]vault.Folder, 0, len(records))
	for _, r := range records {
		folders = append(folders, fromRecord(r))
	}
	return folders, nil
}

// SaveFolders replaces the whole folder collection.
// Every folder is validated before anything is written.
func (m *Metadata) SaveFolders(folders []vault.Folder) error {
	records := make([]folderRecord, 0, len(folders))
	for _, f := range folders {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("save folders: folder %s: %w", f.ID, err)
		}
		records = append(records, toRecord(f))
	}
	if err := m.kv.Put(keyFolders, records); err != nil {
		return fmt.Errorf("save folders: %w", err)
	}
	return nil
}

// BootstrapDefaults writes the fixed default folder set if and only
// if no folders exist yet. Calling it again is a no-op.
func (m *Metadata) BootstrapDefaults() error {
	existing, err := m.ListFolders()
	if err != nil {
		return fmt.Errorf("bootstrap defaults: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	defaults, err := DefaultFolders(m.clock)
	if err != nil {
		return fmt.Errorf("bootstrap defaults: %w", err)
	}
	return m.SaveFolders(defaults)
}

// DefaultFolders returns the embedded default folder set with
// CreatedAt stamped from the clock.
func DefaultFolders(clock vault.Clock) ([]vault.Folder, error) {
	var spec struct {
		Folders []struct {
			ID         string `yaml:"id"`
			Name       string `yaml:"name"`
			CoverColor string `yaml:"coverColor"`
			Icon       string `yaml:"icon"`
		} `yaml:"folders"`
	}
	if err := yaml.Unmarshal(defaultsYAML, &spec); err != nil {
		return nil, fmt.Errorf("parse default folders: %w", err)
	}

	now := clock.Now()
	folders := make([]vault.Folder, 0, len(spec.Folders))
	for _, f := range spec.Folders {
		folders = append(folders, vault.Folder{
			ID:         f.ID,
			Name:       f.Name,
			CoverColor: vault.FolderColor(f.CoverColor),
			Icon:       f.Icon,
			CreatedAt:  now,
		})
	}
	return folders, nil
}
