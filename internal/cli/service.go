package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/docvault/docvault/internal/kv"
	"github.com/docvault/docvault/internal/pipeline"
	"github.com/docvault/docvault/internal/store"
	"github.com/docvault/docvault/internal/vault"
	"github.com/docvault/docvault/internal/vaultsvc"
)

// newLogger builds the CLI logger. Logs go to stderr so that command
// output on stdout stays machine-readable.
func newLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core), nil
}

// openService opens the vault for opts.Owner under opts.Vault and
// wires a service over it. The returned closer releases the document
// store and flushes the logger.
func openService(opts *RootOptions) (*vaultsvc.Service, func(), error) {
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "initialize logger", err)
	}

	dir := filepath.Join(opts.Vault, opts.Owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("create vault directory %s", dir), err)
	}

	meta, err := kv.Open(filepath.Join(dir, "meta.json"))
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open metadata store", err)
	}
	docs, err := store.Open(filepath.Join(dir, "documents.db"))
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open document store", err)
	}

	clock := vault.SystemClock{}
	svc := vaultsvc.New(kv.NewMetadata(meta, clock), docs, pipeline.New(log), log, clock)
	closer := func() {
		docs.Close()
		_ = log.Sync()
	}
	return svc, closer, nil
}

// folderView is the JSON shape of a folder in CLI output.
type folderView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	CreatedAt string `json:"createdAt"`
}

func newFolderView(f vault.Folder) folderView {
	return folderView{
		ID:        f.ID,
		Name:      f.Name,
		Color:     string(f.CoverColor),
		Icon:      f.Icon,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (v folderView) String() string {
	return fmt.Sprintf("%s  %-24s %-10s %s", v.ID, v.Name, v.Color, v.Icon)
}

// folderListView renders a slice of folders.
type folderListView []folderView

func newFolderListView(folders []vault.Folder) folderListView {
	out := make(folderListView, 0, len(folders))
	for _, f := range folders {
		out = append(out, newFolderView(f))
	}
	return out
}

func (v folderListView) String() string {
	if len(v) == 0 {
		return "no folders"
	}
	lines := make([]string, 0, len(v))
	for _, f := range v {
		lines = append(lines, f.String())
	}
	return strings.Join(lines, "\n")
}

// docView is the JSON shape of a document in CLI output. The payload
// is summarized as a byte count; `docs list` never dumps binary data.
type docView struct {
	ID          string   `json:"id"`
	FolderID    string   `json:"folderId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Mime        string   `json:"mimeType"`
	PayloadSize int      `json:"payloadSize"`
	CreatedAt   string   `json:"createdAt"`
	DueDate     string   `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func newDocView(d vault.Document) docView {
	v := docView{
		ID:          d.ID,
		FolderID:    d.FolderID,
		Title:       d.Title,
		Description: d.Description,
		Mime:        string(d.Mime),
		PayloadSize: len(d.Payload),
		CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
		Tags:        d.Tags,
	}
	if d.DueDate != nil {
		v.DueDate = d.DueDate.UTC().Format(time.RFC3339)
	}
	return v
}

func (v docView) String() string {
	due := "-"
	if v.DueDate != "" {
		due = v.DueDate
	}
	return fmt.Sprintf("%s  %-32s %-6s %8dB  due:%s", v.ID, v.Title, v.Mime, v.PayloadSize, due)
}

// docListView renders a slice of documents.
type docListView []docView

func newDocListView(docs []vault.Document) docListView {
	out := make(docListView, 0, len(docs))
	for _, d := range docs {
		out = append(out, newDocView(d))
	}
	return out
}

func (v docListView) String() string {
	if len(v) == 0 {
		return "no documents"
	}
	lines := make([]string, 0, len(v))
	for _, d := range v {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
