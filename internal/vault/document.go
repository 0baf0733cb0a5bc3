package vault

import (
	"errors"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/unicode/norm"
)

// MimeType classifies a document's payload.
type MimeType string

const (
	MimeImage MimeType = "image"
	MimePDF   MimeType = "pdf"
	MimeNote  MimeType = "note"
)

// MaxTitleLength bounds document titles at write time.
const MaxTitleLength = 200

// Document is a titled record with an optional binary payload,
// belonging to exactly one folder.
//
// Payload is empty if and only if Mime is MimeNote; note text lives in
// Description. The invariant is enforced by Validate on every write path.
type Document struct {
	ID          string
	FolderID    string
	Title       string
	Description string
	Payload     []byte
	Mime        MimeType
	CreatedAt   time.Time
	DueDate     *time.Time
	Tags        []string
}

// NewDocument builds a document with a fresh ID and the clock's current
// time. The title is NFC-normalized and tags are deduplicated and sorted.
func NewDocument(clock Clock, folderID, title string, mime MimeType, payload []byte) Document {
	return Document{
		ID:        NewID(),
		FolderID:  folderID,
		Title:     norm.NFC.String(title),
		Payload:   payload,
		Mime:      mime,
		CreatedAt: clock.Now(),
	}
}

// Validate checks the document against the write-time rules, including
// the payload/note invariant.
func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.FolderID, validation.Required),
		validation.Field(&d.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&d.Mime, validation.Required,
			validation.In(MimeImage, MimePDF, MimeNote)),
		validation.Field(&d.Payload, validation.By(d.payloadRule)),
		validation.Field(&d.CreatedAt, validation.Required),
	)
}

func (d Document) payloadRule(any) error {
	if d.Mime == MimeNote && len(d.Payload) > 0 {
		return errors.New("must be empty for note documents")
	}
	if d.Mime != MimeNote && len(d.Payload) == 0 {
		return errors.New("cannot be empty for image or pdf documents")
	}
	return nil
}

// NormalizeTags deduplicates and sorts a tag list, dropping empty entries.
// Returns nil for an empty result so records round-trip cleanly.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		t = norm.NFC.String(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
