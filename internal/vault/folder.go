package vault

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/unicode/norm"
)

// FolderColor identifies the cover color of a folder.
type FolderColor string

const (
	ColorBlue     FolderColor = "blue"
	ColorDarkBlue FolderColor = "dark-blue"
	ColorCyan     FolderColor = "cyan"
	ColorOrange   FolderColor = "orange"
)

// FolderColors lists every valid cover color.
var FolderColors = []FolderColor{ColorBlue, ColorDarkBlue, ColorCyan, ColorOrange}

// MaxFolderNameLength bounds folder names at write time.
const MaxFolderNameLength = 120

// Folder is a named, colored, iconized grouping of documents.
// The ID is assigned at creation and immutable afterwards.
type Folder struct {
	ID         string
	Name       string
	CoverColor FolderColor
	Icon       string
	CreatedAt  time.Time
}

// NewFolder builds a folder with a fresh ID and the clock's current time.
// The name is NFC-normalized so that lookups are not sensitive to the
// input method's Unicode composition.
func NewFolder(clock Clock, name string, color FolderColor, icon string) Folder {
	return Folder{
		ID:         NewID(),
		Name:       norm.NFC.String(name),
		CoverColor: color,
		Icon:       icon,
		CreatedAt:  clock.Now(),
	}
}

// Validate checks the folder against the write-time rules.
func (f Folder) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.Name, validation.Required, validation.Length(1, MaxFolderNameLength)),
		validation.Field(&f.CoverColor, validation.Required,
			validation.In(ColorBlue, ColorDarkBlue, ColorCyan, ColorOrange)),
		validation.Field(&f.Icon, validation.Required),
		validation.Field(&f.CreatedAt, validation.Required),
	)
}
