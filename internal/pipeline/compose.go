package pipeline

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// pageMarginMM is the margin on every side of an A4 portrait page.
const pageMarginMM = 10.0

// PageLayout records where one image landed on its page, in mm.
type PageLayout struct {
	Page   int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// String renders the layout with centimeter-paper precision; used by
// golden tests and verbose CLI output.
func (l PageLayout) String() string {
	return fmt.Sprintf("page %d: %.2fx%.2f at (%.2f, %.2f)", l.Page, l.Width, l.Height, l.X, l.Y)
}

// Composer paginates normalized images into a multi-page PDF.
type Composer struct {
	log *zap.Logger

	// creationDate pins the PDF creation date when non-zero, so tests
	// can produce byte-stable output.
	creationDate time.Time
}

// NewComposer creates a composer.
func NewComposer(log *zap.Logger) *Composer {
	return &Composer{log: log}
}

// SetCreationDate pins the output's creation date.
func (c *Composer) SetCreationDate(t time.Time) {
	c.creationDate = t
}

// Compose lays out one A4 portrait page per input image, in input
// order: each image is scaled with min(usableWidth/w, usableHeight/h)
// so it fits entirely inside the margins, then centered both ways.
// No page is reordered or dropped.
//
// Returns the PDF bytes and the per-page layouts. ErrNoPages if the
// input is empty.
func (c *Composer) Compose(images []Normalized) ([]byte, []PageLayout, error) {
	if len(images) == 0 {
		return nil, nil, ErrNoPages
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(true)
	if !c.creationDate.IsZero() {
		doc.SetCreationDate(c.creationDate)
		doc.SetModificationDate(c.creationDate)
	}

	pageWidth, pageHeight := doc.GetPageSize()
	usableWidth := pageWidth - 2*pageMarginMM
	usableHeight := pageHeight - 2*pageMarginMM

	layouts := make([]PageLayout, 0, len(images))
	for i, img := range images {
		doc.AddPage()

		// Fit entirely, never overflow the margins.
		scale := math.Min(usableWidth/float64(img.Width), usableHeight/float64(img.Height))
		w := float64(img.Width) * scale
		h := float64(img.Height) * scale
		x := (pageWidth - w) / 2
		y := (pageHeight - h) / 2

		name := fmt.Sprintf("page-%d", i)
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")

		layouts = append(layouts, PageLayout{Page: i + 1, X: x, Y: y, Width: w, Height: h})
	}

	if doc.Err() {
		return nil, nil, fmt.Errorf("compose pdf: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, nil, fmt.Errorf("compose pdf: %w", err)
	}

	c.log.Debug("composed pdf",
		zap.Int("pages", len(images)),
		zap.Int("bytes", buf.Len()),
	)

	return buf.Bytes(), layouts, nil
}

// Catalog renders layouts one per line, for golden comparison.
func Catalog(layouts []PageLayout) string {
	var b bytes.Buffer
	for _, l := range layouts {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
