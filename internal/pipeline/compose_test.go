package pipeline

import (
	"image/color"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func normalizeAll(t *testing.T, raws ...[]byte) []Normalized {
	t.Helper()
	n := NewNormalizer(zap.NewNop())
	out := make([]Normalized, 0, len(raws))
	for _, raw := range raws {
		img, err := n.Normalize(raw)
		require.NoError(t, err)
		out = append(out, img)
	}
	return out
}

func TestCompose_OnePagePerImage(t *testing.T) {
	c := NewComposer(zap.NewNop())
	images := normalizeAll(t,
		makeJPEG(t, 800, 600, color.White),
		makeJPEG(t, 600, 800, color.Black),
		makeJPEG(t, 500, 500, color.White),
	)

	pdf, layouts, err := c.Compose(images)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Len(t, layouts, 3)

	m := NewMerger(zap.NewNop())
	pages, err := m.PageCount(pdf)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestCompose_EmptyInput(t *testing.T) {
	c := NewComposer(zap.NewNop())

	_, _, err := c.Compose(nil)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestCompose_FitsAndCenters(t *testing.T) {
	c := NewComposer(zap.NewNop())
	images := normalizeAll(t, makeJPEG(t, 800, 600, color.White))

	_, layouts, err := c.Compose(images)
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	l := layouts[0]
	// 800x600 is width-bound on A4 with 10mm margins: the image spans
	// the full usable width and is centered vertically.
	assert.InDelta(t, 190.0, l.Width, 0.01)
	assert.InDelta(t, 142.5, l.Height, 0.01)
	assert.InDelta(t, 10.0, l.X, 0.01)
	assert.InDelta(t, 77.25, l.Y, 0.01)

	// Placement stays inside the margins.
	assert.GreaterOrEqual(t, l.X, pageMarginMM-0.01)
	assert.GreaterOrEqual(t, l.Y, pageMarginMM-0.01)
}

func TestCompose_NeverOverflowsMargins(t *testing.T) {
	c := NewComposer(zap.NewNop())
	images := normalizeAll(t,
		makePNG(t, 2000, 3000, color.White), // taller than the page ratio
		makePNG(t, 3000, 2000, color.White), // wider than the page ratio
	)

	_, layouts, err := c.Compose(images)
	require.NoError(t, err)

	for _, l := range layouts {
		assert.LessOrEqual(t, l.Width, 190.01, "page %d width", l.Page)
		assert.LessOrEqual(t, l.Height, 277.01, "page %d height", l.Page)
		assert.GreaterOrEqual(t, l.X, pageMarginMM-0.01, "page %d x", l.Page)
		assert.GreaterOrEqual(t, l.Y, pageMarginMM-0.01, "page %d y", l.Page)
	}
}

func TestCompose_CatalogGolden(t *testing.T) {
	c := NewComposer(zap.NewNop())
	c.SetCreationDate(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	images := normalizeAll(t,
		makeJPEG(t, 800, 600, color.White),
		makePNG(t, 2000, 3000, color.White),
	)

	_, layouts, err := c.Compose(images)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "compose_catalog", []byte(Catalog(layouts)))
}
