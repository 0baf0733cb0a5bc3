package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Print-safe embedding bounds. MaxHeight is roughly the A4 ratio at
// MaxWidth, which keeps scan pages from ballooning the stored PDF.
const (
	MaxWidth  = 1024
	MaxHeight = 1400

	jpegQuality = 60
)

// Normalized is a print-safe raster: JPEG bytes plus pixel dimensions.
type Normalized struct {
	Data   []byte
	Width  int
	Height int
}

// Normalizer rasterizes and bounds input images for embedding.
type Normalizer struct {
	log *zap.Logger
}

// NewNormalizer creates a normalizer.
func NewNormalizer(log *zap.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize decodes raw image bytes and re-encodes them as a bounded
// JPEG, aspect ratio preserved, composited over solid white so a
// transparent source never prints black.
//
// Never fails for input that decodes as a valid raster; returns
// ErrDecodeFailure otherwise.
func (n *Normalizer) Normalize(raw []byte) (Normalized, error) {
	src, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Normalized{}, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	width, height = boundDimensions(width, height)

	img := imaging.Resize(src, width, height, imaging.Lanczos)

	// White underlay before flattening to JPEG.
	canvas := imaging.New(width, height, color.White)
	flat := imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Normalized{}, fmt.Errorf("encode normalized image: %w", err)
	}

	n.log.Debug("normalized image",
		zap.Int("source_width", bounds.Dx()),
		zap.Int("source_height", bounds.Dy()),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("bytes", buf.Len()),
	)

	return Normalized{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// boundDimensions scales (width, height) into MaxWidth x MaxHeight,
// preserving aspect ratio. Images already inside the bounds pass
// through unchanged - normalization never upscales.
func boundDimensions(width, height int) (int, int) {
	if width > height {
		if width > MaxWidth {
			height = int(math.Round(float64(height) * MaxWidth / float64(width)))
			width = MaxWidth
		}
	} else {
		if height > MaxHeight {
			width = int(math.Round(float64(width) * MaxHeight / float64(height)))
			height = MaxHeight
		}
	}
	return width, height
}
