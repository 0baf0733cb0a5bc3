package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// Merger concatenates the pages of multiple PDF byte streams.
type Merger struct {
	log  *zap.Logger
	conf *model.Configuration
}

// NewMerger creates a merger with relaxed validation, so mildly
// malformed but readable documents still merge.
func NewMerger(log *zap.Logger) *Merger {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Merger{log: log, conf: conf}
}

// Merge concatenates every page of every decodable input, in input
// order, each input's internal page order preserved. Inputs that fail
// to decode are skipped, logged, and recorded in the report; the
// operation fails only with ErrNoMergeInput when nothing decodes.
func (m *Merger) Merge(inputs [][]byte) ([]byte, *Report, error) {
	report := &Report{}

	var readers []io.ReadSeeker
	for i, in := range inputs {
		rs := bytes.NewReader(in)
		if err := api.Validate(rs, m.conf); err != nil {
			m.log.Warn("skipping undecodable merge input",
				zap.Int("index", i),
				zap.Error(err),
			)
			report.add(i, fmt.Errorf("%w: %v", ErrDecodeFailure, err))
			continue
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, report, fmt.Errorf("merge pdfs: rewind input %d: %w", i, err)
		}
		report.add(i, nil)
		readers = append(readers, rs)
	}

	if len(readers) == 0 {
		return nil, report, ErrNoMergeInput
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, m.conf); err != nil {
		return nil, report, fmt.Errorf("merge pdfs: %w", err)
	}

	m.log.Debug("merged pdfs",
		zap.Int("inputs", len(inputs)),
		zap.Int("merged", len(readers)),
		zap.Int("bytes", buf.Len()),
	)

	return buf.Bytes(), report, nil
}

// PageCount returns the number of pages in a PDF byte stream.
func (m *Merger) PageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), m.conf)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}
