package pipeline

import (
	"go.uber.org/zap"
)

// Pipeline bundles the normalizer, composer and merger behind the two
// operations the orchestration layer needs.
type Pipeline struct {
	Normalizer *Normalizer
	Composer   *Composer
	Merger     *Merger

	log *zap.Logger
}

// New wires a pipeline.
func New(log *zap.Logger) *Pipeline {
	return &Pipeline{
		Normalizer: NewNormalizer(log),
		Composer:   NewComposer(log),
		Merger:     NewMerger(log),
		log:        log,
	}
}

// ComposeFromImages normalizes each raw image and paginates the
// survivors into one PDF, one page per image, in input order. An
// image that fails to decode drops its page - recorded in the report,
// logged, never fatal. Fails with ErrNoPages only when no image
// survives.
func (p *Pipeline) ComposeFromImages(raws [][]byte) ([]byte, *Report, error) {
	report := &Report{}

	var images []Normalized
	for i, raw := range raws {
		img, err := p.Normalizer.Normalize(raw)
		if err != nil {
			p.log.Warn("skipping undecodable scan image",
				zap.Int("index", i),
				zap.Error(err),
			)
			report.add(i, err)
			continue
		}
		report.add(i, nil)
		images = append(images, img)
	}

	if len(images) == 0 {
		return nil, report, ErrNoPages
	}

	pdf, _, err := p.Composer.Compose(images)
	if err != nil {
		return nil, report, err
	}
	return pdf, report, nil
}

// MergePdfs concatenates the decodable inputs. See Merger.Merge.
func (p *Pipeline) MergePdfs(inputs [][]byte) ([]byte, *Report, error) {
	return p.Merger.Merge(inputs)
}
