// Package pipeline implements the PDF composition pipeline:
// raster normalization, image-to-PDF composition, and PDF merging.
//
// Compose and merge are best-effort multi-item operations: a single
// bad input never aborts the whole run. Instead every item's outcome
// is recorded in a Report so silent data loss is observable - the
// caller decides how to surface dropped items. The operations fail
// outright only when no input at all survives.
package pipeline
