// Package download orchestrates the full issue pipeline: identifier
// resolution, landing-page extraction, page discovery and image
// acquisition, output assembly and archive bookkeeping. Batch
// operations fan the pipeline out across the issues of a period and
// the periods of a series.
package download
