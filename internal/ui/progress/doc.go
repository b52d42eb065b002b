// Package progress provides progress indication components.
//
// [Display] follows many dispatched operations at once: one line per
// repository whose leading glyph animates until the operation settled and
// then turns into a success or failure mark. [Track] shows an inline spinner
// for a single operation, and [ProgressBar] shows determinate progress while
// indexing.
//
// Everything writes to the given writer (stderr in the CLI) so stdout stays
// clean for piping. On writers that are not terminals nothing is animated.
package progress
