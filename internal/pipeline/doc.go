// Package pipeline orchestrates the cleaning run: per-variant discovery,
// loading, validation, transformation and export, plus the two-variant
// orchestrator that runs commercial and non-commercial concurrently and
// merges their summaries.
package pipeline
