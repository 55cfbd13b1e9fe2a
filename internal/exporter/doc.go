// Package exporter writes pipeline outputs to disk: cleaned datasets as CSV,
// the per-run summary as JSON, and optionally both variants into a single
// SQLite database for downstream SQL analysis.
package exporter
