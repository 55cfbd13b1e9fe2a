// Package files locates variant input files in the raw-data directory and
// produces the timestamped names used for pipeline outputs.
package files
