package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "fisheriescli/internal/errors"
	"fisheriescli/pkg/contracts/domain"
)

// SummaryWriter writes the combined run summary as indented JSON.
type SummaryWriter struct {
	logger *slog.Logger
}

// NewSummaryWriter creates a summary writer. A nil logger falls back to
// slog.Default.
func NewSummaryWriter(logger *slog.Logger) *SummaryWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryWriter{logger: logger}
}

// Write marshals the summary with two-space indentation and writes it to
// path, creating parent directories as needed.
func (w *SummaryWriter) Write(ctx context.Context, path string, summary domain.CombinedSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create output directory", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("marshal summary", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("write summary file", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "summary written", slog.String("path", path))
	return nil
}
