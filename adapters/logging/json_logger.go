// Package logging implements the request-logging port with line-delimited
// JSON records, one per handled request.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"edascope/internal/errors"
	"edascope/ports"
)

// JSONRequestLogger writes structured request records to stdout, and to a log
// file when one is configured.
type JSONRequestLogger struct {
	logger *slog.Logger
	file   *os.File
}

// NewJSONRequestLogger creates a logger. An empty logFile means stdout only.
func NewJSONRequestLogger(logFile string) (*JSONRequestLogger, error) {
	var w io.Writer = os.Stdout
	var f *os.File

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to create log directory")
		}
		var err error
		f, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to open log file")
		}
		w = io.MultiWriter(os.Stdout, f)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &JSONRequestLogger{logger: slog.New(handler), file: f}, nil
}

// LogRequest writes one record. Extra keys are emitted in sorted order so
// repeated runs log identically shaped lines.
func (l *JSONRequestLogger) LogRequest(entry ports.RequestEntry) {
	attrs := []any{
		slog.String("request_id", entry.RequestID),
		slog.String("endpoint", entry.Endpoint),
		slog.Int("status", entry.Status),
		slog.Float64("latency_ms", entry.LatencyMS),
	}

	keys := make([]string, 0, len(entry.Extra))
	for k := range entry.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, entry.Extra[k]))
	}

	l.logger.Info("api_request", attrs...)
}

// Close releases the log file, if any.
func (l *JSONRequestLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
