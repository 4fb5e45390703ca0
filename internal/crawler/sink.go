package crawler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Sink receives output records as the crawl produces them.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// SinkError marks a failure writing to the output sink. Unlike fetch
// failures it is not recoverable: the run terminates on it.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("write output record: %v", e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// JSONLSink appends one JSON object per line to a single file. It is
// exclusively owned by one run; no locking needed in the sequential
// pipeline.
type JSONLSink struct {
	file   *os.File
	buf    *bufio.Writer
	enc    *json.Encoder
	logger *zap.Logger
}

// NewJSONLSink creates (truncating) the output file at path.
func NewJSONLSink(path string, logger *zap.Logger) (*JSONLSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file %s: %w", path, err)
	}
	buf := bufio.NewWriter(f)
	enc := json.NewEncoder(buf)
	// Titles and extracts carry raw Unicode; keep it readable.
	enc.SetEscapeHTML(false)
	return &JSONLSink{
		file:   f,
		buf:    buf,
		enc:    enc,
		logger: logger,
	}, nil
}

// Write appends rec as one JSON line. Encoder failures wrap in
// *SinkError so the driver can tell them apart from crawl failures.
func (s *JSONLSink) Write(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.enc.Encode(rec); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (s *JSONLSink) Close() error {
	if err := s.buf.Flush(); err != nil {
		closeErr := s.file.Close()
		if closeErr != nil {
			s.logger.Warn("Failed to close output file after flush error", zap.Error(closeErr))
		}
		return &SinkError{Err: err}
	}
	if err := s.file.Close(); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}
