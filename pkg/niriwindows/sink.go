package niriwindows

import (
	"encoding/json"
	"fmt"
	"io"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// WriterSink writes one line per status, either as a waybar JSON object or
// as the bare glyph line.
type WriterSink struct {
	w      io.Writer
	format Format
}

func NewWriterSink(w io.Writer, format Format) *WriterSink {
	return &WriterSink{w: w, format: format}
}

func (s *WriterSink) WriteStatus(status Status) error {
	switch s.format {
	case FormatJSON:
		enc := json.NewEncoder(s.w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(status); err != nil {
			return fmt.Errorf("encode status: %w", err)
		}
	case FormatText:
		if _, err := fmt.Fprintln(s.w, status.Text); err != nil {
			return fmt.Errorf("write status: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", s.format)
	}

	return nil
}
