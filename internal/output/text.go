package output

import (
	"bufio"
	"fmt"
	"io"
)

// TextWriter writes one human-readable line per row, with a banner each
// time the region changes.
type TextWriter struct {
	w          *bufio.Writer
	lastRegion string
	started    bool
}

// NewTextWriter creates a new human-readable writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteHeader is a no-op; text output has no header line.
func (t *TextWriter) WriteHeader() error {
	return nil
}

// Write writes a single row.
func (t *TextWriter) Write(r Row) error {
	if !t.started || r.Region != t.lastRegion {
		if _, err := fmt.Fprintf(t.w, "\n=== %s: %s ===\n", r.Tool, orDash(r.Region)); err != nil {
			return err
		}
		t.started = true
		t.lastRegion = r.Region
	}

	var err error
	switch {
	case r.Status == StatusNoTruth:
		_, err = fmt.Fprintf(t.w, "Position %d found in call set but not in truth set.\n", r.Pos)
	case r.Pos > 0:
		_, err = fmt.Fprintf(t.w, "%s:%d %s>%s  Sample %s  original %s  converted %s  [%s]\n",
			r.Chrom, r.Pos, r.Ref, formatAlts(r.Alts), r.Sample, r.Original, r.Translated, r.Status)
	default:
		_, err = fmt.Fprintf(t.w, "%s\t%s\t[%s]\n", r.Sample, r.Translated, r.Status)
	}
	if err != nil {
		return err
	}

	if r.Detail != "" {
		_, err = fmt.Fprintf(t.w, "    %s\n", r.Detail)
	}
	return err
}

// Flush flushes any buffered data.
func (t *TextWriter) Flush() error {
	return t.w.Flush()
}
