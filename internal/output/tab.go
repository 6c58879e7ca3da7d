package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TabWriter writes result rows in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Tool",
			"Region",
			"Chrom",
			"Pos",
			"Sample",
			"Ref",
			"Alt",
			"Original_GT",
			"Translated_GT",
			"Status",
			"Detail",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single row.
func (tw *TabWriter) Write(r Row) error {
	pos := "-"
	if r.Pos > 0 {
		pos = strconv.FormatInt(r.Pos, 10)
	}

	ref := orDash(r.Ref)
	alts := "-"
	if r.Ref != "" {
		alts = formatAlts(r.Alts)
	}

	fields := []string{
		r.Tool,
		orDash(r.Region),
		orDash(r.Chrom),
		pos,
		orDash(r.Sample),
		ref,
		alts,
		orDash(r.Original),
		orDash(r.Translated),
		string(r.Status),
		orDash(r.Detail),
	}

	_, err := fmt.Fprintln(tw.w, strings.Join(fields, "\t"))
	return err
}

// Flush flushes any buffered data.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
