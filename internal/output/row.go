// Package output provides result formatters.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Status classifies one translated genotype.
type Status string

const (
	StatusOK        Status = "ok"        // every allele translated
	StatusNA        Status = "na"        // at least one allele off the scale
	StatusUnmatched Status = "unmatched" // at least one allele without a truth counterpart
	StatusMissing   Status = "missing"   // genotype was missing and passed through
	StatusNoTruth   Status = "no_truth"  // position absent from the truth callset
)

// Row is one structured result: a sample's genotype at one position
// (or, for the PCR table, one sample in one column pair).
type Row struct {
	Tool       string
	Region     string
	Chrom      string
	Pos        int64
	Sample     string
	Ref        string
	Alts       []string
	Original   string
	Translated string
	Status     Status
	Detail     string
}

// RowWriter defines the interface for writing result rows.
type RowWriter interface {
	WriteHeader() error
	Write(r Row) error
	Flush() error
}

// NewWriter returns the writer for a format name: "tab" or "text".
func NewWriter(format string, w io.Writer) (RowWriter, error) {
	switch format {
	case "tab", "tsv":
		return NewTabWriter(w), nil
	case "text":
		return NewTextWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Summary counts rows per status.
type Summary struct {
	Total  int
	counts map[Status]int
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{counts: make(map[Status]int)}
}

// Add counts one row.
func (s *Summary) Add(r Row) {
	s.Total++
	s.counts[r.Status]++
}

// Count returns the number of rows with the given status.
func (s *Summary) Count(st Status) int {
	return s.counts[st]
}

// WriteSummary writes per-status counts.
func (s *Summary) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "  Total genotypes: %d\n", s.Total)

	statuses := make([]string, 0, len(s.counts))
	for st := range s.counts {
		statuses = append(statuses, string(st))
	}
	sort.Strings(statuses)

	for _, st := range statuses {
		n := s.counts[Status(st)]
		pct := float64(n) / float64(s.Total) * 100
		fmt.Fprintf(w, "  %-16s %d (%.1f%%)\n", st+":", n, pct)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatAlts(alts []string) string {
	if len(alts) == 0 {
		return "."
	}
	return strings.Join(alts, ",")
}
