// Package region parses genomic region lists and selects the variant
// records that fall inside them.
package region

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-indel/internal/vcf"
)

var (
	// ErrNoRegions is returned when a region list yields no parseable region.
	ErrNoRegions = errors.New("no valid regions provided")
	// ErrNoRegionsInDataset is returned when none of the regions lie on a
	// chromosome known to the dataset.
	ErrNoRegionsInDataset = errors.New("none of the specified regions are present in the dataset")
)

// Region is a chromosome interval with inclusive bounds.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// Contains reports whether chrom:pos lies inside the region.
func (r Region) Contains(chrom string, pos int64) bool {
	return chrom == r.Chrom && r.Start <= pos && pos <= r.End
}

// MalformedError describes a region string that could not be parsed.
type MalformedError struct {
	Input  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed region %q: %s", e.Input, e.Reason)
}

// Parse parses a semicolon-separated list such as
// "chr1:20000-20100; chr2:30000-31000". Malformed entries are returned as
// *MalformedError values and skipped; the remaining regions are kept.
func Parse(input string) ([]Region, []error) {
	var (
		regions []Region
		errs    []error
	)
	for _, piece := range strings.Split(input, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		r, err := parseOne(piece)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		regions = append(regions, r)
	}
	return regions, errs
}

func parseOne(s string) (Region, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Region{}, &MalformedError{Input: s, Reason: "expected chrom:start-end"}
	}
	bounds := strings.Split(parts[1], "-")
	if len(bounds) != 2 {
		return Region{}, &MalformedError{Input: s, Reason: "expected start-end"}
	}
	start, err := strconv.ParseInt(strings.TrimSpace(bounds[0]), 10, 64)
	if err != nil {
		return Region{}, &MalformedError{Input: s, Reason: fmt.Sprintf("invalid start %q", bounds[0])}
	}
	end, err := strconv.ParseInt(strings.TrimSpace(bounds[1]), 10, 64)
	if err != nil {
		return Region{}, &MalformedError{Input: s, Reason: fmt.Sprintf("invalid end %q", bounds[1])}
	}
	return Region{Chrom: strings.TrimSpace(parts[0]), Start: start, End: end}, nil
}

// Filter returns the records inside r, in their original order.
func Filter(records []*vcf.Variant, r Region) []*vcf.Variant {
	var out []*vcf.Variant
	for _, v := range records {
		if r.Contains(v.Chrom, v.Pos) {
			out = append(out, v)
		}
	}
	return out
}

// SplitByContigs separates regions on a known chromosome from the rest.
func SplitByContigs(regions []Region, contigs []string) (valid, invalid []Region) {
	known := make(map[string]bool, len(contigs))
	for _, c := range contigs {
		known[c] = true
	}
	for _, r := range regions {
		if known[r.Chrom] {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}
