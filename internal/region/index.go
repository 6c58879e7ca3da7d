package region

import "github.com/inodb/vibe-indel/internal/vcf"

// Index finds the records of one dataset that fall inside a region.
type Index interface {
	Query(r Region) ([]*vcf.Variant, error)
}

// ScanIndex answers queries by scanning every loaded record.
type ScanIndex struct {
	records []*vcf.Variant
}

// NewScanIndex creates an index over records.
func NewScanIndex(records []*vcf.Variant) *ScanIndex {
	return &ScanIndex{records: records}
}

// Query returns the records inside r in file order.
func (s *ScanIndex) Query(r Region) ([]*vcf.Variant, error) {
	return Filter(s.records, r), nil
}
