// Package vcf provides VCF file parsing functionality.
package vcf

import "fmt"

// VariantParser is the interface for parsers that read variants.
type VariantParser interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// Close closes the parser and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

// ReadAll reads every remaining variant from the parser into memory.
func ReadAll(p VariantParser) ([]*Variant, error) {
	var records []*Variant
	for {
		v, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("read variant: %w", err)
		}
		if v == nil {
			return records, nil
		}
		records = append(records, v)
	}
}
