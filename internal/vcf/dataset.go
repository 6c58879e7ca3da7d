package vcf

import "fmt"

// Dataset is a fully materialized VCF file.
type Dataset struct {
	Path    string
	Header  []string
	Contigs []string
	Samples []string
	Records []*Variant
}

// Load reads the whole VCF at path into memory.
func Load(path string) (*Dataset, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	records, err := ReadAll(p)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return &Dataset{
		Path:    path,
		Header:  p.Header(),
		Contigs: p.Contigs(),
		Samples: p.SampleNames(),
		Records: records,
	}, nil
}

// Chromosomes returns the chromosomes the dataset knows about: the header
// contig lines, or the chromosomes seen in records when the header declares
// none.
func (d *Dataset) Chromosomes() []string {
	if len(d.Contigs) > 0 {
		return d.Contigs
	}
	return Chromosomes(d.Records)
}
