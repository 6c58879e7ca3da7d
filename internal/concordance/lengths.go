// Package concordance normalizes indel genotypes to allele-length scales and
// reconciles genotypes between a call set and a truth set, region by region.
package concordance

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/allele"
	"github.com/inodb/vibe-indel/internal/genotype"
	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/region"
)

// Tool names used in result rows.
const (
	ToolLengths     = "lengths"
	ToolConcordance = "concordance"
)

// RegionProcessor turns one region into result rows.
type RegionProcessor interface {
	ProcessRegion(r region.Region) ([]output.Row, error)
}

// LengthReporter re-expresses every sample genotype as allele lengths
// relative to the shortest allele of its record.
type LengthReporter struct {
	index  region.Index
	policy genotype.DelimiterPolicy
	logger *zap.Logger
}

// NewLengthReporter creates a reporter over an indexed dataset.
func NewLengthReporter(idx region.Index) *LengthReporter {
	return &LengthReporter{
		index:  idx,
		policy: genotype.UnphasedDelimiter,
		logger: zap.NewNop(),
	}
}

// SetDelimiterPolicy sets how translated genotypes are joined.
func (lr *LengthReporter) SetDelimiterPolicy(p genotype.DelimiterPolicy) {
	lr.policy = p
}

// SetLogger sets the logger for diagnostics.
func (lr *LengthReporter) SetLogger(l *zap.Logger) {
	lr.logger = l
}

// ProcessRegion translates the genotypes of every record inside r.
// A region without records yields no rows and a warning.
func (lr *LengthReporter) ProcessRegion(r region.Region) ([]output.Row, error) {
	log := lr.logger.With(zap.Stringer("region", r))

	records, err := lr.index.Query(r)
	if err != nil {
		return nil, fmt.Errorf("query region %s: %w", r, err)
	}
	if len(records) == 0 {
		log.Warn("no records found in region")
		return nil, nil
	}

	indels := 0
	for _, v := range records {
		if v.IsIndel() {
			indels++
		}
	}
	if indels > 1 {
		log.Info("complex region", zap.Int("indel_records", indels))
	}

	var rows []output.Row
	for _, v := range records {
		lengths := v.Alleles().Lengths()
		scale, ok := allele.Normalize(lengths)
		if !ok {
			scale = allele.Scale{}
		}
		log.Debug("normalized allele lengths",
			zap.Int64("pos", v.Pos),
			zap.String("ref", v.Ref),
			zap.Strings("alts", v.Alts),
			zap.Float64s("lengths", lengths),
			zap.Float64("min", scale.Min),
			zap.Float64s("scale", scale.Values))

		detail := "scale=" + formatScale(scale)
		for _, call := range v.Calls {
			tr := genotype.TranslateLengths(genotype.Parse(call.GT), scale, lr.policy)

			status := output.StatusOK
			switch {
			case tr.Missing:
				status = output.StatusMissing
			case tr.NA > 0:
				status = output.StatusNA
				log.Warn("allele index outside length scale",
					zap.Int64("pos", v.Pos),
					zap.String("sample", call.Sample),
					zap.String("genotype", call.GT),
					zap.Int("scale_size", scale.Len()))
			}

			rows = append(rows, output.Row{
				Tool:       ToolLengths,
				Region:     r.String(),
				Chrom:      v.Chrom,
				Pos:        v.Pos,
				Sample:     call.Sample,
				Ref:        v.Ref,
				Alts:       v.Alts,
				Original:   call.GT,
				Translated: tr.Genotype,
				Status:     status,
				Detail:     detail,
			})
		}
	}

	return rows, nil
}

func formatScale(s allele.Scale) string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = allele.FormatValue(v)
	}
	return strings.Join(parts, ",")
}
