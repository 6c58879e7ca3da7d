package concordance

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/genotype"
	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/region"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// Comparer translates call set genotypes into truth set allele indices at
// the positions both sets share.
type Comparer struct {
	truth     region.Index
	call      region.Index
	policy    genotype.DelimiterPolicy
	heuristic genotype.RefHeuristic
	logger    *zap.Logger
}

// NewComparer creates a comparer over indexed truth and call datasets.
func NewComparer(truth, call region.Index) *Comparer {
	return &Comparer{
		truth:     truth,
		call:      call,
		policy:    genotype.PreserveDelimiter,
		heuristic: genotype.SubstringHeuristic,
		logger:    zap.NewNop(),
	}
}

// SetDelimiterPolicy sets how translated genotypes are joined.
func (c *Comparer) SetDelimiterPolicy(p genotype.DelimiterPolicy) {
	c.policy = p
}

// SetRefHeuristic sets how a call reference allele is disambiguated when the
// two records anchor their reference differently.
func (c *Comparer) SetRefHeuristic(h genotype.RefHeuristic) {
	c.heuristic = h
}

// SetLogger sets the logger for diagnostics.
func (c *Comparer) SetLogger(l *zap.Logger) {
	c.logger = l
}

// ProcessRegion reconciles every call record inside r with the truth record
// at the same position.
func (c *Comparer) ProcessRegion(r region.Region) ([]output.Row, error) {
	log := c.logger.With(zap.Stringer("region", r))

	truthRecords, err := c.truth.Query(r)
	if err != nil {
		return nil, fmt.Errorf("query truth region %s: %w", r, err)
	}
	callRecords, err := c.call.Query(r)
	if err != nil {
		return nil, fmt.Errorf("query call region %s: %w", r, err)
	}

	logRecords(log, "truth", truthRecords)
	logRecords(log, "call", callRecords)

	if len(callRecords) == 0 {
		log.Warn("no call records found in region", zap.Int("truth_records", len(truthRecords)))
		return nil, nil
	}

	truthByPos, _ := byPosition(truthRecords)
	callByPos, callOrder := byPosition(callRecords)

	var rows []output.Row
	for _, pos := range callOrder {
		cv := callByPos[pos]
		tv, ok := truthByPos[pos]
		if !ok {
			log.Warn("position found in call set but not in truth set", zap.Int64("pos", pos))
			rows = append(rows, output.Row{
				Tool:   ToolConcordance,
				Region: r.String(),
				Chrom:  cv.Chrom,
				Pos:    pos,
				Ref:    cv.Ref,
				Alts:   cv.Alts,
				Status: output.StatusNoTruth,
			})
			continue
		}

		corr := genotype.NewCorrespondence(tv.Alleles(), cv.Alleles(), c.heuristic)
		if corr.Mode == genotype.LengthMode {
			log.Debug("reference alleles differ, comparing length differences",
				zap.Int64("pos", pos),
				zap.String("truth_ref", tv.Ref),
				zap.String("call_ref", cv.Ref),
				zap.Strings("truth_map", corr.TruthMap()),
				zap.Strings("call_map", corr.CallMap(false)),
				zap.Strings("call_map_adjusted", corr.CallMap(true)))
		} else {
			log.Debug("matching reference allele", zap.Int64("pos", pos), zap.String("ref", tv.Ref))
		}

		for _, call := range cv.Calls {
			truthGT := ""
			if tc, ok := tv.Call(call.Sample); ok {
				truthGT = tc.GT
			}

			tr := corr.Translate(call.GT, truthGT, c.policy)
			for _, miss := range tr.Misses {
				log.Warn("allele not found in truth set",
					zap.Int64("pos", pos),
					zap.String("sample", call.Sample),
					zap.String("allele", miss.Token),
					zap.String("value", miss.Value),
					zap.String("mode", string(corr.Mode)))
			}

			status := output.StatusOK
			switch {
			case tr.Missing:
				status = output.StatusMissing
			case len(tr.Misses) > 0:
				status = output.StatusUnmatched
			}

			detail := fmt.Sprintf("mode=%s truth=%s", corr.Mode, orDot(truthGT))
			if status == output.StatusOK && truthGT != "" {
				detail += fmt.Sprintf(" concordant=%t", sameAlleles(tr.Genotype, truthGT))
			}

			rows = append(rows, output.Row{
				Tool:       ToolConcordance,
				Region:     r.String(),
				Chrom:      cv.Chrom,
				Pos:        pos,
				Sample:     call.Sample,
				Ref:        cv.Ref,
				Alts:       cv.Alts,
				Original:   call.GT,
				Translated: tr.Genotype,
				Status:     status,
				Detail:     detail,
			})
		}
	}

	return rows, nil
}

// byPosition keys records by position. A later record at the same position
// replaces an earlier one; order lists each position once, first-seen first.
func byPosition(records []*vcf.Variant) (map[int64]*vcf.Variant, []int64) {
	m := make(map[int64]*vcf.Variant, len(records))
	var order []int64
	for _, v := range records {
		if _, seen := m[v.Pos]; !seen {
			order = append(order, v.Pos)
		}
		m[v.Pos] = v
	}
	return m, order
}

func logRecords(log *zap.Logger, set string, records []*vcf.Variant) {
	if ce := log.Check(zap.DebugLevel, "record"); ce == nil {
		return
	}
	for _, v := range records {
		gts := make([]string, len(v.Calls))
		for i, call := range v.Calls {
			gts[i] = call.Sample + "=" + call.GT
		}
		log.Debug("record",
			zap.String("set", set),
			zap.String("chrom", v.Chrom),
			zap.Int64("pos", v.Pos),
			zap.String("ref", v.Ref),
			zap.Strings("alts", v.Alts),
			zap.Strings("genotypes", gts))
	}
}

// sameAlleles compares two genotypes as unordered allele multisets.
func sameAlleles(a, b string) bool {
	ga, gb := genotype.Parse(a).Alleles, genotype.Parse(b).Alleles
	if len(ga) != len(gb) {
		return false
	}
	sa := append([]string(nil), ga...)
	sb := append([]string(nil), gb...)
	sort.Strings(sa)
	sort.Strings(sb)
	return strings.Join(sa, "/") == strings.Join(sb, "/")
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}
