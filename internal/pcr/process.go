package pcr

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/allele"
	"github.com/inodb/vibe-indel/internal/genotype"
	"github.com/inodb/vibe-indel/internal/output"
)

// ToolPCR is the tool name used in result rows.
const ToolPCR = "pcr"

// Processor normalizes every locus of a table onto a shared length scale.
type Processor struct {
	logger *zap.Logger
}

// NewProcessor creates a processor.
func NewProcessor() *Processor {
	return &Processor{logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostics.
func (p *Processor) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Process returns one row per sample per locus. Within a locus every usable
// value from every sample contributes to a single scale, so equal lengths
// anywhere in the column pair share a normalized value.
func (p *Processor) Process(t *Table) []output.Row {
	var rows []output.Row
	for i := 0; i < t.Loci(); i++ {
		rows = append(rows, p.processLocus(t, i)...)
	}
	return rows
}

func (p *Processor) processLocus(t *Table, i int) []output.Row {
	label := t.Label(i)
	log := p.logger.With(zap.Int("locus", i+1), zap.String("label", label))

	samples := t.Samples(i)
	var values []float64
	for _, s := range samples {
		if s.Usable {
			values = append(values, s.Values[0], s.Values[1])
		}
	}

	vs, ok := allele.NewValueScale(values)
	if ok {
		log.Debug("normalized fragment lengths",
			zap.Float64s("distinct", vs.Distinct),
			zap.Float64("min", vs.Scale.Min),
			zap.Float64s("scale", vs.Scale.Values))
	} else {
		log.Warn("no usable allele lengths for locus")
	}

	rows := make([]output.Row, 0, len(samples))
	for _, s := range samples {
		row := output.Row{
			Tool:     ToolPCR,
			Region:   label,
			Sample:   s.Name,
			Original: s.Raw[0] + "/" + s.Raw[1],
		}

		n1, ok1 := vs.Lookup(s.Values[0])
		n2, ok2 := vs.Lookup(s.Values[1])
		switch {
		case !s.Usable:
			row.Translated = genotype.NotApplicable + "/" + genotype.NotApplicable
			row.Status = output.StatusNA
			log.Warn("unparseable allele length", zap.String("sample", s.Name),
				zap.String("allele1", s.Raw[0]), zap.String("allele2", s.Raw[1]))
		default:
			row.Translated = lookupText(n1, ok1) + "/" + lookupText(n2, ok2)
			row.Status = output.StatusOK
			if !ok1 || !ok2 {
				row.Status = output.StatusNA
			}
			row.Detail = fmt.Sprintf("min=%s", allele.FormatValue(vs.Scale.Min))
		}
		rows = append(rows, row)
	}
	return rows
}

func lookupText(v float64, ok bool) string {
	if !ok {
		return genotype.NotApplicable
	}
	return allele.FormatValue(v)
}
