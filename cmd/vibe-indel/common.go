package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-indel/internal/duckdb"
	"github.com/inodb/vibe-indel/internal/genotype"
	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/region"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// Index backends
const (
	indexScan   = "scan"
	indexSorted = "sorted"
	indexDuckDB = "duckdb"
)

// newLogger builds the stderr logger for a run. Every entry carries the
// command name and a run id.
func newLogger(v *viper.Viper, command string, stderr io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if v.GetBool("verbose") {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(stderr),
		level,
	)
	return zap.New(core).With(
		zap.String("command", command),
		zap.String("run", uuid.NewString()),
	)
}

// delimiterPolicy returns the configured output delimiter policy, or def
// when none is set.
func delimiterPolicy(v *viper.Viper, def genotype.DelimiterPolicy) (genotype.DelimiterPolicy, error) {
	s := strings.TrimSpace(v.GetString("delimiter"))
	if s == "" {
		return def, nil
	}
	p, err := genotype.ParseDelimiterPolicy(s)
	if err != nil {
		return def, &usageError{err: err}
	}
	return p, nil
}

// rowSink writes result rows and keeps a status tally.
type rowSink struct {
	writer  output.RowWriter
	summary *output.Summary
	closer  io.Closer
	done    bool
}

// openSink opens the configured output destination and writes the header.
func openSink(v *viper.Viper, stdout io.Writer) (*rowSink, error) {
	var (
		w      = stdout
		closer io.Closer
	)
	if path := v.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating output file: %w", err)
		}
		w, closer = f, f
	}

	writer, err := output.NewWriter(v.GetString("format"), w)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, &usageError{err: err}
	}
	if err := writer.WriteHeader(); err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("writing header: %w", err)
	}

	return &rowSink{writer: writer, summary: output.NewSummary(), closer: closer}, nil
}

func (s *rowSink) emit(r output.Row) error {
	s.summary.Add(r)
	return s.writer.Write(r)
}

// finish flushes the rows, closes the output file and prints the summary.
func (s *rowSink) finish(stderr io.Writer) error {
	if err := s.release(); err != nil {
		return err
	}
	s.summary.WriteSummary(stderr)
	return nil
}

// close releases the output after a failed or cancelled run, keeping the
// rows written so far. It is a no-op once finish has run.
func (s *rowSink) close() {
	_ = s.release()
}

func (s *rowSink) release() error {
	if s.done {
		return nil
	}
	s.done = true

	flushErr := s.writer.Flush()
	var closeErr error
	if s.closer != nil {
		closeErr = s.closer.Close()
	}
	if flushErr != nil {
		return fmt.Errorf("flushing output: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing output: %w", closeErr)
	}
	return nil
}

// parseRegions parses the region list, logging every malformed entry.
func parseRegions(input string, logger *zap.Logger) ([]region.Region, error) {
	regions, errs := region.Parse(input)
	for _, err := range errs {
		logger.Warn("skipping malformed region", zap.Error(err))
	}
	if len(regions) == 0 {
		return nil, &usageError{err: region.ErrNoRegions}
	}
	return regions, nil
}

// restrictRegions keeps the regions on chromosomes in contigs.
func restrictRegions(regions []region.Region, contigs []string, logger *zap.Logger) ([]region.Region, error) {
	valid, invalid := region.SplitByContigs(regions, contigs)
	for _, r := range invalid {
		logger.Warn("region not present in dataset", zap.Stringer("region", r))
	}
	if len(valid) == 0 {
		return nil, &usageError{err: region.ErrNoRegionsInDataset}
	}
	return valid, nil
}

// loadDataset reads a VCF file and logs its header at debug level.
func loadDataset(path string, logger *zap.Logger) (*vcf.Dataset, error) {
	ds, err := vcf.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded VCF",
		zap.String("path", path),
		zap.Int("records", len(ds.Records)),
		zap.Strings("samples", ds.Samples))
	logger.Debug("VCF header",
		zap.String("path", path),
		zap.Strings("header", ds.Header),
		zap.Strings("contigs", ds.Contigs))
	return ds, nil
}

// indexBuilder creates region indexes over loaded datasets using the
// configured backend.
type indexBuilder struct {
	backend string
	store   *duckdb.Store
}

func newIndexBuilder(v *viper.Viper) (*indexBuilder, error) {
	backend := strings.ToLower(strings.TrimSpace(v.GetString("index")))
	switch backend {
	case "", indexScan:
		return &indexBuilder{backend: indexScan}, nil
	case indexSorted:
		return &indexBuilder{backend: indexSorted}, nil
	case indexDuckDB:
		store, err := duckdb.Open()
		if err != nil {
			return nil, err
		}
		return &indexBuilder{backend: indexDuckDB, store: store}, nil
	default:
		return nil, usageErrorf("unknown index %q (use %s, %s or %s)", backend, indexScan, indexSorted, indexDuckDB)
	}
}

func (b *indexBuilder) build(name string, ds *vcf.Dataset) (region.Index, error) {
	switch b.backend {
	case indexSorted:
		return region.NewSortedIndex(ds.Records), nil
	case indexDuckDB:
		return b.store.Index(name, ds.Records)
	}
	return region.NewScanIndex(ds.Records), nil
}

func (b *indexBuilder) Close() error {
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}

// unionChromosomes merges chromosome lists, keeping first-seen order.
func unionChromosomes(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, c := range list {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
