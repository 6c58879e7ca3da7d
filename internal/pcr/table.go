// Package pcr normalizes PCR fragment-length tables: one sample per row,
// one pair of allele-length columns per locus.
package pcr

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"
)

// Table is a loaded fragment-length table.
type Table struct {
	Header []string   // first column is the sample name
	Rows   [][]string // raw cells, one slice per sample
}

// Sample is one row's allele pair for a single locus.
type Sample struct {
	Name   string
	Raw    [2]string
	Values [2]float64
	Usable bool // both cells parsed as finite numbers
}

// Load reads a CSV table from path. Gzipped files are detected by their
// magic bytes.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	magic, _ := br.Peek(2)

	var r io.Reader = br
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	t, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV content with a header row. Every cell is kept as text so
// unparseable values can be reported per sample. Header names are kept
// verbatim, including repeated and empty ones. Rows are cut or padded to the
// header width.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("read csv: no columns")
	}

	header := records[0]
	ncol := len(header)
	t := &Table{Header: header}

	data := make([][]string, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]string, ncol)
		copy(row, rec)
		data[i] = row
	}
	if len(data) == 0 {
		return t, nil
	}

	df := dataframe.LoadRecords(data,
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}

	nrow, _ := df.Dims()
	t.Rows = make([][]string, nrow)
	for i := 0; i < nrow; i++ {
		row := make([]string, ncol)
		for j := 0; j < ncol; j++ {
			if e := df.Elem(i, j); !e.IsNA() {
				row[j] = e.String()
			}
		}
		t.Rows[i] = row
	}
	return t, nil
}

// Loci returns the number of complete column pairs after the sample column.
func (t *Table) Loci() int {
	if len(t.Header) < 1 {
		return 0
	}
	return (len(t.Header) - 1) / 2
}

// Label returns the display label of locus i, built from its two headers.
func (t *Table) Label(i int) string {
	c1, c2 := 2*i+1, 2*i+2
	return t.Header[c1] + " & " + t.Header[c2]
}

// Samples returns every row's allele pair for locus i.
func (t *Table) Samples(i int) []Sample {
	c1, c2 := 2*i+1, 2*i+2
	samples := make([]Sample, len(t.Rows))
	for r, row := range t.Rows {
		s := Sample{Name: cell(row, 0)}
		s.Raw = [2]string{cell(row, c1), cell(row, c2)}
		v1, ok1 := parseLength(s.Raw[0])
		v2, ok2 := parseLength(s.Raw[1])
		if ok1 && ok2 {
			s.Values = [2]float64{v1, v2}
			s.Usable = true
		}
		samples[r] = s
	}
	return samples
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseLength parses a finite allele length.
func parseLength(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
