package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-indel/internal/region"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// RecordIndex answers region queries for one dataset loaded into the store.
type RecordIndex struct {
	store   *Store
	dataset string
	records []*vcf.Variant
}

var _ region.Index = (*RecordIndex)(nil)

// Index loads the chromosome and position of every record under the given
// dataset name and returns an index over them. Loading a dataset name a
// second time replaces the earlier rows.
func (s *Store) Index(dataset string, records []*vcf.Variant) (*RecordIndex, error) {
	if _, err := s.db.Exec("DELETE FROM records WHERE dataset=?", dataset); err != nil {
		return nil, fmt.Errorf("clear dataset %s: %w", dataset, err)
	}

	if err := s.appendRecords(dataset, records); err != nil {
		return nil, err
	}

	return &RecordIndex{store: s, dataset: dataset, records: records}, nil
}

// appendRecords batch-inserts records using the Appender API.
func (s *Store) appendRecords(dataset string, records []*vcf.Variant) error {
	if len(records) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "records")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for i, v := range records {
		if err := appender.AppendRow(dataset, v.Chrom, v.Pos, int64(i)); err != nil {
			return fmt.Errorf("append record %s:%d: %w", v.Chrom, v.Pos, err)
		}
	}

	return appender.Flush()
}

// Count returns the number of rows indexed for the dataset.
func (idx *RecordIndex) Count() (int, error) {
	var n int
	err := idx.store.db.QueryRow("SELECT COUNT(*) FROM records WHERE dataset=?", idx.dataset).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Query returns the records inside r in file order.
func (idx *RecordIndex) Query(r region.Region) ([]*vcf.Variant, error) {
	rows, err := idx.store.db.Query(`SELECT ord FROM records
		WHERE dataset=? AND chrom=? AND pos BETWEEN ? AND ?
		ORDER BY ord`,
		idx.dataset, r.Chrom, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("query region %s: %w", r, err)
	}
	defer rows.Close()

	var out []*vcf.Variant
	for rows.Next() {
		var ord int64
		if err := rows.Scan(&ord); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if ord < 0 || ord >= int64(len(idx.records)) {
			return nil, fmt.Errorf("record ordinal %d out of range", ord)
		}
		out = append(out, idx.records[ord])
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
