// Package mockclickhouserows provides a canned driver.Rows fake for
// exercising row-iteration code without a live ClickHouse.
package mockclickhouserows

import (
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Rows yields pre-seeded row values. Scan assigns values positionally
// into the destination pointers.
type Rows struct {
	Data    [][]any
	ScanErr error
	IterErr error

	cursor int
	closed bool
}

var _ driver.Rows = &Rows{}

func (r *Rows) Next() bool {
	if r.closed || r.cursor >= len(r.Data) {
		return false
	}
	r.cursor++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	row := r.Data[r.cursor-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *time.Time:
			*d = v.(time.Time)
		case *int64:
			*d = v.(int64)
		default:
			return fmt.Errorf("scan: unsupported destination type at index %d", i)
		}
	}
	return nil
}

func (r *Rows) ScanStruct(dest any) error {
	return fmt.Errorf("ScanStruct not supported")
}

func (r *Rows) ColumnTypes() []driver.ColumnType {
	return nil
}

func (r *Rows) Totals(dest ...any) error {
	return nil
}

func (r *Rows) Columns() []string {
	return nil
}

func (r *Rows) Close() error {
	r.closed = true
	return nil
}

func (r *Rows) Err() error {
	return r.IterErr
}
