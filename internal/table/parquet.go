package table

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// Parquet serializes the table to parquet bytes. An empty table produces a
// valid file carrying the full column schema and no row groups.
func (t *Table) Parquet() ([]byte, error) {
	var buf bytes.Buffer

	w := parquet.NewGenericWriter[Row](&buf)
	if len(t.Rows) > 0 {
		if _, err := w.Write(t.Rows); err != nil {
			return nil, fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}

	return buf.Bytes(), nil
}
