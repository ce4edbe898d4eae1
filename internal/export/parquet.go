package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes the entries as a single-row-group parquet table.
func WriteParquet(w io.Writer, entries []Entry) error {
	pw := parquet.NewGenericWriter[Entry](w)
	if _, err := pw.Write(entries); err != nil {
		return fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}
