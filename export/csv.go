// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/siemens/hostverify/types"
)

// WriteCSV writes a header line followed by one line per record to w, using
// CRLF line endings.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write CSV: %w", err)
	}
	return nil
}

// WriteCSVFile creates (or truncates) the file at path and writes the records
// to it as CSV.
func WriteCSVFile(path string, records []types.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close CSV file: %w", cerr)
		}
	}()
	return WriteCSV(f, records)
}
