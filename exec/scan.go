// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package exec

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/SnellerInc/tabql/tqerr"
	"github.com/SnellerInc/tabql/value"
)

// Scan is the leaf operator: it opens a CSV file, reads its header
// row as the schema, and materializes one Row per subsequent record.
// Tokenization is delegated to encoding/csv, the same package the
// teacher's own CSV chopper wraps.
type Scan struct {
	f       *os.File
	r       *csv.Reader
	headers []string
	done    bool
}

// NewScan opens path and reads its header row. Construction fails
// with tqerr.IOOpen if the file cannot be opened, or
// tqerr.SchemaMissing if a header row cannot be read.
func NewScan(path string) (*Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tqerr.New(tqerr.IOOpen, path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = false
	headers, err := r.Read()
	if err != nil {
		f.Close()
		return nil, tqerr.New(tqerr.SchemaMissing, path, err)
	}
	return &Scan{f: f, r: r, headers: headers}, nil
}

// Next returns the next row of the scanned file. Fields trailing off
// the end of a short record are treated as empty cells (-> null).
func (s *Scan) Next() (value.Row, error) {
	if s.done {
		return nil, io.EOF
	}
	record, err := s.r.Read()
	if err != nil {
		s.done = true
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, tqerr.New(tqerr.Internal, "scan", err)
	}
	row := make(value.Row, len(s.headers))
	for i, h := range s.headers {
		if i < len(record) {
			row[h] = value.Parse(record[i])
		} else {
			row[h] = value.Null
		}
	}
	return row, nil
}

// Close releases the underlying file handle.
func (s *Scan) Close() error {
	return s.f.Close()
}
