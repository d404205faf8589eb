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
	"io"

	"github.com/SnellerInc/tabql/value"
)

// memRows is a minimal in-memory Operator used to exercise streaming
// operators in isolation from Scan, stubbing out a leaf iterator
// rather than going through a real file.
type memRows struct {
	rows []value.Row
	pos  int
}

func newMemRows(rows ...value.Row) *memRows {
	return &memRows{rows: rows}
}

func (m *memRows) Next() (value.Row, error) {
	if m.pos >= len(m.rows) {
		return nil, io.EOF
	}
	row := m.rows[m.pos]
	m.pos++
	return row, nil
}

func (m *memRows) Close() error { return nil }
