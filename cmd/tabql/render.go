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

package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/SnellerInc/tabql/value"
)

// maxAlignmentScan caps how many rows are inspected to decide whether
// a column is numeric, matching the driver's documented 50-row scan.
const maxAlignmentScan = 50

// renderTable writes rows as a bordered table with header = columns in
// select-list order. A column whose scanned cells include any numeric
// value is left-padded to its rendered width so it reads as
// right-aligned once the table's fixed-width gutters are applied.
func renderTable(w io.Writer, columns []string, rows []value.Row) {
	numeric := make([]bool, len(columns))
	for i, col := range columns {
		for n, row := range rows {
			if n >= maxAlignmentScan {
				break
			}
			if row.Get(col).Numeric() {
				numeric[i] = true
				break
			}
		}
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	rendered := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			s := row.Get(col).Canonical()
			cells[i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
		rendered[r] = cells
	}

	table := tablewriter.NewTable(w)
	table.Header(columns)
	for _, cells := range rendered {
		aligned := make([]string, len(cells))
		for i, s := range cells {
			if numeric[i] {
				aligned[i] = strings.Repeat(" ", widths[i]-len(s)) + s
			} else {
				aligned[i] = s
			}
		}
		table.Append(aligned)
	}
	table.Render()
}

// orderedRow preserves select-list column order through JSON encoding,
// since a plain map[string]any would marshal its keys alphabetically.
type orderedRow struct {
	columns []string
	row     value.Row
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, col := range o.columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.row.Get(col).Raw())
		if err != nil {
			return nil, err
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

// renderJSON writes rows as a pretty-printed JSON array, one object per
// row, with keys in select-list order.
func renderJSON(w io.Writer, columns []string, rows []value.Row) error {
	ordered := make([]orderedRow, len(rows))
	for i, row := range rows {
		ordered[i] = orderedRow{columns: columns, row: row}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ordered)
}
