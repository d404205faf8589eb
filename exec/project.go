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

import "github.com/SnellerInc/tabql/value"

// Project emits a new row keyed by Columns, in order. Unknown
// columns do not raise errors; they yield null. This is intentional:
// it lets a projection above an Aggregate pass synthetic columns
// (sum(x), count(*)) through once they already exist in the input,
// without the projection needing to know which columns are
// aggregate outputs versus plain references.
type Project struct {
	child   Operator
	columns []string
}

// NewProject constructs a Project over child with the given column
// list.
func NewProject(child Operator, columns []string) *Project {
	return &Project{child: child, columns: columns}
}

// Next projects the next row pulled from the child.
func (p *Project) Next() (value.Row, error) {
	row, err := p.child.Next()
	if err != nil {
		return nil, err
	}
	out := make(value.Row, len(p.columns))
	for _, c := range p.columns {
		out[c] = row.Get(c)
	}
	return out, nil
}

// Close closes the child operator.
func (p *Project) Close() error {
	return p.child.Close()
}
