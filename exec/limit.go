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

// Limit forwards at most N rows from its child, then returns io.EOF
// without consulting the child again. N == 0 yields an empty stream.
type Limit struct {
	child Operator
	n     int
	sent  int
}

// NewLimit constructs a Limit over child bounded at n rows.
func NewLimit(child Operator, n int) *Limit {
	return &Limit{child: child, n: n}
}

// Next returns the next row, or io.EOF once n rows have been sent.
func (l *Limit) Next() (value.Row, error) {
	if l.sent >= l.n {
		return nil, io.EOF
	}
	row, err := l.child.Next()
	if err != nil {
		return nil, err
	}
	l.sent++
	return row, nil
}

// Close closes the child operator.
func (l *Limit) Close() error {
	return l.child.Close()
}
