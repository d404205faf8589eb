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
	"github.com/SnellerInc/tabql/query"
	"github.com/SnellerInc/tabql/tqerr"
	"github.com/SnellerInc/tabql/value"
)

// Filter forwards only rows satisfying the conjunction of its
// predicates. It is a streaming operator: O(1) state per row.
type Filter struct {
	child Operator
	preds []query.Predicate
}

// NewFilter constructs a Filter over child with the given predicates.
func NewFilter(child Operator, preds []query.Predicate) *Filter {
	return &Filter{child: child, preds: preds}
}

// Next pulls from the child until a matching row is found or the
// child is exhausted. A comparison error is fatal to the stream.
func (f *Filter) Next() (value.Row, error) {
	for {
		row, err := f.child.Next()
		if err != nil {
			return nil, err
		}
		ok, err := f.matches(row)
		if err != nil {
			return nil, err
		}
		if ok {
			return row, nil
		}
	}
}

func (f *Filter) matches(row value.Row) (bool, error) {
	for _, p := range f.preds {
		ok, err := value.Compare(row.Get(p.Col), p.Op, p.Val)
		if err != nil {
			return false, tqerr.New(tqerr.InvalidOperator, string(p.Op), err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Close closes the child operator. Filter owns no resources of its
// own.
func (f *Filter) Close() error {
	return f.child.Close()
}
