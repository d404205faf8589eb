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

// Package query holds the parsed query document: the source path,
// the select list, the where-predicates, the grouping columns and
// the limit. It is the raw material the logical plan builder
// consumes exactly once.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/SnellerInc/tabql/tqerr"
	"github.com/SnellerInc/tabql/value"
)

// Predicate is one conjunct of the where clause: Col <Op> Val.
type Predicate struct {
	Col string
	Op  value.Op
	Val value.Cell
}

// Document is the parsed query: a source path, an ordered select
// list, an implicitly-conjoined list of predicates, an ordered
// grouping column list, and an optional limit.
type Document struct {
	From    string
	Select  []string
	Where   []Predicate
	GroupBy []string
	Limit   *int
}

// wireDocument mirrors the JSON shape of §6: field names match the
// query document format exactly.
type wireDocument struct {
	From    string          `json:"from"`
	Select  []string        `json:"select"`
	Where   []wirePredicate `json:"where"`
	GroupBy []string        `json:"group_by"`
	Limit   *int            `json:"limit"`
}

type wirePredicate struct {
	Col string `json:"col"`
	Op  string `json:"op"`
	Val any    `json:"val"`
}

// Parse decodes a query document from JSON bytes. Any malformed
// document, including one missing the required "from" or "select"
// fields, is reported as a tqerr.ParseQuery error wrapping the
// underlying cause; a predicate using an unrecognized operator is
// reported as a tqerr.InvalidOperator error naming that operator.
func Parse(raw []byte) (*Document, error) {
	var w wireDocument
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, tqerr.New(tqerr.ParseQuery, "", err)
	}
	if w.From == "" {
		return nil, tqerr.New(tqerr.ParseQuery, "", fmt.Errorf("missing required field %q", "from"))
	}
	if len(w.Select) == 0 {
		return nil, tqerr.New(tqerr.ParseQuery, "", fmt.Errorf("missing required field %q", "select"))
	}
	if w.Limit != nil && *w.Limit < 0 {
		return nil, tqerr.New(tqerr.ParseQuery, "", fmt.Errorf("limit must be non-negative, got %d", *w.Limit))
	}

	doc := &Document{
		From:    w.From,
		Select:  w.Select,
		GroupBy: w.GroupBy,
		Limit:   w.Limit,
	}
	for _, wp := range w.Where {
		op, err := parseOp(wp.Op)
		if err != nil {
			return nil, tqerr.New(tqerr.InvalidOperator, wp.Op, err)
		}
		doc.Where = append(doc.Where, Predicate{
			Col: wp.Col,
			Op:  op,
			Val: value.FromJSON(wp.Val),
		})
	}
	return doc, nil
}

func parseOp(s string) (value.Op, error) {
	switch value.Op(s) {
	case value.Eq, value.Ne, value.Lt, value.Le, value.Gt, value.Ge:
		return value.Op(s), nil
	default:
		return "", &value.ErrInvalidOperator{Op: s}
	}
}
