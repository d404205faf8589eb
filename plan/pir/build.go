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

package pir

import (
	"strings"

	"github.com/SnellerInc/tabql/query"
)

const (
	sumPrefix = "sum("
	sumSuffix = ")"
	countStar = "count(*)"
)

// Build translates a parsed query document into a logical plan,
// bottom-up: Scan, then an optional Filter, then an optional
// Aggregate, then the mandatory Project, then an optional Limit.
func Build(doc *query.Document) (Step, error) {
	var top Step = &Scan{Path: doc.From}

	if len(doc.Where) > 0 {
		f := &Filter{Preds: doc.Where}
		f.SetChild(top)
		top = f
	}

	columns, aggs := parseSelect(doc.Select)

	if len(doc.GroupBy) > 0 || len(aggs) > 0 {
		a := &Aggregate{GroupKeys: doc.GroupBy, Aggs: aggs}
		a.SetChild(top)
		top = a
	}

	p := &Project{Columns: columns}
	p.SetChild(top)
	top = p

	if doc.Limit != nil {
		l := &Limit{N: *doc.Limit}
		l.SetChild(top)
		top = l
	}

	return top, nil
}

// parseSelect classifies each select-list item, in order, into the
// output column it contributes and, for aggregate items, the
// AggSpec it produces. The output-columns list preserves select
// order and drives both the projection and the downstream headers.
func parseSelect(items []string) (columns []string, aggs []AggSpec) {
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if strings.HasPrefix(trimmed, sumPrefix) && strings.HasSuffix(trimmed, sumSuffix) {
			inner := strings.TrimSpace(trimmed[len(sumPrefix) : len(trimmed)-len(sumSuffix)])
			out := "sum(" + inner + ")"
			columns = append(columns, out)
			aggs = append(aggs, AggSpec{Func: Sum, Col: inner, Alias: out})
			continue
		}
		if strings.EqualFold(trimmed, countStar) {
			columns = append(columns, countStar)
			aggs = append(aggs, AggSpec{Func: Count, Col: StarColumn, Alias: countStar})
			continue
		}
		columns = append(columns, trimmed)
	}
	return columns, aggs
}
