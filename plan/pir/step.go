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

// Package pir implements the logical plan: the algebraic tree built
// from a parsed query document, and the syntactic rewrite passes that
// optimize it before physical planning takes over. The tree has a
// handful of node kinds: Scan, Filter, Aggregate, Project, Limit.
package pir

import (
	"fmt"
	"strings"

	"github.com/SnellerInc/tabql/query"
)

// Step is one node of the logical plan tree. Every Step but Scan has
// exactly one child; Scan is the tree's single leaf. Child points
// toward the leaf (the producer); a Step pulls rows from its child.
type Step interface {
	Child() Step
	SetChild(Step)
	describe(indent int, sb *strings.Builder)
}

// Scan is the leaf step: it names the tabular source the whole plan
// reads from.
type Scan struct {
	Path string
}

func (s *Scan) Child() Step     { return nil }
func (s *Scan) SetChild(c Step) { panic("pir: Scan has no child") }

func (s *Scan) describe(indent int, sb *strings.Builder) {
	writeLine(sb, indent, fmt.Sprintf("Scan(path=%s)", s.Path))
}

// Filter keeps only rows satisfying the conjunction of Preds.
type Filter struct {
	Preds []query.Predicate
	child Step
}

func (f *Filter) Child() Step     { return f.child }
func (f *Filter) SetChild(c Step) { f.child = c }

func (f *Filter) describe(indent int, sb *strings.Builder) {
	writeLine(sb, indent, fmt.Sprintf("Filter(predicates=%d)", len(f.Preds)))
	f.child.describe(indent+1, sb)
}

// AggFunc names a supported aggregate function.
type AggFunc int

const (
	Sum AggFunc = iota
	Count
)

func (f AggFunc) String() string {
	switch f {
	case Sum:
		return "sum"
	case Count:
		return "count"
	default:
		return "invalid"
	}
}

// StarColumn is the sentinel source column for count(*).
const StarColumn = "*"

// AggSpec is one (function, source column, output alias) triple.
type AggSpec struct {
	Func  AggFunc
	Col   string
	Alias string
}

// Aggregate partitions rows into groups by GroupKeys and computes
// Aggs over each group.
type Aggregate struct {
	GroupKeys []string
	Aggs      []AggSpec
	child     Step
}

func (a *Aggregate) Child() Step     { return a.child }
func (a *Aggregate) SetChild(c Step) { a.child = c }

func (a *Aggregate) describe(indent int, sb *strings.Builder) {
	writeLine(sb, indent, fmt.Sprintf("Aggregate(group_keys=%s, aggs=%d)", formatList(a.GroupKeys), len(a.Aggs)))
	a.child.describe(indent+1, sb)
}

// Project emits a new row keyed by Columns in order.
type Project struct {
	Columns []string
	child   Step
}

func (p *Project) Child() Step     { return p.child }
func (p *Project) SetChild(c Step) { p.child = c }

func (p *Project) describe(indent int, sb *strings.Builder) {
	writeLine(sb, indent, fmt.Sprintf("Project(columns=%s)", formatList(p.Columns)))
	p.child.describe(indent+1, sb)
}

// Limit forwards at most N rows from its child.
type Limit struct {
	N     int
	child Step
}

func (l *Limit) Child() Step     { return l.child }
func (l *Limit) SetChild(c Step) { l.child = c }

func (l *Limit) describe(indent int, sb *strings.Builder) {
	writeLine(sb, indent, fmt.Sprintf("Limit(n=%d)", l.N))
	l.child.describe(indent+1, sb)
}

func writeLine(sb *strings.Builder, indent int, s string) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(s)
	sb.WriteByte('\n')
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// Clone returns a deep copy of the plan rooted at s, so that
// --explain-both can print the original plan and then optimize and
// print an independent copy without the two runs aliasing any nodes.
func Clone(s Step) Step {
	switch n := s.(type) {
	case *Scan:
		cp := *n
		return &cp
	case *Filter:
		cp := &Filter{Preds: append([]query.Predicate(nil), n.Preds...)}
		cp.SetChild(Clone(n.child))
		return cp
	case *Aggregate:
		cp := &Aggregate{
			GroupKeys: append([]string(nil), n.GroupKeys...),
			Aggs:      append([]AggSpec(nil), n.Aggs...),
		}
		cp.SetChild(Clone(n.child))
		return cp
	case *Project:
		cp := &Project{Columns: append([]string(nil), n.Columns...)}
		cp.SetChild(Clone(n.child))
		return cp
	case *Limit:
		cp := &Limit{N: n.N}
		cp.SetChild(Clone(n.child))
		return cp
	default:
		panic(fmt.Sprintf("pir: Clone: unhandled step type %T", s))
	}
}
