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

import "golang.org/x/exp/slices"

// Optimize applies the engine's two syntactic rewrite passes, in
// order: filter pushdown past projection, then project coalescing.
// Both passes recurse in post-order and terminate because each
// rewrite strictly reduces the number of (Filter-over-Project) or
// (Project-over-Project) pairs in the tree.
func Optimize(root Step) Step {
	root = filterpushdown(root)
	root = projectcoalesce(root)
	return root
}

// filterpushdown rewrites Filter(Project(cols), preds) into
// Project(cols, Filter(preds, G)) where G is the grandchild, since
// predicates reference source columns and projection trims them
// afterwards. It refuses to push a filter across an Aggregate,
// because filtering before grouping has different semantics than
// filtering after.
func filterpushdown(s Step) Step {
	if s == nil {
		return nil
	}
	if c := s.Child(); c != nil {
		s.SetChild(filterpushdown(c))
	}

	f, ok := s.(*Filter)
	if !ok {
		return s
	}
	p, ok := f.Child().(*Project)
	if !ok {
		return s
	}
	if _, isAgg := p.Child().(*Aggregate); isAgg {
		return s
	}
	grandchild := p.Child()
	newFilter := &Filter{Preds: f.Preds}
	newFilter.SetChild(grandchild)
	p.SetChild(newFilter)
	return p
}

// projectcoalesce rewrites Project(outer, Project(inner, child)) into
// a single Project(keep, child), where keep is the intersection of
// outer and inner, preserving outer's order. After pushdown an inner
// projection is a narrowing filter on available columns; an outer
// column absent from the inner set cannot be revived, so intersection
// (not union) is correct.
func projectcoalesce(s Step) Step {
	if s == nil {
		return nil
	}
	if c := s.Child(); c != nil {
		s.SetChild(projectcoalesce(c))
	}

	outer, ok := s.(*Project)
	if !ok {
		return s
	}
	inner, ok := outer.Child().(*Project)
	if !ok {
		return s
	}
	keep := intersectPreserveOrder(outer.Columns, inner.Columns)
	merged := &Project{Columns: keep}
	merged.SetChild(inner.Child())
	return merged
}

// intersectPreserveOrder returns the elements of a that also appear
// in b, preserving a's order.
func intersectPreserveOrder(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, x := range a {
		if slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}
