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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SnellerInc/tabql/query"
)

func TestExplainIndentsByTwoSpacesPerLevel(t *testing.T) {
	doc, err := query.Parse([]byte(`{"from":"t.csv","select":["a"],"limit":5}`))
	require.NoError(t, err)
	top, err := Build(doc)
	require.NoError(t, err)

	out := Explain(top)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3) // Limit, Project, Scan

	assert.True(t, strings.HasPrefix(lines[0], "Limit("))
	assert.True(t, strings.HasPrefix(lines[1], "  Project("))
	assert.True(t, strings.HasPrefix(lines[2], "    Scan(path=t.csv)"))
}

func TestCloneIsIndependent(t *testing.T) {
	doc, err := query.Parse([]byte(`{"from":"t.csv","select":["a"],"where":[{"col":"a","op":"==","val":1}]}`))
	require.NoError(t, err)
	top, err := Build(doc)
	require.NoError(t, err)

	clone := Clone(top)
	optimized := Optimize(clone)

	// mutating the optimized copy must not affect the original tree
	if p, ok := optimized.(*Project); ok {
		p.Columns = append(p.Columns, "extra")
	}
	original := top.(*Project)
	assert.NotContains(t, original.Columns, "extra")
}
