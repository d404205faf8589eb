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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SnellerInc/tabql/value"
)

func TestProjectSelectsAndOrdersColumns(t *testing.T) {
	src := newMemRows(value.Row{"a": value.Int(1), "b": value.Int(2), "c": value.Int(3)})
	p := NewProject(src, []string{"c", "a"})
	rows := drain(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, value.Row{"c": value.Int(3), "a": value.Int(1)}, rows[0])
}

func TestProjectUnknownColumnYieldsNull(t *testing.T) {
	src := newMemRows(value.Row{"a": value.Int(1)})
	p := NewProject(src, []string{"a", "sum(amount)"})
	rows := drain(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, value.Null, rows[0]["sum(amount)"])
}

func TestProjectionPreservesKeySet(t *testing.T) {
	src := newMemRows(value.Row{"a": value.Int(1), "b": value.Int(2)})
	cols := []string{"a"}
	p := NewProject(src, cols)
	rows := drain(t, p)
	require.Len(t, rows, 1)
	assert.ElementsMatch(t, cols, keysOf(rows[0]))
}

func keysOf(r value.Row) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}
