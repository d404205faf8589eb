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

	"github.com/SnellerInc/tabql/plan/pir"
	"github.com/SnellerInc/tabql/value"
)

func purchaseRows() *memRows {
	mk := func(u string, amt int64) value.Row {
		return value.Row{"user": value.Text(u), "amount": value.Int(amt)}
	}
	return newMemRows(
		mk("u1", 100), mk("u1", 30),
		mk("u2", 50), mk("u2", 45),
		mk("u3", 55), mk("u4", 200),
	)
}

func rowsByUser(t *testing.T, rows []value.Row) map[string]value.Row {
	t.Helper()
	out := make(map[string]value.Row, len(rows))
	for _, r := range rows {
		out[r.Get("user").Canonical()] = r
	}
	return out
}

func TestHashAggregateSumByGroup(t *testing.T) {
	aggs := []pir.AggSpec{{Func: pir.Sum, Col: "amount", Alias: "sum(amount)"}}
	agg := NewHashAggregate(purchaseRows(), []string{"user"}, aggs, nil)
	rows := drain(t, agg)
	require.Len(t, rows, 4)
	byUser := rowsByUser(t, rows)
	assert.Equal(t, value.Float(130), byUser["u1"]["sum(amount)"])
	assert.Equal(t, value.Float(95), byUser["u2"]["sum(amount)"])
	assert.Equal(t, value.Float(55), byUser["u3"]["sum(amount)"])
	assert.Equal(t, value.Float(200), byUser["u4"]["sum(amount)"])
}

func TestHashAggregateSumAndCount(t *testing.T) {
	aggs := []pir.AggSpec{
		{Func: pir.Sum, Col: "amount", Alias: "sum(amount)"},
		{Func: pir.Count, Col: pir.StarColumn, Alias: "count(*)"},
	}
	agg := NewHashAggregate(purchaseRows(), []string{"user"}, aggs, nil)
	rows := drain(t, agg)
	byUser := rowsByUser(t, rows)
	assert.Equal(t, value.Int(2), byUser["u1"]["count(*)"])
	assert.Equal(t, value.Int(2), byUser["u2"]["count(*)"])
	assert.Equal(t, value.Int(1), byUser["u3"]["count(*)"])
	assert.Equal(t, value.Int(1), byUser["u4"]["count(*)"])
}

func TestHashAggregateFilteredByAmountGE55(t *testing.T) {
	// amount >= 55 is a non-strict bound, so u3 (amount == 55)
	// survives alongside u1 and u4; u2's rows (50, 45) are both
	// below the bound.
	filtered := filterByAmountGE55(t, purchaseRows())
	aggs := []pir.AggSpec{{Func: pir.Sum, Col: "amount", Alias: "sum(amount)"}}
	agg := NewHashAggregate(filtered, []string{"user"}, aggs, nil)
	rows := drain(t, agg)
	byUser := rowsByUser(t, rows)
	require.Len(t, rows, 3)
	assert.Equal(t, value.Float(100), byUser["u1"]["sum(amount)"])
	assert.Equal(t, value.Float(55), byUser["u3"]["sum(amount)"])
	assert.Equal(t, value.Float(200), byUser["u4"]["sum(amount)"])
	assert.NotContains(t, byUser, "u2")
}

func filterByAmountGE55(t *testing.T, src Operator) Operator {
	t.Helper()
	rows := drain(t, src)
	var kept []value.Row
	for _, r := range rows {
		ok, err := value.Compare(r.Get("amount"), value.Ge, value.Int(55))
		require.NoError(t, err)
		if ok {
			kept = append(kept, r)
		}
	}
	return newMemRows(kept...)
}

func TestHashAggregateEmptyInputProducesNoRows(t *testing.T) {
	aggs := []pir.AggSpec{{Func: pir.Count, Col: pir.StarColumn, Alias: "count(*)"}}
	agg := NewHashAggregate(newMemRows(), nil, aggs, nil)
	rows := drain(t, agg)
	assert.Empty(t, rows, "no input rows means no groups, even with an aggregate and no group_by")
}

func TestHashAggregateSumCoercesNonNumericToZero(t *testing.T) {
	src := newMemRows(
		value.Row{"user": value.Text("u1"), "amount": value.Text("oops")},
		value.Row{"user": value.Text("u1"), "amount": value.Null},
		value.Row{"user": value.Text("u1"), "amount": value.Int(5)},
	)
	aggs := []pir.AggSpec{{Func: pir.Sum, Col: "amount", Alias: "sum(amount)"}}
	agg := NewHashAggregate(src, []string{"user"}, aggs, nil)
	rows := drain(t, agg)
	require.Len(t, rows, 1)
	assert.Equal(t, value.Float(5), rows[0]["sum(amount)"])
}

func TestHashAggregateDistinguishesIntAndFloatKeys(t *testing.T) {
	src := newMemRows(
		value.Row{"k": value.Int(1)},
		value.Row{"k": value.Float(1.0)},
	)
	aggs := []pir.AggSpec{{Func: pir.Count, Col: pir.StarColumn, Alias: "count(*)"}}
	agg := NewHashAggregate(src, []string{"k"}, aggs, nil)
	rows := drain(t, agg)
	// the group-key encoding carries a kind tag, so Int(1) and
	// Float(1.0) form two distinct groups despite comparing equal
	// numerically.
	assert.Len(t, rows, 2)
}
