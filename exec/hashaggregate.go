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
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/SnellerInc/tabql/plan/pir"
	"github.com/SnellerInc/tabql/tqerr"
	"github.com/SnellerInc/tabql/value"
)

// group holds one group's running aggregate state plus a copy of the
// untyped key tuple needed to emit the group-by columns.
type group struct {
	keyCells []value.Cell
	sums     []float64
	counts   []uint64
}

// HashAggregate is the engine's blocking operator: on the first call
// to Next it drains its child completely, building one group per
// distinct value of GroupKeys, then streams one output row per group.
// It uses O(G*A) memory for G groups and A aggregates.
type HashAggregate struct {
	child     Operator
	groupKeys []string
	aggs      []pir.AggSpec
	log       *zap.Logger

	built  bool
	output []value.Row
	pos    int
}

// NewHashAggregate constructs a HashAggregate over child. log may be
// nil, in which case the build-phase completion line is not emitted.
func NewHashAggregate(child Operator, groupKeys []string, aggs []pir.AggSpec, log *zap.Logger) *HashAggregate {
	return &HashAggregate{child: child, groupKeys: groupKeys, aggs: aggs, log: log}
}

// Next drives the build phase on the first call, then streams one row
// per group. Empty input produces zero output rows, even when
// GroupKeys is empty and Aggs is non-empty: no rows means no groups.
func (h *HashAggregate) Next() (value.Row, error) {
	if !h.built {
		if err := h.build(); err != nil {
			return nil, err
		}
		h.built = true
	}
	if h.pos >= len(h.output) {
		return nil, io.EOF
	}
	row := h.output[h.pos]
	h.pos++
	return row, nil
}

func (h *HashAggregate) build() error {
	groups := make(map[string]*group)
	order := make([]string, 0)

	for {
		row, err := h.child.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		key, keyCells, err := h.groupKey(row)
		if err != nil {
			return err
		}
		g, ok := groups[key]
		if !ok {
			g = &group{
				keyCells: keyCells,
				sums:     make([]float64, len(h.aggs)),
				counts:   make([]uint64, len(h.aggs)),
			}
			groups[key] = g
			order = append(order, key)
		}
		for i, spec := range h.aggs {
			switch spec.Func {
			case pir.Count:
				g.counts[i]++
			case pir.Sum:
				g.sums[i] += row.Get(spec.Col).Float()
			}
		}
	}

	h.output = make([]value.Row, 0, len(order))
	for _, key := range order {
		g := groups[key]
		out := make(value.Row, len(h.groupKeys)+len(h.aggs))
		for i, gk := range h.groupKeys {
			out[gk] = g.keyCells[i]
		}
		for i, spec := range h.aggs {
			switch spec.Func {
			case pir.Sum:
				out[spec.Alias] = value.Float(g.sums[i])
			case pir.Count:
				out[spec.Alias] = value.Int(int64(g.counts[i]))
			}
		}
		h.output = append(h.output, out)
	}

	if h.log != nil {
		h.log.Debug("aggregation build complete", zap.Int("group_count", len(h.output)))
	}
	return nil
}

// groupKey computes the ordered key tuple for row and its canonical
// textual encoding, used solely as the hash-map key. The encoding is
// injective over the cell-value domain because each cell contributes
// its kind tag alongside its raw value.
func (h *HashAggregate) groupKey(row value.Row) (string, []value.Cell, error) {
	cells := make([]value.Cell, len(h.groupKeys))
	tokens := make([][2]any, len(h.groupKeys))
	for i, gk := range h.groupKeys {
		c := row.Get(gk)
		cells[i] = c
		tokens[i] = c.Token()
	}
	buf, err := json.Marshal(tokens)
	if err != nil {
		return "", nil, tqerr.New(tqerr.SerializeKey, "", err)
	}
	return string(buf), cells, nil
}

// Close closes the child operator. The aggregator's own per-group
// state and output vector need no explicit release.
func (h *HashAggregate) Close() error {
	return h.child.Close()
}
