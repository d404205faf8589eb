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

// Package plan implements the physical planner: a total, structural,
// one-to-one mapping from a logical plan.pir.Step tree to a tree of
// exec.Operator values. The mapping never fails except to propagate
// a Scan construction error.
package plan

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SnellerInc/tabql/exec"
	"github.com/SnellerInc/tabql/plan/pir"
	"github.com/SnellerInc/tabql/tqerr"
)

// Build lowers a logical plan into a physical operator tree. log may
// be nil; it is threaded down to operators (currently only
// exec.HashAggregate) that emit diagnostic log lines.
func Build(step pir.Step, log *zap.Logger) (exec.Operator, error) {
	switch n := step.(type) {
	case *pir.Scan:
		return exec.NewScan(n.Path)
	case *pir.Filter:
		child, err := Build(n.Child(), log)
		if err != nil {
			return nil, err
		}
		return exec.NewFilter(child, n.Preds), nil
	case *pir.Aggregate:
		child, err := Build(n.Child(), log)
		if err != nil {
			return nil, err
		}
		return exec.NewHashAggregate(child, n.GroupKeys, n.Aggs, log), nil
	case *pir.Project:
		child, err := Build(n.Child(), log)
		if err != nil {
			return nil, err
		}
		return exec.NewProject(child, n.Columns), nil
	case *pir.Limit:
		child, err := Build(n.Child(), log)
		if err != nil {
			return nil, err
		}
		return exec.NewLimit(child, n.N), nil
	default:
		return nil, tqerr.New(tqerr.Internal, "", fmt.Errorf("plan: unhandled logical step type %T", step))
	}
}
