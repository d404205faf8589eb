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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/SnellerInc/tabql/plan"
	"github.com/SnellerInc/tabql/plan/pir"
	"github.com/SnellerInc/tabql/query"
	"github.com/SnellerInc/tabql/tabqllog"
	"github.com/SnellerInc/tabql/tqerr"
	"github.com/SnellerInc/tabql/value"
)

var (
	dashexplain     bool
	dashexplainboth bool
	dashformat      string
)

func init() {
	flag.BoolVar(&dashexplain, "explain", false, "print only the optimized logical plan; do not execute")
	flag.BoolVar(&dashexplainboth, "explain-both", false, "print the original plan and the optimized plan; do not execute")
	flag.StringVar(&dashformat, "format", "table", "output format for query results: table or json")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		exitf("usage: tabql [flags] <query_path>")
	}
	if dashformat != "table" && dashformat != "json" {
		exitf("unsupported -format %q: want table or json", dashformat)
	}

	log, err := tabqllog.New()
	if err != nil {
		// logging is ambient, not load-bearing: fall back to running
		// unlogged rather than aborting the query.
		log = nil
	}

	if err := run(os.Stdout, flag.Arg(0), log); err != nil {
		exit(err)
	}
}

func run(w io.Writer, queryPath string, log *zap.Logger) error {
	raw, err := os.ReadFile(queryPath)
	if err != nil {
		return tqerr.New(tqerr.IOOpen, queryPath, err)
	}
	doc, err := query.Parse(raw)
	if err != nil {
		return err
	}

	queryID := tabqllog.QueryID()
	qlog := tabqllog.WithQuery(log, queryID, doc.From)
	explainMode := "none"
	if dashexplain {
		explainMode = "explain"
	} else if dashexplainboth {
		explainMode = "explain-both"
	}
	if qlog != nil {
		qlog.Info("executing query", zap.String("explain_mode", explainMode))
	}

	original, err := pir.Build(doc)
	if err != nil {
		return err
	}

	if dashexplainboth {
		printBanner(w, "ORIGINAL PLAN")
		fmt.Fprint(w, pir.Explain(pir.Clone(original)))
	}

	optimized := pir.Optimize(original)

	if dashexplain {
		fmt.Fprint(w, pir.Explain(optimized))
		return nil
	}
	if dashexplainboth {
		printBanner(w, "OPTIMIZED PLAN")
		fmt.Fprint(w, pir.Explain(optimized))
		return nil
	}

	op, err := plan.Build(optimized, qlog)
	if err != nil {
		return err
	}
	defer op.Close()

	var rows []value.Row
	for {
		row, err := op.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	// the plan's topmost Project holds the normalized output columns
	// (e.g. "sum( amount )" becomes "sum(amount)") the rows are keyed by.
	columns := doc.Select
	for s := optimized; s != nil; s = s.Child() {
		if p, ok := s.(*pir.Project); ok {
			columns = p.Columns
			break
		}
	}

	switch dashformat {
	case "json":
		return renderJSON(w, columns, rows)
	default:
		renderTable(w, columns, rows)
		return nil
	}
}

func printBanner(w io.Writer, label string) {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Fprintln(w, "== "+label+" ==")
}

func exitf(f string, args ...any) {
	exit(fmt.Errorf(f, args...))
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
