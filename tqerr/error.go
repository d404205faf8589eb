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

// Package tqerr defines the engine's error taxonomy. Every error that
// can escape a public API is one of these kinds, wrapped around its
// cause so that errors.Is/errors.As see through to the original
// failure.
package tqerr

import "fmt"

// Kind identifies the category of failure.
type Kind int

const (
	// IOOpen marks a failure to open or stat an input source.
	IOOpen Kind = iota
	// SchemaMissing marks a scan whose header row could not be read.
	SchemaMissing
	// ParseQuery marks a malformed query document.
	ParseQuery
	// InvalidOperator marks an unsupported comparison operator.
	InvalidOperator
	// SerializeKey marks a failure to canonicalize a group-by key.
	SerializeKey
	// Internal marks a condition the engine's own invariants should
	// have prevented.
	Internal
)

func (k Kind) String() string {
	switch k {
	case IOOpen:
		return "io-open"
	case SchemaMissing:
		return "schema-missing"
	case ParseQuery:
		return "parse-query"
	case InvalidOperator:
		return "invalid-operator"
	case SerializeKey:
		return "serialize-key"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned across the engine's
// public boundaries.
type Error struct {
	Kind Kind
	Op   string // the path, operator string, or other salient detail
	Err  error  // the wrapped cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	case e.Op == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Err)
	}
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}
