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

// Package exec implements the physical operator tree: a pull-based
// row source with a uniform contract, built bottom-up from a logical
// plan and drained row-at-a-time by a single caller.
package exec

import "github.com/SnellerInc/tabql/value"

// Operator is the row source contract every physical operator
// satisfies. Next returns io.EOF once the stream is exhausted; every
// subsequent call must also return io.EOF (no resurrection). Any
// other non-nil error is fatal: callers are not required to call
// Next again afterward. Operators are pull-driven and single
// consumer; no operator invokes a child's Next from multiple
// goroutines.
type Operator interface {
	// Next returns the next row, or io.EOF when exhausted.
	Next() (value.Row, error)
	// Close releases resources owned exclusively by this operator
	// (open files, buffered state) and closes its child, if any.
	Close() error
}
