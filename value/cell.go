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

// Package value implements the dynamically-typed scalar cell that
// every row in the engine is built from, along with the typed
// comparison rules the filter operator and the optimizer's predicate
// handling rely on.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind tags the variant a Cell currently holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Cell is a dynamically-typed scalar drawn from
// {null, boolean, integer, floating, text}. It is
// a tagged value rather than an interface{} so that
// comparisons and arithmetic can switch on Kind
// directly instead of doing repeated type assertions.
type Cell struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Null is the null cell.
var Null = Cell{kind: KindNull}

// Bool constructs a boolean cell.
func Bool(b bool) Cell { return Cell{kind: KindBool, b: b} }

// Int constructs an integer cell.
func Int(i int64) Cell { return Cell{kind: KindInt, i: i} }

// Float constructs a floating-point cell.
func Float(f float64) Cell { return Cell{kind: KindFloat, f: f} }

// Text constructs a text cell.
func Text(s string) Cell { return Cell{kind: KindText, s: s} }

// Kind reports the cell's variant.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether c is the null cell.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Parse interprets raw text from a tabular cell (e.g. a CSV field)
// according to the fixed precedence order: empty -> null, signed
// integer -> integer, floating-point -> float, true/false
// (case-insensitive) -> bool, otherwise -> text. This order is an
// invariant: callers must not re-derive a cell's type by, say,
// checking whether a float happens to have a zero fractional part.
func Parse(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Null
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Float(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Text(trimmed)
}

// FromJSON converts a value decoded by encoding/json (nil, bool,
// float64, json.Number, or string) into a Cell. It is used to turn
// predicate literals from a query document into Cells.
func FromJSON(v any) Cell {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case string:
		return Text(t)
	case float64:
		if i := int64(t); float64(i) == t {
			return Int(i)
		}
		return Float(t)
	case int64:
		return Int(t)
	case int:
		return Int(int64(t))
	default:
		return Text(fmt.Sprint(t))
	}
}

// numeric reports whether c can be coerced to a float64 without
// inventing a value, and returns that coercion.
func (c Cell) numeric() (float64, bool) {
	switch c.kind {
	case KindInt:
		return float64(c.i), true
	case KindFloat:
		return c.f, true
	case KindNull:
		return 0, false
	case KindBool:
		return 0, false
	case KindText:
		f, err := cast.ToFloat64E(c.s)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Canonical renders the cell's canonical serialized textual form,
// used as the lexicographic comparison fallback and as the cell text
// of the table renderer.
func (c Cell) Canonical() string {
	switch c.kind {
	case KindNull:
		return "null"
	case KindBool:
		if c.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindText:
		return c.s
	}
	return ""
}

// String implements fmt.Stringer for debugging.
func (c Cell) String() string { return c.Canonical() }

// Float coerces c to a float64, returning 0 when c is null or not
// numeric-coercible. It is used by the hash aggregator's Sum
// accumulator, which silently treats non-numeric contributions as 0.
func (c Cell) Float() float64 {
	f, ok := c.numeric()
	if !ok {
		return 0
	}
	return f
}

// Numeric reports whether c holds an integer or floating-point value,
// used by the table renderer to decide column alignment.
func (c Cell) Numeric() bool {
	return c.kind == KindInt || c.kind == KindFloat
}

// Token returns a (kind, raw value) pair suitable for injective JSON
// encoding: without the kind tag, an Int and a Float holding the
// same numeric value would marshal identically and collide as hash
// aggregator group keys.
func (c Cell) Token() [2]any {
	return [2]any{int(c.kind), c.Raw()}
}

// Raw unwraps the cell to a plain Go value, used for JSON rendering
// and as the value half of the group-key Token.
func (c Cell) Raw() any {
	switch c.kind {
	case KindNull:
		return nil
	case KindBool:
		return c.b
	case KindInt:
		return c.i
	case KindFloat:
		return c.f
	case KindText:
		return c.s
	}
	return nil
}

// epsilon is float64 machine epsilon, the spacing between 1.0 and the
// next representable float64 (math.Nextafter(1, 2) - 1). Numeric
// equality is defined as an absolute difference below this bound.
const epsilon = 2.220446049250313e-16

// Op is a comparison operator recognized by Compare.
type Op string

const (
	Eq Op = "=="
	Ne Op = "!="
	Lt Op = "<"
	Le Op = "<="
	Gt Op = ">"
	Ge Op = ">="
)

// ErrInvalidOperator is returned by Compare when op names anything
// other than one of the six recognized comparison operators.
type ErrInvalidOperator struct {
	Op string
}

func (e *ErrInvalidOperator) Error() string {
	return fmt.Sprintf("invalid comparison operator %q", e.Op)
}

// Compare evaluates lhs <op> rhs. If both operands are coercible to a
// floating-point number, the comparison is numeric, with equality
// decided by absolute difference against a fixed epsilon. Otherwise
// the comparison falls back to the operands' textual forms: a text
// cell contributes its contents, any other cell its Canonical form.
func Compare(lhs Cell, op Op, rhs Cell) (bool, error) {
	if lf, lok := lhs.numeric(); lok {
		if rf, rok := rhs.numeric(); rok {
			return compareFloat(lf, op, rf)
		}
	}
	return compareText(textForm(lhs), op, textForm(rhs))
}

func textForm(c Cell) string {
	if c.kind == KindText {
		return c.s
	}
	return c.Canonical()
}

func compareFloat(l float64, op Op, r float64) (bool, error) {
	switch op {
	case Eq:
		return absDiff(l, r) < epsilon, nil
	case Ne:
		return absDiff(l, r) >= epsilon, nil
	case Lt:
		return l < r, nil
	case Le:
		return l <= r, nil
	case Gt:
		return l > r, nil
	case Ge:
		return l >= r, nil
	}
	return false, &ErrInvalidOperator{Op: string(op)}
}

func compareText(l string, op Op, r string) (bool, error) {
	switch op {
	case Eq:
		return l == r, nil
	case Ne:
		return l != r, nil
	case Lt:
		return l < r, nil
	case Le:
		return l <= r, nil
	case Gt:
		return l > r, nil
	case Ge:
		return l >= r, nil
	}
	return false, &ErrInvalidOperator{Op: string(op)}
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
