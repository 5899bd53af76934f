// pkg/table/value.go
package table

import (
	"strconv"
	"strings"
)

// Kind identifies the type held by a Value
type Kind int

const (
	// KindNull is the null sentinel, distinct from any string or numeric value
	KindNull Kind = iota
	// KindString holds free text
	KindString
	// KindFloat holds a float64
	KindFloat
)

// Value is a single table cell: null, string, or float64.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Null returns the null sentinel value
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Float returns a float64 value
func Float(f float64) Value {
	return Value{kind: KindFloat, num: f}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is the null sentinel
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string content and whether the value is a string
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Float64 returns the numeric content and whether the value is a float
func (v Value) Float64() (float64, bool) {
	return v.num, v.kind == KindFloat
}

// Equal reports whether two values are identical in kind and content
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindFloat:
		return v.num == other.num
	default:
		return true
	}
}

// Render returns the CSV representation of the value.
// Nulls render as empty fields, floats with minimal digits.
func (v Value) Render() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindFloat:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// encode returns a canonical representation usable as part of a row key.
// Unlike Render it keeps kinds distinguishable, so the string "1" and the
// number 1 never collide.
func (v Value) encode(b *strings.Builder) {
	switch v.kind {
	case KindString:
		b.WriteByte('s')
		b.WriteString(v.str)
	case KindFloat:
		b.WriteByte('f')
		b.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	default:
		b.WriteByte('n')
	}
}

// ParseFloat attempts to parse a string as a float64, tolerating
// surrounding whitespace. Returns false for empty or unparsable input.
func ParseFloat(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
