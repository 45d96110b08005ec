package phoenixcel

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// -- CONSTRUCTORS

// Text returns a Value holding `s`.
func Text(s string) Value {
	return Value{kind: TextKind, s: s}
}

// Number returns a Value holding `f`.
func Number(f float64) Value {
	return Value{kind: NumberKind, f: f}
}

// Bool returns a Value holding `b`.
func Bool(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// DateTime returns a Value holding `t`.
func DateTime(t time.Time) Value {
	return Value{kind: DateTimeKind, t: t}
}

// Null returns the missing Value, which is also the zero Value.
func Null() Value {
	return Value{}
}

// ValueOf converts a Go primitive into a Value.
// Supported types: all variants of float, int, and uint, string, bool, time.Time, Value, and nil.
func ValueOf(i interface{}) (Value, error) {
	switch v := i.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case string:
		return Text(v), nil
	case bool:
		return Bool(v), nil
	case time.Time:
		return DateTime(v), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int, int8, int16, int32, int64:
		return Number(float64(reflect.ValueOf(v).Int())), nil
	case uint, uint8, uint16, uint32, uint64:
		return Number(float64(reflect.ValueOf(v).Uint())), nil
	}
	return Value{}, fmt.Errorf("%v not supported: %w", reflect.TypeOf(i), ErrType)
}

// makeValues converts any supported slice into a newly allocated []Value.
func makeValues(slice interface{}) ([]Value, error) {
	switch arr := slice.(type) {
	case []Value:
		ret := make([]Value, len(arr))
		copy(ret, arr)
		return ret, nil
	case []string:
		ret := make([]Value, len(arr))
		for i := range arr {
			ret[i] = Text(arr[i])
		}
		return ret, nil
	case []float64:
		ret := make([]Value, len(arr))
		for i := range arr {
			ret[i] = Number(arr[i])
		}
		return ret, nil
	}
	if slice == nil || reflect.TypeOf(slice).Kind() != reflect.Slice {
		return nil, fmt.Errorf("unsupported input (%v): must be slice: %w", reflect.TypeOf(slice), ErrType)
	}
	v := reflect.ValueOf(slice)
	ret := make([]Value, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := ValueOf(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		ret[i] = val
	}
	return ret, nil
}

// -- GETTERS

// Kind returns the kind of value held.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true if `v` is the missing Value.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// String renders any kind of Value as text. Null renders as an empty string.
func (v Value) String() string {
	switch v.kind {
	case TextKind:
		return v.s
	case NumberKind:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case BoolKind:
		return strconv.FormatBool(v.b)
	case DateTimeKind:
		return v.t.Format(time.RFC3339)
	}
	return ""
}

// Interface returns the underlying Go value (string, float64, bool, time.Time, or nil).
func (v Value) Interface() interface{} {
	switch v.kind {
	case TextKind:
		return v.s
	case NumberKind:
		return v.f
	case BoolKind:
		return v.b
	case DateTimeKind:
		return v.t
	}
	return nil
}

// -- COERCION

// Float64 coerces `v` to a float64.
// Numbers convert as-is, booleans convert to 0 or 1, and text converts if it parses as a number.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case NumberKind:
		return v.f, nil
	case BoolKind:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case TextKind:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%q is not numeric: %w", v.String(), ErrType)
}

// Decimal coerces `v` to an exact decimal, following the same rules as Float64.
// NaN and infinite numbers have no decimal form and return an error.
// Text is parsed directly so that decimal inputs do not pick up binary rounding error.
func (v Value) Decimal() (decimal.Decimal, error) {
	switch v.kind {
	case NumberKind:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return decimal.Zero, fmt.Errorf("%v is not a finite number: %w", v.f, ErrType)
		}
		return decimal.NewFromFloat(v.f), nil
	case BoolKind:
		if v.b {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	case TextKind:
		d, err := decimal.NewFromString(strings.TrimSpace(v.s))
		if err == nil {
			return d, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%q is not numeric: %w", v.String(), ErrType)
}

// Time coerces `v` to a time.Time. Text converts if it parses as a date or timestamp in any common layout.
func (v Value) Time() (time.Time, error) {
	switch v.kind {
	case DateTimeKind:
		return v.t, nil
	case TextKind:
		t, err := dateparse.ParseAny(strings.TrimSpace(v.s))
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a datetime: %w", v.String(), ErrType)
}

// Compare returns -1 if a < b, 0 if a == b, and +1 if a > b.
// Values are first ranked by category: numbers, then datetimes, then other text, then Null.
// Within a category, numbers compare numerically (NaN sorts below every other number),
// datetimes chronologically, and text lexicographically.
func Compare(a, b Value) int {
	ra, rb := compareRank(a), compareRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankNumber:
		fa, _ := a.Float64()
		fb, _ := b.Float64()
		nanA, nanB := math.IsNaN(fa), math.IsNaN(fb)
		switch {
		case nanA && nanB:
			return 0
		case nanA:
			return -1
		case nanB:
			return 1
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case rankDateTime:
		ta, _ := a.Time()
		tb, _ := b.Time()
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		}
		return 0
	}
	return strings.Compare(a.String(), b.String())
}

const (
	rankNumber = iota
	rankDateTime
	rankText
	rankNull
)

// compareRank places `v` in one of the categories ordered by Compare().
func compareRank(v Value) int {
	if v.IsNull() {
		return rankNull
	}
	if _, err := v.Float64(); err == nil {
		return rankNumber
	}
	if _, err := v.Time(); err == nil {
		return rankDateTime
	}
	return rankText
}
