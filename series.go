package phoenixcel

import (
	"fmt"
	"log"
	"strconv"
)

// -- CONSTRUCTORS

// NewSeries constructs a Series from a slice of values.
//
// Supported slice types: all variants of []float, []int, & []uint,
// []string, []bool, []time.Time, []interface{}, and []Value.
// The slice is copied, so later changes to it do not affect the Series.
// If the slice is not supported, the returned Series carries the error (see Err()).
func NewSeries(slice interface{}) *Series {
	vals, err := makeValues(slice)
	if err != nil {
		return seriesWithError(fmt.Errorf("NewSeries(): %w", err))
	}
	return &Series{values: vals}
}

// MakeSeries constructs a Series directly from Values.
func MakeSeries(vals ...Value) *Series {
	ret := make([]Value, len(vals))
	copy(ret, vals)
	return &Series{values: ret}
}

// Copy returns a new Series with identical values as the original but no shared objects.
func (s *Series) Copy() *Series {
	vals := make([]Value, len(s.values))
	copy(vals, s.values)
	return &Series{
		values: vals,
		name:   s.name,
		err:    s.err,
	}
}

// -- GETTERS

// String prints the Series in table form, with the number of rows constrained by optionMaxRows.
func (s *Series) String() string {
	if s.err != nil {
		return fmt.Sprintf("Error: %v", s.err)
	}
	data := make([][]string, s.Len())
	for i := range s.values {
		data[i] = []string{strconv.Itoa(i), s.values[i].String()}
	}
	return renderTable([]string{"", s.name}, data)
}

// Err returns the most recent error attached to the Series, if any.
func (s *Series) Err() error {
	return s.err
}

// Len returns the number of values in the Series.
func (s *Series) Len() int {
	return len(s.values)
}

// Name returns the name of the Series. A Series taken from a DataFrame is named after its column.
func (s *Series) Name() string {
	return s.name
}

// SetName sets the name of the Series and returns the Series.
func (s *Series) SetName(name string) *Series {
	s.name = name
	return s
}

// At returns the Value at the index position. If index is out of range, returns Null.
// Negative positions count back from the end, as in a slice expression.
func (s *Series) At(index int) Value {
	if index < 0 {
		index += s.Len()
	}
	if index < 0 || index >= s.Len() {
		return Null()
	}
	return s.values[index]
}

// Values returns a copy of the Series values.
func (s *Series) Values() []Value {
	ret := make([]Value, len(s.values))
	copy(ret, s.values)
	return ret
}

// Strings renders every value as text.
func (s *Series) Strings() []string {
	ret := make([]string, len(s.values))
	for i := range s.values {
		ret[i] = s.values[i].String()
	}
	return ret
}

// Float64s coerces every value to float64, or returns an error at the first value that is not numeric.
func (s *Series) Float64s() ([]float64, error) {
	ret := make([]float64, len(s.values))
	for i := range s.values {
		f, err := s.values[i].Float64()
		if err != nil {
			return nil, fmt.Errorf("Float64s(): position %d: %w", i, err)
		}
		ret[i] = f
	}
	return ret, nil
}

// Slice returns a new Series with the values from position `first` up to but excluding `last`.
func (s *Series) Slice(first, last int) *Series {
	if first < 0 || last > s.Len() || first > last {
		return seriesWithError(
			fmt.Errorf("Slice(): [%d:%d] out of range for length %d: %w", first, last, s.Len(), ErrLookup))
	}
	vals := make([]Value, last-first)
	copy(vals, s.values[first:last])
	return &Series{values: vals, name: s.name}
}

// Iterator returns an iterator which may be used to access each value in turn.
func (s *Series) Iterator() *SeriesIterator {
	return &SeriesIterator{
		current: -1,
		s:       s,
	}
}

// Next advances to the next value. Returns false at end of iteration.
func (iter *SeriesIterator) Next() bool {
	iter.current++
	return iter.current < iter.s.Len()
}

// Index returns the position of the current value.
func (iter *SeriesIterator) Index() int {
	return iter.current
}

// Value returns the current value.
func (iter *SeriesIterator) Value() Value {
	return iter.s.At(iter.current)
}

// -- SETTERS

func (s *Series) warnIfShared(method string) {
	if optionWarnings && s.sharedData {
		log.Printf(
			"Shared Data Warning: %s() changes a Series that belongs to a DataFrame (via Col() or Attr()), "+
				"so the DataFrame's rows will no longer match column %q. "+
				"To change a column safely, use DataFrame.SetCol() or DataFrame.Assign()", method, s.name)
	}
}

// Append adds `vals` to the end of the Series in place.
func (s *Series) Append(vals ...Value) {
	s.warnIfShared("Append")
	s.values = append(s.values, vals...)
}

// Set replaces the value at `index` in place.
func (s *Series) Set(index int, val Value) error {
	if index < 0 || index >= s.Len() {
		return fmt.Errorf("Set(): index %d out of range for length %d: %w", index, s.Len(), ErrLookup)
	}
	s.warnIfShared("Set")
	s.values[index] = val
	return nil
}

// Apply returns a new Series with `fn` applied to every value. The original Series is unchanged.
func (s *Series) Apply(fn func(Value) Value) *Series {
	if fn == nil {
		return seriesWithError(fmt.Errorf("Apply(): `fn` must be provided: %w", ErrConfig))
	}
	vals := make([]Value, len(s.values))
	for i := range s.values {
		vals[i] = fn(s.values[i])
	}
	return &Series{values: vals, name: s.name}
}

// -- MATH

// Sum coerces every value to a number and sums them.
// Text that does not parse as a number is an error. The sum of an empty Series is 0.
func (s *Series) Sum() (float64, error) {
	v, err := sumValues(s.values)
	if err != nil {
		return 0, fmt.Errorf("Sum(): %w", err)
	}
	return v.f, nil
}

// Average coerces every value to a number and divides their sum by their count.
// Returns an error if the Series is empty.
func (s *Series) Average() (float64, error) {
	v, err := meanValues(s.values)
	if err != nil {
		return 0, fmt.Errorf("Average(): %w", err)
	}
	return v.f, nil
}

// Avg is an alias for Average.
func (s *Series) Avg() (float64, error) {
	return s.Average()
}
