// Package phoenixcel is a small in-memory table engine for fully-materialized datasets.
//
// phoenixcel borrows its vocabulary from pandas and from spreadsheet pivot tables.
// Its most common use cases are loading a CSV, filtering rows with a predicate,
// deriving new columns, and summarizing groups of rows.
//
// The key data types are Series, DataFrame, and GroupBy.
// A Series is analogous to one column of a spreadsheet, and a DataFrame is analogous to a whole spreadsheet.
// A DataFrame keeps the same data in two synchronized shapes: one Series per column, and one Row per row.
// A GroupBy maps each distinct value of one column to the rows sharing that value,
// and reduces each group to summary statistics, much like a pivot table.
//
// Every operation is eager. Nothing is indexed, cached, or evaluated lazily.
package phoenixcel

import (
	"time"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	// NullKind is the zero Kind and marks a missing value.
	NullKind Kind = iota
	// TextKind -> string
	TextKind
	// NumberKind -> float64
	NumberKind
	// BoolKind -> bool
	BoolKind
	// DateTimeKind -> time.Time
	DateTimeKind
)

// A Value is one cell of a table. Values loaded from CSV are always Text.
// Values are comparable with ==, which is the equality used for group keys.
type Value struct {
	kind Kind
	s    string
	f    float64
	b    bool
	t    time.Time
}

// A Series is an ordered sequence of values forming one column of data.
type Series struct {
	values     []Value
	name       string
	sharedData bool
	err        error
}

// A SeriesIterator iterates over the values in a Series.
type SeriesIterator struct {
	current int
	s       *Series
}

// A Row is one logical row of a DataFrame, keyed by column name.
type Row map[string]Value

// A DataFrame is one or more named columns of equal length.
// Column-major (Series per column) and row-major (Row per row) views are kept in sync by every mutating method.
type DataFrame struct {
	names       []string
	columns     map[string]*Series
	rows        []Row
	identifiers map[string]string
	err         error
}

// A Derivation supplies a new column to Assign().
// `Fn` is called once per row, in row order.
type Derivation struct {
	Name string
	Fn   func(Row) Value
}

// A GroupBy is a collection of rows sharing the same value in one column, keyed by that value.
// Keys are kept in the order in which they were first encountered.
type GroupBy struct {
	orderedKeys []Value
	groups      map[Value][]Row
}

// A Description is the result of DescribeWith(): for each group key, a set of labeled statistics.
type Description struct {
	orderedKeys   []Value
	orderedLabels []string
	stats         map[Value]map[string]Value
}

// A Reducer reduces the values of one field within a group to a single value.
// `Name` is used to label the result in DescribeWith().
type Reducer struct {
	Name string
	Fn   func(vals []Value) (Value, error)
}

// AggKind is one of the aggregations that DescribeWith() can run.
type AggKind int

const (
	// AggSum -> GroupBy.Sum()
	AggSum AggKind = iota
	// AggAverage -> GroupBy.Average()
	AggAverage
	// AggCount -> GroupBy.Count()
	AggCount
	// AggMin -> GroupBy.Min()
	AggMin
	// AggMax -> GroupBy.Max()
	AggMax
	// AggSpread -> GroupBy.Spread()
	AggSpread
	// AggCustom -> GroupBy.Aggregate() with a user-supplied Reducer
	AggCustom
)

// An AggSpec supplies one aggregation to DescribeWith().
// `Reducer` is only used if `Agg` is AggCustom.
type AggSpec struct {
	Agg     AggKind
	Column  string
	Reducer Reducer
}

// A ReadOption configures a read function.
// Available read options: ReadOptionDelimiter, ReadOptionTrimSpace.
type ReadOption func(*readConfig)

// A readConfig configures a read function.
// All read functions accept zero or more modifiers that alter the default read config, which is:
// "," as field delimiter, and leading whitespace in fields preserved.
type readConfig struct {
	Delimiter rune
	TrimSpace bool
}
