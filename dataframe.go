package phoenixcel

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// -- CONSTRUCTORS

// NewDataFrame creates an empty DataFrame with no columns and no rows.
// Columns may be added with SetCol() or Assign().
func NewDataFrame() *DataFrame {
	return &DataFrame{
		columns:     map[string]*Series{},
		identifiers: map[string]string{},
	}
}

// FromRows creates a new DataFrame from `rows`.
// The column set is taken from the keys of the first row, and every other row must have exactly the same keys.
// Rows are unordered maps, so the column order is supplied by `order`, which must name every key of the first row.
// If `order` is omitted, columns are sorted by name.
// Rows are copied, so later changes to `rows` do not affect the DataFrame.
//
// If `rows` is empty, the DataFrame has no rows and the columns named in `order`.
func FromRows(rows []Row, order ...string) (*DataFrame, error) {
	names := make([]string, len(order))
	copy(names, order)
	if len(rows) == 0 {
		df, err := fromRows(nil, names)
		if err != nil {
			return nil, fmt.Errorf("FromRows(): %w", err)
		}
		return df, nil
	}
	if len(names) == 0 {
		names = sortedKeys(rows[0])
	} else if err := ensureSameKeys(rows[0], names); err != nil {
		return nil, fmt.Errorf("FromRows(): `order` does not match row 0: row %w", err)
	}
	for i := range rows {
		if err := ensureSameKeys(rows[i], names); err != nil {
			return nil, fmt.Errorf("FromRows(): row %d %w", i, err)
		}
	}
	df, err := fromRows(copyRows(rows), names)
	if err != nil {
		return nil, fmt.Errorf("FromRows(): %w", err)
	}
	return df, nil
}

// fromRows takes ownership of `rows`, which must already be validated against `names`.
func fromRows(rows []Row, names []string) (*DataFrame, error) {
	if err := ensureUniqueNames(names); err != nil {
		return nil, err
	}
	identifiers, err := makeIdentifiers(names)
	if err != nil {
		return nil, err
	}
	columns := make(map[string]*Series, len(names))
	for _, name := range names {
		vals := make([]Value, len(rows))
		for i := range rows {
			vals[i] = rows[i][name]
		}
		columns[name] = &Series{values: vals, name: name}
	}
	if rows == nil {
		rows = []Row{}
	}
	return &DataFrame{
		names:       names,
		columns:     columns,
		rows:        rows,
		identifiers: identifiers,
	}, nil
}

// FromColumns creates a new DataFrame from a mapping of column name to column values.
// Each entry must be either a *Series or a slice supported by NewSeries(), and all entries must have the same length.
// Column order is supplied by `order`, which must name every key of `cols`. If `order` is omitted, columns are sorted by name.
// All values are copied, so later changes to `cols` do not affect the DataFrame.
func FromColumns(cols map[string]interface{}, order ...string) (*DataFrame, error) {
	names := make([]string, len(order))
	copy(names, order)
	if len(names) == 0 {
		for name := range cols {
			names = append(names, name)
		}
		sort.Strings(names)
	} else if len(names) != len(cols) {
		return nil, fmt.Errorf("FromColumns(): `order` has %d names, `cols` has %d: %w", len(names), len(cols), ErrShape)
	}
	if err := ensureUniqueNames(names); err != nil {
		return nil, fmt.Errorf("FromColumns(): `order`: %w", err)
	}
	identifiers, err := makeIdentifiers(names)
	if err != nil {
		return nil, fmt.Errorf("FromColumns(): %w", err)
	}
	columns := make(map[string]*Series, len(names))
	numRows := -1
	for _, name := range names {
		input, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("FromColumns(): `order`: column %q not in `cols`: %w", name, ErrLookup)
		}
		var vals []Value
		if s, ok := input.(*Series); ok {
			if s.err != nil {
				return nil, fmt.Errorf("FromColumns(): column %q: %w", name, s.err)
			}
			vals = s.Values()
		} else {
			vals, err = makeValues(input)
			if err != nil {
				return nil, fmt.Errorf("FromColumns(): column %q: %w", name, err)
			}
		}
		if numRows == -1 {
			numRows = len(vals)
		} else if len(vals) != numRows {
			return nil, fmt.Errorf("FromColumns(): column %q: all columns must have same length as the first (%d != %d): %w",
				name, len(vals), numRows, ErrShape)
		}
		columns[name] = &Series{values: vals, name: name}
	}
	if numRows == -1 {
		numRows = 0
	}
	rows := make([]Row, numRows)
	for i := range rows {
		rows[i] = make(Row, len(names))
		for _, name := range names {
			rows[i][name] = columns[name].values[i]
		}
	}
	return &DataFrame{
		names:       names,
		columns:     columns,
		rows:        rows,
		identifiers: identifiers,
	}, nil
}

// Copy returns a new DataFrame with identical values as the original but no shared objects.
func (df *DataFrame) Copy() *DataFrame {
	names := make([]string, len(df.names))
	copy(names, df.names)
	columns := make(map[string]*Series, len(df.columns))
	for name, s := range df.columns {
		columns[name] = s.Copy()
	}
	identifiers := make(map[string]string, len(df.identifiers))
	for id, name := range df.identifiers {
		identifiers[id] = name
	}
	return &DataFrame{
		names:       names,
		columns:     columns,
		rows:        copyRows(df.rows),
		identifiers: identifiers,
		err:         df.err,
	}
}

// -- GETTERS

// String prints the DataFrame in table form, with the number of rows constrained by optionMaxRows.
func (df *DataFrame) String() string {
	if df.err != nil {
		return fmt.Sprintf("Error: %v", df.err)
	}
	header := append([]string{""}, df.names...)
	data := make([][]string, len(df.rows))
	for i, row := range df.rows {
		data[i] = make([]string, 0, len(header))
		data[i] = append(data[i], strconv.Itoa(i))
		for _, name := range df.names {
			data[i] = append(data[i], row[name].String())
		}
	}
	return renderTable(header, data)
}

// Err returns the most recent error attached to the DataFrame, if any.
func (df *DataFrame) Err() error {
	return df.err
}

// Shape returns the number of columns and the number of rows, in that order.
func (df *DataFrame) Shape() (numColumns, numRows int) {
	return len(df.names), len(df.rows)
}

// Len returns the number of rows in the DataFrame.
func (df *DataFrame) Len() int {
	return len(df.rows)
}

// Columns returns the column names in insertion order.
func (df *DataFrame) Columns() []string {
	ret := make([]string, len(df.names))
	copy(ret, df.names)
	return ret
}

// HasCols returns an error if any of the `names` is not a column in the DataFrame.
func (df *DataFrame) HasCols(names ...string) error {
	for _, name := range names {
		if _, ok := df.columns[name]; !ok {
			return fmt.Errorf("HasCols(): column %q: %w", name, ErrLookup)
		}
	}
	return nil
}

// Col returns the Series stored under column `name`.
// The Series is shared with the DataFrame, not copied: changing it in place (e.g., with Append() or Set())
// leaves the DataFrame's rows out of date. To change a column, use SetCol() or Assign().
func (df *DataFrame) Col(name string) (*Series, error) {
	s, ok := df.columns[name]
	if !ok {
		return nil, fmt.Errorf("Col(): column %q: %w", name, ErrLookup)
	}
	s.sharedData = true
	return s, nil
}

// Attr returns the Series for the column whose normalized identifier matches `identifier`.
// A column's identifier is its name in lowercase with spaces replaced by underscores (e.g., "Job Title" -> "job_title").
// As with Col(), the Series is shared with the DataFrame.
func (df *DataFrame) Attr(identifier string) (*Series, error) {
	name, ok := df.identifiers[identifier]
	if !ok {
		return nil, fmt.Errorf("Attr(): identifier %q: %w", identifier, ErrLookup)
	}
	return df.Col(name)
}

// Identifiers returns the normalized identifier of every column, in column order.
func (df *DataFrame) Identifiers() []string {
	ret := make([]string, len(df.names))
	for k, name := range df.names {
		ret[k] = normalizeIdentifier(name)
	}
	return ret
}

// Rows returns a copy of every row, in order.
func (df *DataFrame) Rows() []Row {
	return copyRows(df.rows)
}

// Row returns a copy of the row at position `index`.
func (df *DataFrame) Row(index int) (Row, error) {
	if index < 0 || index >= len(df.rows) {
		return nil, fmt.Errorf("Row(): index %d out of range for length %d: %w", index, len(df.rows), ErrLookup)
	}
	return copyRow(df.rows[index]), nil
}

// CSVRecords returns the column names followed by every row, rendered as text.
func (df *DataFrame) CSVRecords() [][]string {
	ret := make([][]string, 0, len(df.rows)+1)
	ret = append(ret, df.Columns())
	for _, row := range df.rows {
		record := make([]string, len(df.names))
		for k, name := range df.names {
			record[k] = row[name].String()
		}
		ret = append(ret, record)
	}
	return ret
}

// -- SETTERS

// SetCol replaces the values in column `name` with a copy of `s`, or appends a new column if `name` does not exist yet.
// The value stored under `name` in every row is updated to match.
// `s` must have one value per row, unless the DataFrame has no columns, in which case `s` determines the number of rows.
// If `name` would share a normalized identifier with a different column, returns an error.
// On error, the DataFrame is unchanged.
func (df *DataFrame) SetCol(name string, s *Series) error {
	if s == nil {
		return fmt.Errorf("SetCol(): `s` must be provided: %w", ErrConfig)
	}
	if s.err != nil {
		return fmt.Errorf("SetCol(): `s`: %w", s.err)
	}
	if len(df.names) > 0 && s.Len() != len(df.rows) {
		return fmt.Errorf("SetCol(): column %q: length of input does not match existing length (%d != %d): %w",
			name, s.Len(), len(df.rows), ErrShape)
	}
	id := normalizeIdentifier(name)
	if existing, ok := df.identifiers[id]; ok && existing != name {
		return fmt.Errorf("SetCol(): columns %q and %q both resolve to identifier %q: %w", existing, name, id, ErrShape)
	}
	df.setCol(name, s.Values())
	return nil
}

// setCol installs `vals` under `name` in both views. Length and identifier checks must already have passed.
func (df *DataFrame) setCol(name string, vals []Value) {
	if df.columns == nil {
		df.columns = map[string]*Series{}
	}
	if df.identifiers == nil {
		df.identifiers = map[string]string{}
	}
	if len(df.names) == 0 {
		df.rows = make([]Row, len(vals))
		for i := range df.rows {
			df.rows[i] = Row{}
		}
	}
	if _, ok := df.columns[name]; !ok {
		df.names = append(df.names, name)
	}
	df.columns[name] = &Series{values: vals, name: name}
	for i := range df.rows {
		df.rows[i][name] = vals[i]
	}
	df.identifiers[normalizeIdentifier(name)] = name
}

// -- ROW OPERATIONS

// Where returns a new DataFrame containing a copy of every row for which `predicate` returns true, in the original order.
// The new DataFrame has the same columns as the original, even if no rows match. The original DataFrame is unchanged.
// `predicate` receives a copy of each row.
func (df *DataFrame) Where(predicate func(Row) bool) *DataFrame {
	if df.err != nil {
		return dataFrameWithError(df.err)
	}
	if predicate == nil {
		return dataFrameWithError(fmt.Errorf("Where(): `predicate` must be provided: %w", ErrConfig))
	}
	kept := make([]Row, 0)
	for _, row := range df.rows {
		candidate := copyRow(row)
		if predicate(candidate) {
			kept = append(kept, copyRow(row))
		}
	}
	ret, err := fromRows(kept, df.Columns())
	if err != nil {
		return dataFrameWithError(fmt.Errorf("Where(): %w", err))
	}
	return ret
}

// Assign computes one new column per Derivation and sets it on the DataFrame in place, in the order supplied.
// Every Derivation reads the rows as they were before Assign() was called,
// so a Derivation does not see the columns produced by earlier Derivations in the same call.
// All columns are computed and validated before any is set, so on error the DataFrame is unchanged.
// Returns the DataFrame itself to allow chaining.
func (df *DataFrame) Assign(derivations ...Derivation) (*DataFrame, error) {
	identifiers := make(map[string]string, len(df.identifiers)+len(derivations))
	for id, name := range df.identifiers {
		identifiers[id] = name
	}
	for k, d := range derivations {
		if d.Name == "" {
			return df, fmt.Errorf("Assign(): position %d: `Name` must be provided: %w", k, ErrConfig)
		}
		if d.Fn == nil {
			return df, fmt.Errorf("Assign(): %q: `Fn` must be provided: %w", d.Name, ErrConfig)
		}
		id := normalizeIdentifier(d.Name)
		if existing, ok := identifiers[id]; ok && existing != d.Name {
			return df, fmt.Errorf("Assign(): columns %q and %q both resolve to identifier %q: %w", existing, d.Name, id, ErrShape)
		}
		identifiers[id] = d.Name
	}

	snapshot := copyRows(df.rows)
	computed := make([][]Value, len(derivations))
	for k, d := range derivations {
		computed[k] = make([]Value, len(snapshot))
		for i := range snapshot {
			computed[k][i] = d.Fn(copyRow(snapshot[i]))
		}
	}
	for k, d := range derivations {
		df.setCol(d.Name, computed[k])
	}
	return df, nil
}

// GroupBy groups a copy of every row by its value in `column`.
// Groups are ordered by the first appearance of each value.
// A NaN Number never equals itself, so it cannot be a group key and returns an error.
func (df *DataFrame) GroupBy(column string) (*GroupBy, error) {
	if _, ok := df.columns[column]; !ok {
		return nil, fmt.Errorf("GroupBy(): column %q: %w", column, ErrLookup)
	}
	g := &GroupBy{groups: map[Value][]Row{}}
	for i, row := range df.rows {
		key := row[column]
		if key.kind == NumberKind && math.IsNaN(key.f) {
			return nil, fmt.Errorf("GroupBy(): column %q: row %d: NaN cannot be a group key: %w", column, i, ErrType)
		}
		if _, ok := g.groups[key]; !ok {
			g.orderedKeys = append(g.orderedKeys, key)
		}
		g.groups[key] = append(g.groups[key], copyRow(row))
	}
	return g, nil
}
