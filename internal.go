package phoenixcel

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

func seriesWithError(err error) *Series {
	return &Series{
		err: err,
	}
}

func dataFrameWithError(err error) *DataFrame {
	return &DataFrame{
		columns:     map[string]*Series{},
		identifiers: map[string]string{},
		err:         err,
	}
}

// renderTable writes `header` and `data` as an ASCII table.
// If there are more rows than optionMaxRows, only the first and last optionMaxRows/2 rows are printed.
// A negative optionMaxRows disables truncation.
func renderTable(header []string, data [][]string) string {
	if maxRows := optionMaxRows; maxRows >= 0 && len(data) > maxRows {
		n := maxRows / 2
		filler := make([]string, len(header))
		for k := range filler {
			filler[k] = "..."
		}
		truncated := make([][]string, 0, 2*n+1)
		truncated = append(truncated, data[:n]...)
		truncated = append(truncated, filler)
		data = append(truncated, data[len(data)-n:]...)
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader(header)
	table.AppendBulk(data)
	table.Render()
	return buf.String()
}

// normalizeIdentifier converts a column name into its accessor identifier: lowercase, with spaces replaced by underscores.
func normalizeIdentifier(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// makeIdentifiers maps each normalized identifier to the column name it came from,
// or returns an error if two names normalize to the same identifier.
func makeIdentifiers(names []string) (map[string]string, error) {
	ret := make(map[string]string, len(names))
	for _, name := range names {
		id := normalizeIdentifier(name)
		if existing, ok := ret[id]; ok {
			return nil, fmt.Errorf("columns %q and %q both resolve to identifier %q: %w", existing, name, id, ErrShape)
		}
		ret[id] = name
	}
	return ret, nil
}

// ensureUniqueNames returns an error if any column name appears more than once.
func ensureUniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("duplicate column %q: %w", name, ErrShape)
		}
		seen[name] = true
	}
	return nil
}

func copyRow(row Row) Row {
	ret := make(Row, len(row))
	for k, v := range row {
		ret[k] = v
	}
	return ret
}

func copyRows(rows []Row) []Row {
	ret := make([]Row, len(rows))
	for i := range rows {
		ret[i] = copyRow(rows[i])
	}
	return ret
}

// sortedKeys returns the keys of `row` in ascending order.
func sortedKeys(row Row) []string {
	ret := make([]string, 0, len(row))
	for k := range row {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// ensureSameKeys returns an error unless `row` has exactly the keys in `names`.
func ensureSameKeys(row Row, names []string) error {
	if len(row) != len(names) {
		return fmt.Errorf("has %d fields, want %d: %w", len(row), len(names), ErrShape)
	}
	for _, name := range names {
		if _, ok := row[name]; !ok {
			return fmt.Errorf("missing field %q: %w", name, ErrShape)
		}
	}
	return nil
}

// -- math

// sumValues sums `vals` exactly and returns the result as a Number. The sum of no values is 0.
func sumValues(vals []Value) (Value, error) {
	total := decimal.Zero
	for i := range vals {
		d, err := vals[i].Decimal()
		if err != nil {
			return Value{}, err
		}
		total = total.Add(d)
	}
	f, _ := total.Float64()
	return Number(f), nil
}

// meanValues divides the sum of `vals` by their count.
func meanValues(vals []Value) (Value, error) {
	if len(vals) == 0 {
		return Value{}, fmt.Errorf("cannot average: %w", ErrEmpty)
	}
	total := decimal.Zero
	for i := range vals {
		d, err := vals[i].Decimal()
		if err != nil {
			return Value{}, err
		}
		total = total.Add(d)
	}
	f, _ := total.Div(decimal.NewFromInt(int64(len(vals)))).Float64()
	return Number(f), nil
}

func countValues(vals []Value) (Value, error) {
	return Number(float64(len(vals))), nil
}

// extremeValue returns the smallest (want == -1) or largest (want == 1) of `vals` as ordered by Compare().
// Ties keep the earliest value.
func extremeValue(vals []Value, want int) (Value, error) {
	if len(vals) == 0 {
		return Value{}, fmt.Errorf("cannot find extreme value: %w", ErrEmpty)
	}
	ret := vals[0]
	for _, v := range vals[1:] {
		if Compare(v, ret) == want {
			ret = v
		}
	}
	return ret, nil
}

func minValues(vals []Value) (Value, error) {
	return extremeValue(vals, -1)
}

func maxValues(vals []Value) (Value, error) {
	return extremeValue(vals, 1)
}

// spreadValues returns the numeric difference between the largest and smallest of `vals`.
func spreadValues(vals []Value) (Value, error) {
	if len(vals) == 0 {
		return Value{}, fmt.Errorf("cannot calculate spread: %w", ErrEmpty)
	}
	var lo, hi decimal.Decimal
	for i := range vals {
		d, err := vals[i].Decimal()
		if err != nil {
			return Value{}, err
		}
		if i == 0 || d.LessThan(lo) {
			lo = d
		}
		if i == 0 || d.GreaterThan(hi) {
			hi = d
		}
	}
	f, _ := hi.Sub(lo).Float64()
	return Number(f), nil
}
