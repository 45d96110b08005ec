package phoenixcel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// NewGroupBy creates a GroupBy from a mapping of group key to rows.
// Keys become Text values and are ordered by name. Rows are copied.
func NewGroupBy(groups map[string][]Row) *GroupBy {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	g := &GroupBy{groups: make(map[Value][]Row, len(groups))}
	for _, k := range keys {
		key := Text(k)
		g.orderedKeys = append(g.orderedKeys, key)
		g.groups[key] = copyRows(groups[k])
	}
	return g
}

func (g *GroupBy) String() string {
	groups := make([]string, len(g.orderedKeys))
	for i, k := range g.orderedKeys {
		groups[i] = k.String()
	}
	return "Groups: " + strings.Join(groups, ",")
}

// Len returns the number of groups.
func (g *GroupBy) Len() int {
	return len(g.orderedKeys)
}

// Keys returns the group keys in order.
func (g *GroupBy) Keys() []Value {
	ret := make([]Value, len(g.orderedKeys))
	copy(ret, g.orderedKeys)
	return ret
}

// Group returns a copy of the rows in group `key`.
func (g *GroupBy) Group(key Value) ([]Row, error) {
	rows, ok := g.groups[key]
	if !ok {
		return nil, fmt.Errorf("Group(): group %q: %w", key.String(), ErrLookup)
	}
	return copyRows(rows), nil
}

// -- AGGREGATION

// Aggregate collects the values of field `on` within each group and reduces them with `reducer`.
// Returns a mapping from group key to reduced value.
// Both `on` and `reducer.Fn` are required; if either is missing, returns an error before reducing any group.
func (g *GroupBy) Aggregate(on string, reducer Reducer) (map[Value]Value, error) {
	if on == "" {
		return nil, fmt.Errorf("Aggregate(): which column should be aggregated? `on` must be provided: %w", ErrConfig)
	}
	if reducer.Fn == nil {
		return nil, fmt.Errorf("Aggregate(): how should %q be aggregated? `reducer` must be provided: %w", on, ErrConfig)
	}
	ret := make(map[Value]Value, len(g.orderedKeys))
	for _, key := range g.orderedKeys {
		rows := g.groups[key]
		vals := make([]Value, len(rows))
		for i, row := range rows {
			v, ok := row[on]
			if !ok {
				return nil, fmt.Errorf("Aggregate(): group %q: row %d: column %q: %w", key.String(), i, on, ErrLookup)
			}
			vals[i] = v
		}
		output, err := reducer.Fn(vals)
		if err != nil {
			return nil, fmt.Errorf("Aggregate(): group %q: %w", key.String(), err)
		}
		ret[key] = output
	}
	return ret, nil
}

// builtin reducers, indexed by AggKind
var reducers = map[AggKind]Reducer{
	AggSum:     {Name: "sum", Fn: sumValues},
	AggAverage: {Name: "average", Fn: meanValues},
	AggCount:   {Name: "count", Fn: countValues},
	AggMin:     {Name: "min", Fn: minValues},
	AggMax:     {Name: "max", Fn: maxValues},
	AggSpread:  {Name: "spread", Fn: spreadValues},
}

func (agg AggKind) String() string {
	if r, ok := reducers[agg]; ok {
		return r.Name
	}
	if agg == AggCustom {
		return "custom"
	}
	return fmt.Sprintf("AggKind(%d)", int(agg))
}

// Sum returns the sum of field `on` within each group. Every value must be numeric.
func (g *GroupBy) Sum(on string) (map[Value]Value, error) {
	return g.Aggregate(on, reducers[AggSum])
}

// Average returns the mean of field `on` within each group. Every value must be numeric.
func (g *GroupBy) Average(on string) (map[Value]Value, error) {
	return g.Aggregate(on, reducers[AggAverage])
}

// Avg is an alias for Average.
func (g *GroupBy) Avg(on string) (map[Value]Value, error) {
	return g.Average(on)
}

// Count returns the number of rows within each group.
func (g *GroupBy) Count(on string) (map[Value]Value, error) {
	return g.Aggregate(on, reducers[AggCount])
}

// Min returns the smallest value of field `on` within each group, as ordered by Compare().
func (g *GroupBy) Min(on string) (map[Value]Value, error) {
	return g.Aggregate(on, reducers[AggMin])
}

// Max returns the largest value of field `on` within each group, as ordered by Compare().
func (g *GroupBy) Max(on string) (map[Value]Value, error) {
	return g.Aggregate(on, reducers[AggMax])
}

// Spread returns the difference between the largest and smallest value of field `on` within each group.
// Every value must be numeric.
func (g *GroupBy) Spread(on string) (map[Value]Value, error) {
	return g.Aggregate(on, reducers[AggSpread])
}

// DescribeWith runs every aggregation in `specs` and merges the results into a single Description,
// in which each statistic is labeled "<column> <aggregation name>" (e.g., "weight average").
// For AggCustom, the aggregation name is the Reducer's Name.
// If two specs produce the same label, the later one wins. The GroupBy is unchanged.
func (g *GroupBy) DescribeWith(specs ...AggSpec) (*Description, error) {
	ret := &Description{
		orderedKeys: g.Keys(),
		stats:       make(map[Value]map[string]Value, len(g.orderedKeys)),
	}
	for _, key := range g.orderedKeys {
		ret.stats[key] = map[string]Value{}
	}
	for k, spec := range specs {
		var reducer Reducer
		if spec.Agg == AggCustom {
			reducer = spec.Reducer
		} else {
			var ok bool
			reducer, ok = reducers[spec.Agg]
			if !ok {
				return nil, fmt.Errorf("DescribeWith(): position %d: unknown aggregation %v: %w", k, spec.Agg, ErrConfig)
			}
		}
		result, err := g.Aggregate(spec.Column, reducer)
		if err != nil {
			return nil, fmt.Errorf("DescribeWith(): position %d: %w", k, err)
		}
		label := fmt.Sprintf("%s %s", spec.Column, reducer.Name)
		if !ret.hasLabel(label) {
			ret.orderedLabels = append(ret.orderedLabels, label)
		}
		for key, v := range result {
			ret.stats[key][label] = v
		}
	}
	return ret, nil
}

// PrintCute prints each group key, followed by an indented list of the rows in that group.
func (g *GroupBy) PrintCute() {
	g.WriteCute(os.Stdout)
}

// WriteCute writes each group key to `w`, followed by an indented list of the rows in that group.
// Fields within each row are printed in column-name order.
func (g *GroupBy) WriteCute(w io.Writer) error {
	buf := bufio.NewWriter(w)
	for _, key := range g.orderedKeys {
		fmt.Fprintln(buf, key.String())
		for _, row := range g.groups[key] {
			fields := make([]string, 0, len(row))
			for _, name := range sortedKeys(row) {
				fields = append(fields, fmt.Sprintf("%s: %s", name, row[name].String()))
			}
			fmt.Fprintf(buf, "%s{%s}\n", optionCuteIndent, strings.Join(fields, ", "))
		}
	}
	return buf.Flush()
}

// -- DESCRIPTION

func (d *Description) hasLabel(label string) bool {
	for _, l := range d.orderedLabels {
		if l == label {
			return true
		}
	}
	return false
}

// String prints the Description in table form, with one row per group and one column per statistic.
func (d *Description) String() string {
	header := append([]string{""}, d.orderedLabels...)
	data := make([][]string, len(d.orderedKeys))
	for i, key := range d.orderedKeys {
		data[i] = make([]string, 0, len(header))
		data[i] = append(data[i], key.String())
		for _, label := range d.orderedLabels {
			data[i] = append(data[i], d.stats[key][label].String())
		}
	}
	return renderTable(header, data)
}

// Len returns the number of groups.
func (d *Description) Len() int {
	return len(d.orderedKeys)
}

// Keys returns the group keys in order.
func (d *Description) Keys() []Value {
	ret := make([]Value, len(d.orderedKeys))
	copy(ret, d.orderedKeys)
	return ret
}

// Labels returns the statistic labels in the order they were first produced.
func (d *Description) Labels() []string {
	ret := make([]string, len(d.orderedLabels))
	copy(ret, d.orderedLabels)
	return ret
}

// Stat returns the statistic labeled `label` for group `key`, and whether it exists.
func (d *Description) Stat(key Value, label string) (Value, bool) {
	v, ok := d.stats[key][label]
	return v, ok
}

// Stats returns a copy of every labeled statistic for group `key`, or nil if `key` is not a group.
func (d *Description) Stats(key Value) map[string]Value {
	stats, ok := d.stats[key]
	if !ok {
		return nil
	}
	ret := make(map[string]Value, len(stats))
	for label, v := range stats {
		ret[label] = v
	}
	return ret
}

// PrintCute prints each group key, followed by an indented list of its labeled statistics.
func (d *Description) PrintCute() {
	d.WriteCute(os.Stdout)
}

// WriteCute writes each group key to `w`, followed by an indented list of its labeled statistics.
func (d *Description) WriteCute(w io.Writer) error {
	buf := bufio.NewWriter(w)
	for _, key := range d.orderedKeys {
		fmt.Fprintln(buf, key.String())
		for _, label := range d.orderedLabels {
			if v, ok := d.stats[key][label]; ok {
				fmt.Fprintf(buf, "%s%s : %s\n", optionCuteIndent, label, v.String())
			}
		}
	}
	return buf.Flush()
}
