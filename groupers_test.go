package phoenixcel

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/d4l3k/messagediff"
)

func testGroupBy(t *testing.T) *GroupBy {
	t.Helper()
	df, err := FromRows([]Row{
		{"category": Text("A"), "value": Text("10")},
		{"category": Text("B"), "value": Text("30")},
		{"category": Text("A"), "value": Text("20")},
		{"category": Text("B"), "value": Text("40")},
	})
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	g, err := df.GroupBy("category")
	if err != nil {
		t.Fatalf("DataFrame.GroupBy() error = %v", err)
	}
	return g
}

func TestGroupBy_aggregations(t *testing.T) {
	g := testGroupBy(t)
	tests := []struct {
		name string
		fn   func(string) (map[Value]Value, error)
		want map[Value]Value
	}{
		{"sum", g.Sum, map[Value]Value{Text("A"): Number(30), Text("B"): Number(70)}},
		{"average", g.Average, map[Value]Value{Text("A"): Number(15), Text("B"): Number(35)}},
		{"avg", g.Avg, map[Value]Value{Text("A"): Number(15), Text("B"): Number(35)}},
		{"count", g.Count, map[Value]Value{Text("A"): Number(2), Text("B"): Number(2)}},
		{"min", g.Min, map[Value]Value{Text("A"): Text("10"), Text("B"): Text("30")}},
		{"max", g.Max, map[Value]Value{Text("A"): Text("20"), Text("B"): Text("40")}},
		{"spread", g.Spread, map[Value]Value{Text("A"): Number(10), Text("B"): Number(10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn("value")
			if err != nil {
				t.Fatalf("GroupBy aggregation error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				diff, _ := messagediff.PrettyDiff(got, tt.want)
				t.Errorf("GroupBy aggregation = %v, want %v: %s", got, tt.want, diff)
			}
		})
	}
}

func TestGroupBy_Spread(t *testing.T) {
	g := NewGroupBy(map[string][]Row{
		"A": {{"value": Number(10)}, {"value": Number(20)}},
		"B": {{"value": Number(30)}, {"value": Number(50)}},
	})
	got, err := g.Spread("value")
	if err != nil {
		t.Fatalf("GroupBy.Spread() error = %v", err)
	}
	want := map[Value]Value{Text("A"): Number(10), Text("B"): Number(20)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupBy.Spread() = %v, want %v", got, want)
	}

	g = NewGroupBy(map[string][]Row{"A": {{"value": Text("foo")}, {"value": Number(1)}}})
	if _, err := g.Spread("value"); !errors.Is(err, ErrType) {
		t.Errorf("GroupBy.Spread() error = %v, want ErrType", err)
	}
}

func TestGroupBy_MinMax_nonNumeric(t *testing.T) {
	early := time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)
	g := NewGroupBy(map[string][]Row{
		"names": {{"v": Text("pear")}, {"v": Text("apple")}, {"v": Text("quince")}},
		"dates": {{"v": Text("2020-01-02")}, {"v": DateTime(early)}, {"v": Text("2020-03-01")}},
	})
	gotMin, err := g.Min("v")
	if err != nil {
		t.Fatalf("GroupBy.Min() error = %v", err)
	}
	gotMax, err := g.Max("v")
	if err != nil {
		t.Fatalf("GroupBy.Max() error = %v", err)
	}
	wantMin := map[Value]Value{Text("names"): Text("apple"), Text("dates"): DateTime(early)}
	wantMax := map[Value]Value{Text("names"): Text("quince"), Text("dates"): Text("2020-03-01")}
	if !reflect.DeepEqual(gotMin, wantMin) {
		t.Errorf("GroupBy.Min() = %v, want %v", gotMin, wantMin)
	}
	if !reflect.DeepEqual(gotMax, wantMax) {
		t.Errorf("GroupBy.Max() = %v, want %v", gotMax, wantMax)
	}
}

func TestGroupBy_Aggregate(t *testing.T) {
	g := testGroupBy(t)
	first := Reducer{Name: "first", Fn: func(vals []Value) (Value, error) {
		return vals[0], nil
	}}
	got, err := g.Aggregate("value", first)
	if err != nil {
		t.Fatalf("GroupBy.Aggregate() error = %v", err)
	}
	want := map[Value]Value{Text("A"): Text("10"), Text("B"): Text("30")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupBy.Aggregate() = %v, want %v", got, want)
	}
}

func TestGroupBy_Aggregate_fail(t *testing.T) {
	g := testGroupBy(t)
	called := false
	spy := Reducer{Name: "spy", Fn: func([]Value) (Value, error) {
		called = true
		return Null(), nil
	}}
	failing := Reducer{Name: "failing", Fn: func([]Value) (Value, error) {
		return Value{}, errors.New("foo")
	}}
	tests := []struct {
		name    string
		on      string
		reducer Reducer
		wantErr error
		wantMsg string
	}{
		{"missing on", "", spy, ErrConfig, "which column should be aggregated?"},
		{"missing reducer", "value", Reducer{Name: "empty"}, ErrConfig, "how should \"value\" be aggregated?"},
		{"missing field", "weight", spy, ErrLookup, "weight"},
		{"reducer error", "value", failing, nil, "foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			_, err := g.Aggregate(tt.on, tt.reducer)
			if err == nil {
				t.Fatalf("GroupBy.Aggregate() returned no error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("GroupBy.Aggregate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("GroupBy.Aggregate() error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
			if called {
				t.Errorf("GroupBy.Aggregate() reduced a group despite invalid arguments")
			}
		})
	}
}

func TestGroupBy_DescribeWith(t *testing.T) {
	g := testGroupBy(t)
	median := Reducer{Name: "middle", Fn: func(vals []Value) (Value, error) {
		return vals[len(vals)/2], nil
	}}
	d, err := g.DescribeWith(
		AggSpec{Agg: AggSum, Column: "value"},
		AggSpec{Agg: AggAverage, Column: "value"},
		AggSpec{Agg: AggCustom, Column: "value", Reducer: median},
	)
	if err != nil {
		t.Fatalf("GroupBy.DescribeWith() error = %v", err)
	}
	wantLabels := []string{"value sum", "value average", "value middle"}
	if got := d.Labels(); !reflect.DeepEqual(got, wantLabels) {
		t.Errorf("Description.Labels() = %v, want %v", got, wantLabels)
	}
	if got := d.Keys(); !reflect.DeepEqual(got, []Value{Text("A"), Text("B")}) {
		t.Errorf("Description.Keys() = %v, want [A B]", got)
	}
	wantA := map[string]Value{"value sum": Number(30), "value average": Number(15), "value middle": Text("20")}
	if got := d.Stats(Text("A")); !reflect.DeepEqual(got, wantA) {
		diff, _ := messagediff.PrettyDiff(got, wantA)
		t.Errorf("Description.Stats(A) = %v, want %v: %s", got, wantA, diff)
	}
	if got, ok := d.Stat(Text("B"), "value sum"); !ok || got != Number(70) {
		t.Errorf("Description.Stat(B, value sum) = %v, %v, want 70, true", got, ok)
	}
	if _, ok := d.Stat(Text("C"), "value sum"); ok {
		t.Errorf("Description.Stat(C) found a group that does not exist")
	}
	if got := d.Stats(Text("C")); got != nil {
		t.Errorf("Description.Stats(C) = %v, want nil", got)
	}
	if d.Len() != 2 {
		t.Errorf("Description.Len() = %v, want 2", d.Len())
	}
}

func TestGroupBy_DescribeWith_labelCollision(t *testing.T) {
	g := testGroupBy(t)
	fakeSum := Reducer{Name: "sum", Fn: func([]Value) (Value, error) { return Number(-1), nil }}
	d, err := g.DescribeWith(
		AggSpec{Agg: AggSum, Column: "value"},
		AggSpec{Agg: AggCustom, Column: "value", Reducer: fakeSum},
	)
	if err != nil {
		t.Fatalf("GroupBy.DescribeWith() error = %v", err)
	}
	if got := d.Labels(); !reflect.DeepEqual(got, []string{"value sum"}) {
		t.Errorf("Description.Labels() = %v, want [value sum]", got)
	}
	if got, _ := d.Stat(Text("A"), "value sum"); got != Number(-1) {
		t.Errorf("Description.Stat() = %v, want the later AggSpec's result -1", got)
	}
}

func TestGroupBy_DescribeWith_fail(t *testing.T) {
	g := testGroupBy(t)
	tests := []struct {
		name    string
		spec    AggSpec
		wantErr error
	}{
		{"unknown aggregation", AggSpec{Agg: AggKind(99), Column: "value"}, ErrConfig},
		{"custom without reducer", AggSpec{Agg: AggCustom, Column: "value"}, ErrConfig},
		{"missing column", AggSpec{Agg: AggSum}, ErrConfig},
		{"unknown column", AggSpec{Agg: AggSum, Column: "weight"}, ErrLookup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.DescribeWith(tt.spec); !errors.Is(err, tt.wantErr) {
				t.Errorf("GroupBy.DescribeWith() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGroupBy_WriteCute(t *testing.T) {
	g := testGroupBy(t)
	var buf bytes.Buffer
	if err := g.WriteCute(&buf); err != nil {
		t.Fatalf("GroupBy.WriteCute() error = %v", err)
	}
	want := "A\n" +
		"  {category: A, value: 10}\n" +
		"  {category: A, value: 20}\n" +
		"B\n" +
		"  {category: B, value: 30}\n" +
		"  {category: B, value: 40}\n"
	if got := buf.String(); got != want {
		t.Errorf("GroupBy.WriteCute() = %q, want %q", got, want)
	}
}

func TestDescription_WriteCute(t *testing.T) {
	archive := optionCuteIndent
	SetOptionCuteIndent("\t")
	defer SetOptionCuteIndent(archive)

	g := testGroupBy(t)
	d, _ := g.DescribeWith(AggSpec{Agg: AggMax, Column: "value"}, AggSpec{Agg: AggCount, Column: "value"})
	var buf bytes.Buffer
	if err := d.WriteCute(&buf); err != nil {
		t.Fatalf("Description.WriteCute() error = %v", err)
	}
	want := "A\n\tvalue max : 20\n\tvalue count : 2\nB\n\tvalue max : 40\n\tvalue count : 2\n"
	if got := buf.String(); got != want {
		t.Errorf("Description.WriteCute() = %q, want %q", got, want)
	}
}

func TestNewGroupBy(t *testing.T) {
	rows := []Row{{"v": Number(1)}}
	g := NewGroupBy(map[string][]Row{"z": rows, "a": nil})
	if got := g.Keys(); !reflect.DeepEqual(got, []Value{Text("a"), Text("z")}) {
		t.Errorf("NewGroupBy().Keys() = %v, want [a z]", got)
	}
	rows[0]["v"] = Number(2)
	if got, _ := g.Group(Text("z")); got[0]["v"] != Number(1) {
		t.Errorf("NewGroupBy() shares rows with its input: %v", got)
	}
	if _, err := g.Group(Text("q")); !errors.Is(err, ErrLookup) {
		t.Errorf("GroupBy.Group() error = %v, want ErrLookup", err)
	}
	if got := g.String(); got != "Groups: a,z" {
		t.Errorf("GroupBy.String() = %q, want %q", got, "Groups: a,z")
	}
	if g.Len() != 2 {
		t.Errorf("GroupBy.Len() = %v, want 2", g.Len())
	}
}

func TestGroupBy_aggregationsLeaveGroupsUnchanged(t *testing.T) {
	g := testGroupBy(t)
	before, _ := g.Group(Text("A"))
	g.Sum("value")
	g.DescribeWith(AggSpec{Agg: AggSpread, Column: "value"})
	g.Aggregate("value", Reducer{Name: "mutate", Fn: func(vals []Value) (Value, error) {
		vals[0] = Text("changed")
		return Null(), nil
	}})
	after, _ := g.Group(Text("A"))
	if !reflect.DeepEqual(before, after) {
		t.Errorf("GroupBy aggregation changed the groups: %v, want %v", after, before)
	}
}

func TestDescription_String(t *testing.T) {
	g := testGroupBy(t)
	d, _ := g.DescribeWith(AggSpec{Agg: AggSum, Column: "value"})
	got := d.String()
	for _, want := range []string{"value sum", "A", "30", "70"} {
		if !strings.Contains(got, want) {
			t.Errorf("Description.String() missing %q in\n%v", want, got)
		}
	}
}

func TestAggKind_String(t *testing.T) {
	tests := []struct {
		agg  AggKind
		want string
	}{
		{AggSum, "sum"},
		{AggAverage, "average"},
		{AggSpread, "spread"},
		{AggCustom, "custom"},
		{AggKind(99), "AggKind(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.agg.String(); got != tt.want {
				t.Errorf("AggKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
