package phoenixcel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heavyBirdsPipeline keeps birds heavier than `minWeight`, labels each by size class, and summarizes weight per species.
func heavyBirdsPipeline(df *DataFrame, minWeight float64) (*Description, error) {
	heavy := df.Where(func(row Row) bool {
		w, err := row["weight"].Float64()
		return err == nil && w > minWeight
	})
	if err := heavy.Err(); err != nil {
		return nil, err
	}
	_, err := heavy.Assign(Derivation{
		Name: "Size Class",
		Fn: func(row Row) Value {
			w, _ := row["weight"].Float64()
			if w >= 1000 {
				return Text("large")
			}
			return Text("small")
		},
	})
	if err != nil {
		return nil, err
	}
	g, err := heavy.GroupBy("species")
	if err != nil {
		return nil, err
	}
	return g.DescribeWith(
		AggSpec{Agg: AggCount, Column: "weight"},
		AggSpec{Agg: AggSum, Column: "weight"},
		AggSpec{Agg: AggSpread, Column: "weight"},
		AggSpec{Agg: AggMax, Column: "Size Class"},
	)
}

func Test_heavyBirdsPipeline(t *testing.T) {
	df, err := ReadCSVFile("testdata/birds.csv")
	require.NoError(t, err)

	d, err := heavyBirdsPipeline(df, 125)
	require.NoError(t, err)

	assert.Equal(t, []Value{Text("Herring Gull"), Text("Common Tern"), Text("Arctic Tern")}, d.Keys())
	assert.Equal(t, []string{"weight count", "weight sum", "weight spread", "Size Class max"}, d.Labels())
	assert.Equal(t, map[string]Value{
		"weight count":   Number(6),
		"weight sum":     Number(816),
		"weight spread":  Number(10),
		"Size Class max": Text("small"),
	}, d.Stats(Text("Common Tern")))
	assert.Equal(t, map[string]Value{
		"weight count":   Number(7),
		"weight sum":     Number(7406),
		"weight spread":  Number(12),
		"Size Class max": Text("large"),
	}, d.Stats(Text("Herring Gull")))
	assert.Equal(t, map[string]Value{
		"weight count":   Number(1),
		"weight sum":     Number(127),
		"weight spread":  Number(0),
		"Size Class max": Text("small"),
	}, d.Stats(Text("Arctic Tern")))

	// the source is untouched by the pipeline
	assert.Equal(t, 21, df.Len())
	assert.Equal(t, []string{"species", "specimen_id", "weight"}, df.Columns())
}

func Test_birdsSummary(t *testing.T) {
	df, err := ReadCSVFile("testdata/birds.csv")
	require.NoError(t, err)
	g, err := df.GroupBy("species")
	require.NoError(t, err)

	sums, err := g.Sum("weight")
	require.NoError(t, err)
	assert.Equal(t, map[Value]Value{
		Text("Common Tern"):  Number(936),
		Text("Arctic Tern"):  Number(811),
		Text("Herring Gull"): Number(7406),
	}, sums)

	avgs, err := g.Average("weight")
	require.NoError(t, err)
	assert.Equal(t, Number(1058), avgs[Text("Herring Gull")])
	commonTern, _ := avgs[Text("Common Tern")].Float64()
	assert.InDelta(t, 936.0/7, commonTern, 1e-9)

	spreads, err := g.Spread("weight")
	require.NoError(t, err)
	for _, key := range g.Keys() {
		lo, _ := g.Min("weight")
		hi, _ := g.Max("weight")
		l, _ := lo[key].Float64()
		h, _ := hi[key].Float64()
		assert.Equal(t, Number(h-l), spreads[key], "spread of %v", key)
	}

	_, err = g.Average("species")
	assert.ErrorIs(t, err, ErrType)
}

func Test_pipelineOutputMatchesCSV(t *testing.T) {
	data := `name,score
joe doe,3
john doe,-100
jane doe,1000
john doe,6
jane doe,8`
	want := `name,score,passed
joe doe,3,false
john doe,6,true
jane doe,8,true`

	df, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	ret := df.Where(func(row Row) bool {
		score, _ := row["score"].Float64()
		return score >= 0 && score <= 100
	})
	_, err = ret.Assign(Derivation{Name: "passed", Fn: func(row Row) Value {
		score, _ := row["score"].Float64()
		return Bool(score >= 5)
	}})
	require.NoError(t, err)

	eq, diffs, err := ret.EqualsCSV(strings.NewReader(want))
	require.NoError(t, err)
	assert.True(t, eq, "got %v, want %v, has diffs: \n%v", ret, want, diffs)
}
