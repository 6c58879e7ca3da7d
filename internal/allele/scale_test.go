package allele

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		measures []float64
		want     []float64
		min      float64
	}{
		{"insertion ladder", []float64{1, 2, 3}, []float64{0, 1, 2}, 1},
		{"deletion reference", []float64{4, 1, 2}, []float64{3, 0, 1}, 1},
		{"tied alternates", []float64{3, 5, 5}, []float64{0, 2, 2}, 3},
		{"single allele", []float64{7}, []float64{0}, 7},
		{"fragment lengths", []float64{201.5, 199.5}, []float64{2, 0}, 199.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, ok := Normalize(tt.measures)
			require.True(t, ok)
			assert.Equal(t, tt.want, scale.Values)
			assert.Equal(t, tt.min, scale.Min)
		})
	}
}

func TestNormalize_Properties(t *testing.T) {
	sets := [][]float64{
		{1, 2, 3},
		{10, 3, 3, 8},
		{0, 0},
		{12, 4, 9, 4, 30},
	}

	for _, m := range sets {
		scale, ok := Normalize(m)
		require.True(t, ok)

		assert.Contains(t, scale.Values, 0.0)
		lowest := scale.Values[0]
		for i, v := range scale.Values {
			assert.Equal(t, m[i]-scale.Min, v, "order must mirror input")
			if v < lowest {
				lowest = v
			}
		}
		assert.Equal(t, 0.0, lowest)

		again, ok := Normalize(scale.Values)
		require.True(t, ok)
		assert.Equal(t, scale.Values, again.Values, "normalizing twice is a no-op")
	}
}

func TestNormalize_Empty(t *testing.T) {
	_, ok := Normalize(nil)
	assert.False(t, ok)
}

func TestScale_At(t *testing.T) {
	scale, _ := Normalize([]float64{1, 2, 3})

	v, ok := scale.At(2)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = scale.At(3)
	assert.False(t, ok)
	_, ok = scale.At(-1)
	assert.False(t, ok)
}

func TestSet_Lengths(t *testing.T) {
	s := Set{Ref: "A", Alts: []string{"AT", "ATT"}}
	assert.Equal(t, []float64{1, 2, 3}, s.Lengths())

	scale, ok := Normalize(s.Lengths())
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 2}, scale.Values)
}

func TestSet_Allele(t *testing.T) {
	s := Set{Ref: "AA", Alts: []string{"AAT"}}

	seq, ok := s.Allele(0)
	assert.True(t, ok)
	assert.Equal(t, "AA", seq)

	seq, ok = s.Allele(1)
	assert.True(t, ok)
	assert.Equal(t, "AAT", seq)

	_, ok = s.Allele(2)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"AA", "AAT"}, s.Sequences())
}

func TestSet_LengthDiffs(t *testing.T) {
	s := Set{Ref: "ATT", Alts: []string{"A", "ATTT", "GTT"}}
	assert.Equal(t, []int{0, -2, 1, 0}, s.LengthDiffs())
	assert.True(t, s.HasIndel())

	snv := Set{Ref: "C", Alts: []string{"A"}}
	assert.False(t, snv.HasIndel())
}

func TestValueScale(t *testing.T) {
	vs, ok := NewValueScale([]float64{210, 204, 210, 198, 204})
	require.True(t, ok)

	assert.Equal(t, []float64{198, 204, 210}, vs.Distinct)
	assert.Equal(t, []float64{0, 6, 12}, vs.Scale.Values)
	assert.Equal(t, 198.0, vs.Scale.Min)

	v, ok := vs.Lookup(210)
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	_, ok = vs.Lookup(205)
	assert.False(t, ok)
}

func TestValueScale_Empty(t *testing.T) {
	vs, ok := NewValueScale(nil)
	assert.False(t, ok)
	assert.Nil(t, vs)

	_, ok = vs.Lookup(1)
	assert.False(t, ok)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "2", FormatValue(2))
	assert.Equal(t, "1.5", FormatValue(1.5))
}
