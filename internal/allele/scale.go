package allele

import (
	"math"
	"sort"
	"strconv"
)

// Scale is a zero-anchored set of measures: Values[i] = measure[i] - Min.
type Scale struct {
	Values []float64
	Min    float64
}

// Normalize subtracts the smallest measure from every measure, keeping the
// input order. It returns false for an empty measure set.
func Normalize(measures []float64) (Scale, bool) {
	if len(measures) == 0 {
		return Scale{}, false
	}

	minimum := measures[0]
	for _, m := range measures[1:] {
		if m < minimum {
			minimum = m
		}
	}

	values := make([]float64, len(measures))
	for i, m := range measures {
		values[i] = m - minimum
	}
	return Scale{Values: values, Min: minimum}, true
}

// Len returns the number of positions on the scale.
func (s Scale) Len() int {
	return len(s.Values)
}

// At returns the normalized value at index i.
func (s Scale) At(i int) (float64, bool) {
	if i < 0 || i >= len(s.Values) {
		return 0, false
	}
	return s.Values[i], true
}

// ValueScale normalizes measures shared across many rows. Equal measures
// anywhere in the input map to the same normalized value.
type ValueScale struct {
	Distinct []float64 // distinct original measures, ascending
	Scale    Scale
	byValue  map[float64]float64
}

// NewValueScale builds a shared scale from the distinct values, sorted
// ascending. It returns false when values is empty.
func NewValueScale(values []float64) (*ValueScale, bool) {
	seen := make(map[float64]bool, len(values))
	distinct := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || seen[v] {
			continue
		}
		seen[v] = true
		distinct = append(distinct, v)
	}
	sort.Float64s(distinct)

	scale, ok := Normalize(distinct)
	if !ok {
		return nil, false
	}

	byValue := make(map[float64]float64, len(distinct))
	for i, v := range distinct {
		byValue[v] = scale.Values[i]
	}
	return &ValueScale{Distinct: distinct, Scale: scale, byValue: byValue}, true
}

// Lookup maps an original measure to its normalized value.
func (vs *ValueScale) Lookup(v float64) (float64, bool) {
	if vs == nil {
		return 0, false
	}
	n, ok := vs.byValue[v]
	return n, ok
}

// FormatValue renders a scale value with no trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
