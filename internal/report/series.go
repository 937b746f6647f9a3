package report

import "tally/internal/stats"

// Series is a chart-ready label/value pairing consumed by whatever
// renders the charts. Values are float64 because that is what plotting
// consumers take; the exact decimals stay in the rollups.
type Series struct {
	Labels []string
	Values []float64
}

// CategorySeries shapes a category rollup for pie and bar charts,
// already ordered by spend descending.
func CategorySeries(rollups []stats.CategoryRollup) Series {
	s := Series{
		Labels: make([]string, len(rollups)),
		Values: make([]float64, len(rollups)),
	}
	for i, r := range rollups {
		s.Labels[i] = string(r.Category)
		s.Values[i] = r.Total.Float64()
	}
	return s
}

// MonthlySeries shapes a month rollup for trend charts, chronological.
func MonthlySeries(rollups []stats.MonthRollup) Series {
	s := Series{
		Labels: make([]string, len(rollups)),
		Values: make([]float64, len(rollups)),
	}
	for i, r := range rollups {
		s.Labels[i] = r.Month
		s.Values[i] = r.Total.Float64()
	}
	return s
}
