package indicator

// EMASeries computes an exponential moving average over the whole input with
// smoothing factor 2/(span+1). The series is seeded with the first value, so
// the output is aligned 1:1 with the input. Returns nil for empty input or a
// non-positive span.
func EMASeries(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}

	alpha := 2.0 / (float64(span) + 1.0)

	out := make([]float64, len(values))
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}
