package indicator

import "math"

// RSISeries computes the Wilder relative strength index over the whole input.
// The first average gain/loss is a simple mean over the first period deltas;
// later values use Wilder's recursive smoothing. Indices below period, where
// the RSI is undefined, hold NaN. When the average loss is zero the RSI
// saturates at 100 rather than dividing by zero.
func RSISeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) == 0 {
		return nil
	}

	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	if len(values) <= period {
		return out
	}

	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		delta := values[i] - values[i-1]

		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}

		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
