package report

import (
	"math"
	"strings"
)

// Levels from lowest to highest.
const sparkLevels = " .:-=+*#%@"

// sparkGap marks a value that cannot be placed on the scale.
const sparkGap = '?'

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MovingAverage returns, for each position, the mean of the finite values in
// the trailing window ending there. A window with no finite value yields NaN.
// A window of 0 or 1 returns a copy of values.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	for i := range values {
		var sum float64
		var n int
		for _, v := range values[max(0, i-window+1) : i+1] {
			if finite(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders values as one character each, scaled between the
// smallest and largest finite value. Non-finite values render as '?'.
func Sparkline(values []float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if finite(v) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	top := len(sparkLevels) - 1
	var b strings.Builder
	for _, v := range values {
		switch {
		case !finite(v):
			b.WriteByte(sparkGap)
		case hi-lo < 1e-9:
			b.WriteByte(sparkLevels[top/2+1])
		default:
			level := int(math.Round((v - lo) / (hi - lo) * float64(top)))
			b.WriteByte(sparkLevels[min(max(level, 0), top)])
		}
	}
	return b.String()
}
