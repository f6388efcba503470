package indicators

// MA returns the Simple Moving Average of the last min(window, len(values))
// entries of values (oldest-first). It returns 0 for an empty series or a
// non-positive window; a short series is answered with the mean of what is
// available rather than an error, since callers seed their buffers.
func MA(values []float64, window int) float64 {
	if len(values) == 0 || window <= 0 {
		return 0
	}
	n := window
	if n > len(values) {
		n = len(values)
	}
	sum := 0.0
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n)
}
