package cachex

import "time"

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
