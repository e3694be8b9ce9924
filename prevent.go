package cachex

// preventMarker has a non-zero size so that &preventMarker{} yields a unique
// address; zero-size allocations may share one.
type preventMarker struct{ _ byte }

var prevent = &preventMarker{}

// Prevent returns the negative-cache placeholder. Write it for keys known to be
// absent in the source of truth so repeated lookups stop at the cache. The
// Converter drops it from results.
func Prevent() any { return prevent }

// IsPrevent reports whether v is the placeholder returned by Prevent.
// Comparison is by identity; no other value, however it prints, matches.
func IsPrevent(v any) bool {
	p, ok := v.(*preventMarker)
	return ok && p == prevent
}
