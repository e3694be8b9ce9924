package cachex

import (
	"reflect"
	"sort"
)

// ReadResult is the outcome of a batch read. Every distinct requested key is
// in exactly one of Hits or Misses; both keep the order of the request.
type ReadResult struct {
	Hits   *OrderedMap[string, any]
	Misses []string
}

func emptyResult() *ReadResult {
	return &ReadResult{Hits: NewOrderedMap[string, any](0)}
}

func (r *ReadResult) HitCount() int  { return r.Hits.Len() }
func (r *ReadResult) MissCount() int { return len(r.Misses) }

// FullHit reports whether every requested key was found. An empty result is
// not a full hit.
func (r *ReadResult) FullHit() bool { return r.Hits.Len() > 0 && len(r.Misses) == 0 }

// HitValues returns hit values in request order. Negative-cache placeholders
// are included; use a Converter to drop them.
func (r *ReadResult) HitValues() []any { return r.Hits.Values() }

// Partition splits keys into hits and misses against raw. It walks keys, not
// raw, so output order follows the request regardless of backend map order.
// A nil value, including a typed nil pointer, map or slice, counts as a miss;
// a duplicate key counts once.
func Partition(keys []string, raw map[string]any) *ReadResult {
	res := &ReadResult{Hits: NewOrderedMap[string, any](len(raw))}
	missed := make(map[string]struct{})
	for _, k := range keys {
		if _, dup := missed[k]; dup {
			continue
		}
		if _, dup := res.Hits.Get(k); dup {
			continue
		}
		if v := raw[k]; !isNil(v) {
			res.Hits.Set(k, v)
		} else {
			missed[k] = struct{}{}
			res.Misses = append(res.Misses, k)
		}
	}
	return res
}

// isNil reports whether v carries no value: untyped nil, or a nil pointer,
// map, slice, interface, func or chan wrapped in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// distinct drops repeated keys, keeping first occurrences in order.
func distinct(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Source is a read-only key->value view consumed by the Converter.
// *OrderedMap[string, any] (ReadResult.Hits) satisfies it.
type Source interface {
	Len() int
	Range(fn func(key string, value any) bool)
}

// MapSource adapts a plain map to Source. Iteration is in sorted key order so
// conversions stay deterministic.
type MapSource map[string]any

func (m MapSource) Len() int { return len(m) }

func (m MapSource) Range(fn func(key string, value any) bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn(k, m[k]) {
			return
		}
	}
}
