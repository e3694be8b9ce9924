package cachex

import orderedmap "github.com/wk8/go-ordered-map/v2"

// OrderedMap is an insertion-ordered map backed by wk8/go-ordered-map.
// Re-setting an existing key updates its value in place without moving it.
// Not safe for concurrent mutation.
type OrderedMap[K comparable, V any] struct {
	om *orderedmap.OrderedMap[K, V]
}

func NewOrderedMap[K comparable, V any](sizeHint int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{om: orderedmap.New[K, V](sizeHint)}
}

func (m *OrderedMap[K, V]) Set(k K, v V) { m.om.Set(k, v) }

func (m *OrderedMap[K, V]) Get(k K) (V, bool) { return m.om.Get(k) }

func (m *OrderedMap[K, V]) Len() int { return m.om.Len() }

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, 0, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Values returns the values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Range calls fn in insertion order until fn returns false.
func (m *OrderedMap[K, V]) Range(fn func(k K, v V) bool) {
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Map returns a plain map copy.
func (m *OrderedMap[K, V]) Map() map[K]V {
	out := make(map[K]V, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = p.Value
	}
	return out
}

// Unwrap exposes the underlying ordered map, e.g. for its JSON/YAML
// marshalling, which preserves key order.
func (m *OrderedMap[K, V]) Unwrap() *orderedmap.OrderedMap[K, V] { return m.om }
