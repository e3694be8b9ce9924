package cachex

import (
	"fmt"
	"reflect"
	"sync"
)

// ContainerKind selects the container a Converter materializes results into.
type ContainerKind int

const (
	KindOrderedMap ContainerKind = iota + 1 // *OrderedMap[any, any]
	KindHashMap                             // HashMap
	KindList                                // *List
	KindSet                                 // *Set
)

func (k ContainerKind) String() string {
	switch k {
	case KindOrderedMap:
		return "ordered-map"
	case KindHashMap:
		return "hash-map"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MapContainer receives id->value pairs. Ids must be comparable.
type MapContainer interface {
	Set(id, value any)
	Len() int
}

// Collection receives values.
type Collection interface {
	Add(value any)
	Len() int
}

type (
	MapFactory        func(sizeHint int) MapContainer
	CollectionFactory func(sizeHint int) Collection
)

// HashMap is the unordered MapContainer.
type HashMap map[any]any

func (m HashMap) Set(id, value any) { m[id] = value }
func (m HashMap) Len() int          { return len(m) }

// List is the ordered Collection; duplicates are kept.
type List []any

func (l *List) Add(value any) { *l = append(*l, value) }
func (l List) Len() int       { return len(l) }

// Set is a Collection that drops duplicate values and keeps first-seen order.
// Values of non-comparable types cannot be deduplicated and are always added.
type Set struct {
	vals []any
	seen map[any]struct{}
}

func NewSet(sizeHint int) *Set {
	return &Set{vals: make([]any, 0, sizeHint), seen: make(map[any]struct{}, sizeHint)}
}

func (s *Set) Add(value any) {
	if hashable(value) {
		if _, ok := s.seen[value]; ok {
			return
		}
		s.seen[value] = struct{}{}
	}
	s.vals = append(s.vals, value)
}

func (s *Set) Contains(value any) bool {
	if !hashable(value) {
		return false
	}
	_, ok := s.seen[value]
	return ok
}

func (s *Set) Len() int      { return len(s.vals) }
func (s *Set) Values() []any { return append([]any(nil), s.vals...) }

func hashable(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Comparable()
}

// Converter turns raw cache results (keyed by cache key) into caller-facing
// containers, dropping negative-cache placeholders. It ships factories for the
// four built-in kinds; more can be registered.
type Converter struct {
	mu    sync.RWMutex
	maps  map[ContainerKind]MapFactory
	colls map[ContainerKind]CollectionFactory
	hooks Hooks
}

// NewConverter returns a Converter with the built-in kinds. hooks may be nil.
func NewConverter(hooks Hooks) *Converter {
	return &Converter{
		maps: map[ContainerKind]MapFactory{
			KindOrderedMap: func(n int) MapContainer { return NewOrderedMap[any, any](n) },
			KindHashMap:    func(n int) MapContainer { return make(HashMap, n) },
		},
		colls: map[ContainerKind]CollectionFactory{
			KindList: func(n int) Collection { l := make(List, 0, n); return &l },
			KindSet:  func(n int) Collection { return NewSet(n) },
		},
		hooks: coalesce[Hooks](hooks, NopHooks{}),
	}
}

func (c *Converter) RegisterMap(kind ContainerKind, f MapFactory) {
	c.mu.Lock()
	c.maps[kind] = f
	c.mu.Unlock()
}

func (c *Converter) RegisterCollection(kind ContainerKind, f CollectionFactory) {
	c.mu.Lock()
	c.colls[kind] = f
	c.mu.Unlock()
}

// ToMap builds an id->value container of the given kind from raw. keyIDs maps
// each cache key to the id the caller asked with; entries whose key has no id
// are skipped since they cannot be correlated to a request. A hit whose id is
// not comparable fails the whole conversion with *InvalidIDError.
func (c *Converter) ToMap(keyIDs map[string]any, kind ContainerKind, raw Source) (MapContainer, error) {
	c.mu.RLock()
	f, ok := c.maps[kind]
	c.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedContainerError{Kind: kind}
	}

	out := f(raw.Len())
	dropped := 0
	var err error
	raw.Range(func(key string, v any) bool {
		switch {
		case isNil(v):
		case IsPrevent(v):
			dropped++
		default:
			id, ok := keyIDs[key]
			if !ok {
				return true
			}
			if !hashable(id) {
				err = &InvalidIDError{Key: key, ID: id}
				return false
			}
			out.Set(id, v)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	c.filtered(dropped)
	return out, nil
}

// ToCollection builds a values-only container of the given kind from raw.
func (c *Converter) ToCollection(kind ContainerKind, raw Source) (Collection, error) {
	c.mu.RLock()
	f, ok := c.colls[kind]
	c.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedContainerError{Kind: kind}
	}

	out := f(raw.Len())
	dropped := 0
	raw.Range(func(_ string, v any) bool {
		switch {
		case isNil(v):
		case IsPrevent(v):
			dropped++
		default:
			out.Add(v)
		}
		return true
	})
	c.filtered(dropped)
	return out, nil
}

func (c *Converter) filtered(n int) {
	if n > 0 {
		c.hooks.SentinelFiltered(n)
	}
}

// MapAs is ToMap followed by a conversion to the concrete type T.
func MapAs[T MapContainer](c *Converter, keyIDs map[string]any, kind ContainerKind, raw Source) (T, error) {
	var zero T
	mc, err := c.ToMap(keyIDs, kind, raw)
	if err != nil {
		return zero, err
	}
	t, ok := mc.(T)
	if !ok {
		return zero, &UnsupportedContainerError{Kind: kind, Want: fmt.Sprintf("%T", zero)}
	}
	return t, nil
}

// CollectionAs is ToCollection followed by a conversion to the concrete type T.
func CollectionAs[T Collection](c *Converter, kind ContainerKind, raw Source) (T, error) {
	var zero T
	col, err := c.ToCollection(kind, raw)
	if err != nil {
		return zero, err
	}
	t, ok := col.(T)
	if !ok {
		return zero, &UnsupportedContainerError{Kind: kind, Want: fmt.Sprintf("%T", zero)}
	}
	return t, nil
}
