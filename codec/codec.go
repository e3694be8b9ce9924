// Package codec serializes values for byte-oriented cache backends
// (bigcache, redis). In-process backends store values as-is and need none.
package codec

import "fmt"

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Erase adapts a typed codec to Codec[any] so it can back a cachex backend,
// which traffics in untyped values. Encoding a value that is not a V fails.
func Erase[V any](c Codec[V]) Codec[any] {
	return erased[V]{inner: c}
}

type erased[V any] struct {
	inner Codec[V]
}

func (e erased[V]) Encode(v any) ([]byte, error) {
	tv, ok := v.(V)
	if !ok {
		var want V
		return nil, fmt.Errorf("codec: cannot encode %T as %T", v, want)
	}
	return e.inner.Encode(tv)
}

func (e erased[V]) Decode(b []byte) (any, error) {
	v, err := e.inner.Decode(b)
	if err != nil {
		return nil, err
	}
	return v, nil
}
