package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack is a Codec on vmihailenco/msgpack/v5 and the default codec of the
// byte-oriented backends. The zero value is ready to use. With V=any,
// integers keep their width instead of collapsing to float64 as with JSON.
type Msgpack[V any] struct {
	// SortMapKeys makes equal maps encode to equal bytes, at some cost.
	SortMapKeys bool
}

func (c Msgpack[V]) Encode(v V) ([]byte, error) {
	if !c.SortMapKeys {
		return msgpack.Marshal(v)
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).SetSortMapKeys(true).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
