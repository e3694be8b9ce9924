// Package provider holds cachex.Backend implementations over third-party
// stores, plus the framing shared by the byte-oriented ones.
//
// Byte stores (bigcache, redis) keep every value inside a wire frame that says
// whether it is an encoded value or the negative-cache placeholder. Reading the
// placeholder back returns the exact cachex.Prevent() value, so the Converter
// filters it the same way regardless of backend. In-process stores (ristretto)
// keep values as-is and need no framing.
//
// Entries that fail to decode are treated as a miss and deleted.
package provider

import (
	"github.com/unkn0wn-root/cachex"
	"github.com/unkn0wn-root/cachex/codec"
	"github.com/unkn0wn-root/cachex/internal/wire"
)

// Envelope frames cachex values for byte stores.
type Envelope struct {
	codec codec.Codec[any]
}

// NewEnvelope uses c for regular values; nil selects msgpack.
func NewEnvelope(c codec.Codec[any]) Envelope {
	if c == nil {
		c = codec.Msgpack[any]{}
	}
	return Envelope{codec: c}
}

func (e Envelope) Encode(v any) ([]byte, error) {
	if cachex.IsPrevent(v) {
		return wire.EncodePrevent(), nil
	}
	payload, err := e.codec.Encode(v)
	if err != nil {
		return nil, err
	}
	return wire.EncodeValue(payload), nil
}

func (e Envelope) Decode(b []byte) (any, error) {
	kind, payload, err := wire.Decode(b)
	if err != nil {
		return nil, err
	}
	if kind == wire.KindPrevent {
		return cachex.Prevent(), nil
	}
	return e.codec.Decode(payload)
}

// EncodeAll encodes every item, failing on the first error so a batch is
// written whole or not at all.
func (e Envelope) EncodeAll(items map[string]any) (map[string][]byte, error) {
	out := make(map[string][]byte, len(items))
	for k, v := range items {
		b, err := e.Encode(v)
		if err != nil {
			return nil, &EncodeError{Key: k, Err: err}
		}
		out[k] = b
	}
	return out, nil
}

// EncodeError names the key whose value could not be encoded.
type EncodeError struct {
	Key string
	Err error
}

func (e *EncodeError) Error() string { return "provider: encode " + e.Key + ": " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }
