// Package wire frames values stored in byte-oriented backends so that a
// negative-cache placeholder can be told apart from any encoded value.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

// Kind tags what an entry holds.
type Kind byte

const (
	KindValue   Kind = 1
	KindPrevent Kind = 2
)

const hdrLen = 4 + 1 + 1 + 4

var (
	ErrCorrupt = errors.New("cachex: corrupt entry")
	magic4     = [...]byte{'C', 'C', 'H', 'X'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | kind(1) | vlen(u32 be) | payload(vlen)
func encode(kind Kind, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(byte(kind))

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// EncodeValue frames an encoded value.
func EncodeValue(payload []byte) []byte { return encode(KindValue, payload) }

// EncodePrevent returns the frame for the negative-cache placeholder.
func EncodePrevent() []byte { return encode(KindPrevent, nil) }

// Decode validates a frame and returns its kind and payload. The payload
// aliases b. Trailing bytes, unknown kinds and a non-empty placeholder payload
// are all ErrCorrupt.
func Decode(b []byte) (Kind, []byte, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	kind := Kind(b[5])
	if kind != KindValue && kind != KindPrevent {
		return 0, nil, ErrCorrupt
	}

	off := 6
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off {
		return 0, nil, ErrCorrupt
	}
	if kind == KindPrevent && vlen != 0 {
		return 0, nil, ErrCorrupt
	}
	return kind, b[off : off+vlen], nil
}
