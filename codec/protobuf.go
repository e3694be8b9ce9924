package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

var ErrNilMessage = errors.New("codec: nil protobuf message")

// Protobuf encodes a single concrete message type.
type Protobuf[T proto.Message] struct {
	new func() T // e.g. func() *mypb.User { return &mypb.User{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

// ProtobufAny is NewProtobuf wrapped with Erase, ready for a backend Config.
func ProtobufAny[T proto.Message](ctor func() T) Codec[any] {
	return Erase[T](NewProtobuf(ctor))
}

// Encode rejects a nil message; proto.Marshal would store it as an empty
// payload that decodes to a zero message, turning "nothing" into a value.
func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	if !v.ProtoReflect().IsValid() {
		return nil, ErrNilMessage
	}
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
