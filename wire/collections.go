package wire

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

// CollValue returns a collections value codec backed by a message's own
// wire-format codec, with JSON used for genesis-style encoding.
func CollValue[T any, PT interface {
	*T
	Message
}]() collcodec.ValueCodec[T] {
	return collValue[T, PT]{}
}

type collValue[T any, PT interface {
	*T
	Message
}] struct{}

func (collValue[T, PT]) Encode(value T) ([]byte, error) {
	return PT(&value).Marshal()
}

func (collValue[T, PT]) Decode(b []byte) (T, error) {
	var value T
	err := PT(&value).Unmarshal(b)
	return value, err
}

func (collValue[T, PT]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (collValue[T, PT]) DecodeJSON(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (collValue[T, PT]) Stringify(value T) string {
	return fmt.Sprintf("%v", value)
}

func (collValue[T, PT]) ValueType() string {
	return fmt.Sprintf("%T", *new(T))
}
