// Package wire implements protobuf wire-format encoding for message
// types that have no published Go bindings. Messages follow proto3
// semantics: zero-valued fields are omitted on encode and unknown
// fields are skipped on decode.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Message is the minimal contract of a hand-rolled wire message.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
}

// AppendString appends a string field, omitting empty values.
func AppendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// AppendBytes appends a length-delimited field, omitting empty values.
func AppendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// AppendUint32 appends a varint field, omitting zero values.
func AppendUint32(b []byte, num protowire.Number, v uint32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// AppendBool appends a bool field, omitting false.
func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

// AppendPackedInt32 appends a packed repeated int32 field, omitting
// empty slices.
func AppendPackedInt32(b []byte, num protowire.Number, vs []int32) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

// AppendMessage appends an embedded message field, omitting nil.
func AppendMessage(b []byte, num protowire.Number, m interface{ Marshal() ([]byte, error) }) ([]byte, error) {
	if m == nil {
		return b, nil
	}
	sub, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub), nil
}

// Decoder walks the fields of an encoded message. A typical Unmarshal
// loops over Next and switches on the field number, calling Skip for
// anything it does not know.
type Decoder struct {
	data []byte
}

// NewDecoder returns a Decoder over the encoded message bytes.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Next consumes the next field tag. It reports false once the message
// is exhausted.
func (d *Decoder) Next() (protowire.Number, protowire.Type, bool, error) {
	if len(d.data) == 0 {
		return 0, 0, false, nil
	}
	num, typ, n := protowire.ConsumeTag(d.data)
	if n < 0 {
		return 0, 0, false, protowire.ParseError(n)
	}
	d.data = d.data[n:]
	return num, typ, true, nil
}

// String consumes a length-delimited field as a string.
func (d *Decoder) String() (string, error) {
	v, err := d.Bytes()
	return string(v), err
}

// Bytes consumes a length-delimited field.
func (d *Decoder) Bytes() ([]byte, error) {
	v, n := protowire.ConsumeBytes(d.data)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	d.data = d.data[n:]
	return v, nil
}

// Uint32 consumes a varint field as a uint32.
func (d *Decoder) Uint32() (uint32, error) {
	v, n := protowire.ConsumeVarint(d.data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	d.data = d.data[n:]
	return uint32(v), nil
}

// Bool consumes a varint field as a bool.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint32()
	return v != 0, err
}

// Int32s consumes a repeated int32 field, packed or not, appending to vs.
func (d *Decoder) Int32s(typ protowire.Type, vs []int32) ([]int32, error) {
	if typ == protowire.VarintType {
		v, err := d.Uint32()
		if err != nil {
			return nil, err
		}
		return append(vs, int32(v)), nil
	}
	packed, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	for len(packed) > 0 {
		v, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		packed = packed[n:]
		vs = append(vs, int32(v))
	}
	return vs, nil
}

// Skip consumes and discards a field of any type.
func (d *Decoder) Skip(num protowire.Number, typ protowire.Type) error {
	n := protowire.ConsumeFieldValue(num, typ, d.data)
	if n < 0 {
		return protowire.ParseError(n)
	}
	d.data = d.data[n:]
	return nil
}
