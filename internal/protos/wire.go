package protos

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// This file implements the protobuf wire encoding of the ONNX messages, with the field numbers of onnx.proto.
//
// Fields are written in ascending field-number order, so equal messages always serialize to the same bytes.
// Repeated scalars declared `[packed = true]` in onnx.proto are written packed, the others unpacked (proto2
// default); the decoder accepts both encodings everywhere.

// Message is implemented by every ONNX message in this package.
type Message interface {
	appendWire(b []byte) []byte
	unmarshalWire(b []byte) error
}

// Marshal returns the wire encoding of m.
func Marshal(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("protos.Marshal: nil message")
	}
	return m.appendWire(nil), nil
}

// Unmarshal parses the wire encoding in b into m.
// Fields present in b are merged into m, so m should normally be a zero value.
// Unknown fields are skipped.
func Unmarshal(b []byte, m Message) error {
	if m == nil {
		return errors.New("protos.Unmarshal: nil message")
	}
	return m.unmarshalWire(b)
}

////////////////////////////////////////////////////////////////////
//
// Encoding helpers.
//
////////////////////////////////////////////////////////////////////

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendVarintField writes an integer field, if non-zero.
func appendVarintField[T int32 | int64](b []byte, num protowire.Number, v T) []byte {
	if v == 0 {
		return b
	}
	return appendVarint(b, num, v)
}

// appendVarint always writes the integer field. Negative values are sign-extended to 64 bits, as protobuf does.
func appendVarint[T int32 | int64](b []byte, num protowire.Number, v T) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendWire(nil))
}

func appendMessages[M Message](b []byte, num protowire.Number, ms []M) []byte {
	for _, m := range ms {
		b = appendMessage(b, num, m)
	}
	return b
}

func appendPackedVarints[T int32 | int64 | uint64](b []byte, num protowire.Number, values []T) []byte {
	if len(values) == 0 {
		return b
	}
	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, uint64(int64(v)))
	}
	return appendBytesField(b, num, packed)
}

func appendUnpackedVarints[T int32 | int64](b []byte, num protowire.Number, values []T) []byte {
	for _, v := range values {
		b = appendVarint(b, num, v)
	}
	return b
}

func appendPackedFloats(b []byte, num protowire.Number, values []float32) []byte {
	if len(values) == 0 {
		return b
	}
	packed := make([]byte, 0, 4*len(values))
	for _, v := range values {
		packed = protowire.AppendFixed32(packed, math.Float32bits(v))
	}
	return appendBytesField(b, num, packed)
}

func appendUnpackedFloats(b []byte, num protowire.Number, values []float32) []byte {
	for _, v := range values {
		b = appendFloat(b, num, v)
	}
	return b
}

func appendPackedDoubles(b []byte, num protowire.Number, values []float64) []byte {
	if len(values) == 0 {
		return b
	}
	packed := make([]byte, 0, 8*len(values))
	for _, v := range values {
		packed = protowire.AppendFixed64(packed, math.Float64bits(v))
	}
	return appendBytesField(b, num, packed)
}

////////////////////////////////////////////////////////////////////
//
// Decoding helpers.
//
////////////////////////////////////////////////////////////////////

// fieldDecoder decodes the value of one field (whose tag was already consumed) from the start of b,
// and returns the number of bytes consumed.
type fieldDecoder func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// consumeFields iterates over the fields of a message encoded in b.
func consumeFields(b []byte, decode fieldDecoder) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(protowire.ParseError(n), "invalid field tag")
		}
		b = b[n:]
		n, err := decode(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "invalid value for field %d", num)
		}
		b = b[n:]
	}
	return nil
}

// skipField consumes an unknown field.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, errors.Wrapf(protowire.ParseError(n), "invalid value for unknown field %d", num)
	}
	return n, nil
}

func wireTypeError(num protowire.Number, typ protowire.Type, want protowire.Type) error {
	return errors.Errorf("field %d has wire type %d, expected %d", num, typ, want)
}

func parseError(num protowire.Number, n int) error {
	return errors.Wrapf(protowire.ParseError(n), "invalid value for field %d", num)
}

func consumeString(num protowire.Number, typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(num, typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	*dst = v
	return n, nil
}

func consumeStrings(num protowire.Number, typ protowire.Type, b []byte, dst *[]string) (int, error) {
	var s string
	n, err := consumeString(num, typ, b, &s)
	if err != nil {
		return 0, err
	}
	*dst = append(*dst, s)
	return n, nil
}

// consumeBytes copies the bytes value, so the result doesn't alias the input buffer.
func consumeBytes(num protowire.Number, typ protowire.Type, b []byte, dst *[]byte) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(num, typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	*dst = bytes.Clone(v)
	if *dst == nil {
		*dst = []byte{}
	}
	return n, nil
}

func consumeBytesList(num protowire.Number, typ protowire.Type, b []byte, dst *[][]byte) (int, error) {
	var v []byte
	n, err := consumeBytes(num, typ, b, &v)
	if err != nil {
		return 0, err
	}
	*dst = append(*dst, v)
	return n, nil
}

func consumeVarint[T int32 | int64](num protowire.Number, typ protowire.Type, b []byte, dst *T) (int, error) {
	if typ != protowire.VarintType {
		return 0, wireTypeError(num, typ, protowire.VarintType)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	*dst = T(v)
	return n, nil
}

func consumeFloat(num protowire.Number, typ protowire.Type, b []byte, dst *float32) (int, error) {
	if typ != protowire.Fixed32Type {
		return 0, wireTypeError(num, typ, protowire.Fixed32Type)
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	*dst = math.Float32frombits(v)
	return n, nil
}

// consumeVarints decodes a repeated integer field, either packed or one value at a time.
func consumeVarints[T int32 | int64 | uint64](num protowire.Number, typ protowire.Type, b []byte, dst *[]T) (int, error) {
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		*dst = append(*dst, T(v))
		return n, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		for len(packed) > 0 {
			v, vn := protowire.ConsumeVarint(packed)
			if vn < 0 {
				return 0, parseError(num, vn)
			}
			*dst = append(*dst, T(v))
			packed = packed[vn:]
		}
		return n, nil
	default:
		return 0, wireTypeError(num, typ, protowire.VarintType)
	}
}

// consumeFloats decodes a repeated float field, either packed or one value at a time.
func consumeFloats(num protowire.Number, typ protowire.Type, b []byte, dst *[]float32) (int, error) {
	switch typ {
	case protowire.Fixed32Type:
		var v float32
		n, err := consumeFloat(num, typ, b, &v)
		if err != nil {
			return 0, err
		}
		*dst = append(*dst, v)
		return n, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		if len(packed)%4 != 0 {
			return 0, errors.Errorf("packed float field %d has %d bytes, not a multiple of 4", num, len(packed))
		}
		for len(packed) > 0 {
			v, vn := protowire.ConsumeFixed32(packed)
			if vn < 0 {
				return 0, parseError(num, vn)
			}
			*dst = append(*dst, math.Float32frombits(v))
			packed = packed[vn:]
		}
		return n, nil
	default:
		return 0, wireTypeError(num, typ, protowire.Fixed32Type)
	}
}

// consumeDoubles decodes a repeated double field, either packed or one value at a time.
func consumeDoubles(num protowire.Number, typ protowire.Type, b []byte, dst *[]float64) (int, error) {
	switch typ {
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		*dst = append(*dst, math.Float64frombits(v))
		return n, nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		if len(packed)%8 != 0 {
			return 0, errors.Errorf("packed double field %d has %d bytes, not a multiple of 8", num, len(packed))
		}
		for len(packed) > 0 {
			v, vn := protowire.ConsumeFixed64(packed)
			if vn < 0 {
				return 0, parseError(num, vn)
			}
			*dst = append(*dst, math.Float64frombits(v))
			packed = packed[vn:]
		}
		return n, nil
	default:
		return 0, wireTypeError(num, typ, protowire.Fixed64Type)
	}
}

func consumeMessage(num protowire.Number, typ protowire.Type, b []byte, m Message) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(num, typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	if err := m.unmarshalWire(v); err != nil {
		return 0, errors.WithMessagef(err, "while decoding field %d", num)
	}
	return n, nil
}

// consumeRepeatedMessage decodes one element of a repeated message field and appends it to dst.
func consumeRepeatedMessage[T any, PT interface {
	*T
	Message
}](num protowire.Number, typ protowire.Type, b []byte, dst *[]PT) (int, error) {
	m := PT(new(T))
	n, err := consumeMessage(num, typ, b, m)
	if err != nil {
		return 0, err
	}
	*dst = append(*dst, m)
	return n, nil
}

////////////////////////////////////////////////////////////////////
//
// ModelProto
//
////////////////////////////////////////////////////////////////////

func (x *ModelProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendVarintField(b, 1, x.IrVersion)
	b = appendStringField(b, 2, x.ProducerName)
	b = appendStringField(b, 3, x.ProducerVersion)
	b = appendStringField(b, 4, x.Domain)
	b = appendVarintField(b, 5, x.ModelVersion)
	b = appendStringField(b, 6, x.DocString)
	if x.Graph != nil {
		b = appendMessage(b, 7, x.Graph)
	}
	b = appendMessages(b, 8, x.OpsetImport)
	b = appendMessages(b, 14, x.MetadataProps)
	return b
}

func (x *ModelProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeVarint(num, typ, b, &x.IrVersion)
		case 2:
			return consumeString(num, typ, b, &x.ProducerName)
		case 3:
			return consumeString(num, typ, b, &x.ProducerVersion)
		case 4:
			return consumeString(num, typ, b, &x.Domain)
		case 5:
			return consumeVarint(num, typ, b, &x.ModelVersion)
		case 6:
			return consumeString(num, typ, b, &x.DocString)
		case 7:
			if x.Graph == nil {
				x.Graph = &GraphProto{}
			}
			return consumeMessage(num, typ, b, x.Graph)
		case 8:
			return consumeRepeatedMessage(num, typ, b, &x.OpsetImport)
		case 14:
			return consumeRepeatedMessage(num, typ, b, &x.MetadataProps)
		}
		return skipField(num, typ, b)
	})
}

func (x *OperatorSetIdProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendStringField(b, 1, x.Domain)
	b = appendVarintField(b, 2, x.Version)
	return b
}

func (x *OperatorSetIdProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &x.Domain)
		case 2:
			return consumeVarint(num, typ, b, &x.Version)
		}
		return skipField(num, typ, b)
	})
}

func (x *StringStringEntryProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendStringField(b, 1, x.Key)
	b = appendStringField(b, 2, x.Value)
	return b
}

func (x *StringStringEntryProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &x.Key)
		case 2:
			return consumeString(num, typ, b, &x.Value)
		}
		return skipField(num, typ, b)
	})
}

////////////////////////////////////////////////////////////////////
//
// GraphProto, NodeProto and AttributeProto
//
////////////////////////////////////////////////////////////////////

func (x *GraphProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendMessages(b, 1, x.Node)
	b = appendStringField(b, 2, x.Name)
	b = appendMessages(b, 5, x.Initializer)
	b = appendStringField(b, 10, x.DocString)
	b = appendMessages(b, 11, x.Input)
	b = appendMessages(b, 12, x.Output)
	b = appendMessages(b, 13, x.ValueInfo)
	return b
}

func (x *GraphProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeRepeatedMessage(num, typ, b, &x.Node)
		case 2:
			return consumeString(num, typ, b, &x.Name)
		case 5:
			return consumeRepeatedMessage(num, typ, b, &x.Initializer)
		case 10:
			return consumeString(num, typ, b, &x.DocString)
		case 11:
			return consumeRepeatedMessage(num, typ, b, &x.Input)
		case 12:
			return consumeRepeatedMessage(num, typ, b, &x.Output)
		case 13:
			return consumeRepeatedMessage(num, typ, b, &x.ValueInfo)
		}
		return skipField(num, typ, b)
	})
}

func (x *NodeProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	// Node input and output names are positional: empty names mark omitted optional values and must be kept.
	for _, name := range x.Input {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, name)
	}
	for _, name := range x.Output {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, name)
	}
	b = appendStringField(b, 3, x.Name)
	b = appendStringField(b, 4, x.OpType)
	b = appendMessages(b, 5, x.Attribute)
	b = appendStringField(b, 6, x.DocString)
	b = appendStringField(b, 7, x.Domain)
	return b
}

func (x *NodeProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeStrings(num, typ, b, &x.Input)
		case 2:
			return consumeStrings(num, typ, b, &x.Output)
		case 3:
			return consumeString(num, typ, b, &x.Name)
		case 4:
			return consumeString(num, typ, b, &x.OpType)
		case 5:
			return consumeRepeatedMessage(num, typ, b, &x.Attribute)
		case 6:
			return consumeString(num, typ, b, &x.DocString)
		case 7:
			return consumeString(num, typ, b, &x.Domain)
		}
		return skipField(num, typ, b)
	})
}

func (x *AttributeProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendStringField(b, 1, x.Name)
	// The value selected by Type is always written, even when zero.
	if x.Type == AttributeProto_FLOAT || x.F != 0 {
		b = appendFloat(b, 2, x.F)
	}
	if x.Type == AttributeProto_INT || x.I != 0 {
		b = appendVarint(b, 3, x.I)
	}
	if x.Type == AttributeProto_STRING || len(x.S) > 0 {
		b = appendBytesField(b, 4, x.S)
	}
	if x.T != nil {
		b = appendMessage(b, 5, x.T)
	}
	if x.G != nil {
		b = appendMessage(b, 6, x.G)
	}
	b = appendUnpackedFloats(b, 7, x.Floats)
	b = appendUnpackedVarints(b, 8, x.Ints)
	for _, s := range x.Strings {
		b = appendBytesField(b, 9, s)
	}
	b = appendMessages(b, 10, x.Tensors)
	b = appendMessages(b, 11, x.Graphs)
	b = appendStringField(b, 13, x.DocString)
	b = appendVarintField(b, 20, int32(x.Type))
	b = appendStringField(b, 21, x.RefAttrName)
	return b
}

func (x *AttributeProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &x.Name)
		case 2:
			return consumeFloat(num, typ, b, &x.F)
		case 3:
			return consumeVarint(num, typ, b, &x.I)
		case 4:
			return consumeBytes(num, typ, b, &x.S)
		case 5:
			if x.T == nil {
				x.T = &TensorProto{}
			}
			return consumeMessage(num, typ, b, x.T)
		case 6:
			if x.G == nil {
				x.G = &GraphProto{}
			}
			return consumeMessage(num, typ, b, x.G)
		case 7:
			return consumeFloats(num, typ, b, &x.Floats)
		case 8:
			return consumeVarints(num, typ, b, &x.Ints)
		case 9:
			return consumeBytesList(num, typ, b, &x.Strings)
		case 10:
			return consumeRepeatedMessage(num, typ, b, &x.Tensors)
		case 11:
			return consumeRepeatedMessage(num, typ, b, &x.Graphs)
		case 13:
			return consumeString(num, typ, b, &x.DocString)
		case 20:
			var attrType int32
			n, err := consumeVarint(num, typ, b, &attrType)
			x.Type = AttributeProto_AttributeType(attrType)
			return n, err
		case 21:
			return consumeString(num, typ, b, &x.RefAttrName)
		}
		return skipField(num, typ, b)
	})
}

////////////////////////////////////////////////////////////////////
//
// ValueInfoProto and TypeProto
//
////////////////////////////////////////////////////////////////////

func (x *ValueInfoProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendStringField(b, 1, x.Name)
	if x.Type != nil {
		b = appendMessage(b, 2, x.Type)
	}
	b = appendStringField(b, 3, x.DocString)
	return b
}

func (x *ValueInfoProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &x.Name)
		case 2:
			if x.Type == nil {
				x.Type = &TypeProto{}
			}
			return consumeMessage(num, typ, b, x.Type)
		case 3:
			return consumeString(num, typ, b, &x.DocString)
		}
		return skipField(num, typ, b)
	})
}

func (x *TypeProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	if v, ok := x.Value.(*TypeProto_TensorType); ok {
		b = appendMessage(b, 1, v.TensorType)
	}
	b = appendStringField(b, 6, x.Denotation)
	return b
}

func (x *TypeProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			tensorType := x.GetTensorType()
			if tensorType == nil {
				tensorType = &TypeProto_Tensor{}
				x.Value = &TypeProto_TensorType{TensorType: tensorType}
			}
			return consumeMessage(num, typ, b, tensorType)
		case 6:
			return consumeString(num, typ, b, &x.Denotation)
		}
		return skipField(num, typ, b)
	})
}

func (x *TypeProto_Tensor) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendVarintField(b, 1, x.ElemType)
	if x.Shape != nil {
		b = appendMessage(b, 2, x.Shape)
	}
	return b
}

func (x *TypeProto_Tensor) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeVarint(num, typ, b, &x.ElemType)
		case 2:
			if x.Shape == nil {
				x.Shape = &TensorShapeProto{}
			}
			return consumeMessage(num, typ, b, x.Shape)
		}
		return skipField(num, typ, b)
	})
}

func (x *TensorShapeProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	return appendMessages(b, 1, x.Dim)
}

func (x *TensorShapeProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeRepeatedMessage(num, typ, b, &x.Dim)
		}
		return skipField(num, typ, b)
	})
}

func (x *TensorShapeProto_Dimension) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	switch v := x.Value.(type) {
	case *TensorShapeProto_Dimension_DimValue:
		b = appendVarint(b, 1, v.DimValue)
	case *TensorShapeProto_Dimension_DimParam:
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, v.DimParam)
	}
	b = appendStringField(b, 3, x.Denotation)
	return b
}

func (x *TensorShapeProto_Dimension) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v := &TensorShapeProto_Dimension_DimValue{}
			n, err := consumeVarint(num, typ, b, &v.DimValue)
			x.Value = v
			return n, err
		case 2:
			v := &TensorShapeProto_Dimension_DimParam{}
			n, err := consumeString(num, typ, b, &v.DimParam)
			x.Value = v
			return n, err
		case 3:
			return consumeString(num, typ, b, &x.Denotation)
		}
		return skipField(num, typ, b)
	})
}

////////////////////////////////////////////////////////////////////
//
// TensorProto
//
////////////////////////////////////////////////////////////////////

func (x *TensorProto) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendUnpackedVarints(b, 1, x.Dims)
	b = appendVarintField(b, 2, x.DataType)
	if x.Segment != nil {
		b = appendMessage(b, 3, x.Segment)
	}
	b = appendPackedFloats(b, 4, x.FloatData)
	b = appendPackedVarints(b, 5, x.Int32Data)
	for _, s := range x.StringData {
		b = appendBytesField(b, 6, s)
	}
	b = appendPackedVarints(b, 7, x.Int64Data)
	b = appendStringField(b, 8, x.Name)
	if x.RawData != nil {
		b = appendBytesField(b, 9, x.RawData)
	}
	b = appendPackedDoubles(b, 10, x.DoubleData)
	b = appendPackedVarints(b, 11, x.Uint64Data)
	b = appendStringField(b, 12, x.DocString)
	return b
}

func (x *TensorProto) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeVarints(num, typ, b, &x.Dims)
		case 2:
			return consumeVarint(num, typ, b, &x.DataType)
		case 3:
			if x.Segment == nil {
				x.Segment = &TensorProto_Segment{}
			}
			return consumeMessage(num, typ, b, x.Segment)
		case 4:
			return consumeFloats(num, typ, b, &x.FloatData)
		case 5:
			return consumeVarints(num, typ, b, &x.Int32Data)
		case 6:
			return consumeBytesList(num, typ, b, &x.StringData)
		case 7:
			return consumeVarints(num, typ, b, &x.Int64Data)
		case 8:
			return consumeString(num, typ, b, &x.Name)
		case 9:
			return consumeBytes(num, typ, b, &x.RawData)
		case 10:
			return consumeDoubles(num, typ, b, &x.DoubleData)
		case 11:
			return consumeVarints(num, typ, b, &x.Uint64Data)
		case 12:
			return consumeString(num, typ, b, &x.DocString)
		}
		return skipField(num, typ, b)
	})
}

func (x *TensorProto_Segment) appendWire(b []byte) []byte {
	if x == nil {
		return b
	}
	b = appendVarintField(b, 1, x.Begin)
	b = appendVarintField(b, 2, x.End)
	return b
}

func (x *TensorProto_Segment) unmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeVarint(num, typ, b, &x.Begin)
		case 2:
			return consumeVarint(num, typ, b, &x.End)
		}
		return skipField(num, typ, b)
	})
}
