package onnx

import (
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/pkg/errors"
)

// This file implements the model construction helpers, modeled after the Python onnx.helper functions.

const (
	// DefaultIRVersion is the ONNX IR version set by MakeModel: 3, the one of ONNX 1.3 consumed by the ONNC toolchain.
	DefaultIRVersion = 3

	// DefaultOpsetVersion is the version of the default ("ai.onnx") operator set imported by MakeModel.
	DefaultOpsetVersion = 8
)

// MakeTensorValueInfo declares a graph value (input or output) of the given element type and static shape.
func MakeTensorValueInfo(name string, elemType protos.TensorProto_DataType, dims []int) *protos.ValueInfoProto {
	shape := &protos.TensorShapeProto{Dim: make([]*protos.TensorShapeProto_Dimension, 0, len(dims))}
	for _, dim := range dims {
		shape.Dim = append(shape.Dim, &protos.TensorShapeProto_Dimension{
			Value: &protos.TensorShapeProto_Dimension_DimValue{DimValue: int64(dim)},
		})
	}
	return &protos.ValueInfoProto{
		Name: name,
		Type: &protos.TypeProto{
			Value: &protos.TypeProto_TensorType{
				TensorType: &protos.TypeProto_Tensor{
					ElemType: int32(elemType),
					Shape:    shape,
				},
			},
		},
	}
}

// TensorData is the set of Go types MakeTensor can store in a TensorProto.
type TensorData interface {
	float32 | float64 | int32 | int64 | uint64
}

// MakeTensor creates a tensor with the given dimensions and flat values, in row-major order.
// The ONNX data type is derived from T, and values are stored in the matching typed field (not as raw data).
//
// It returns an error if the number of values doesn't match the dimensions.
func MakeTensor[T TensorData](name string, dims []int, values []T) (*protos.TensorProto, error) {
	size, err := dimsSize(dims)
	if err != nil {
		return nil, errors.WithMessagef(err, "MakeTensor(%q)", name)
	}
	if len(values) != size {
		return nil, errors.Errorf("MakeTensor(%q): dimensions %v require %d values, but %d were given",
			name, dims, size, len(values))
	}
	tensor := &protos.TensorProto{
		Name: name,
		Dims: make([]int64, len(dims)),
	}
	for axis, dim := range dims {
		tensor.Dims[axis] = int64(dim)
	}
	switch data := any(slices.Clone(values)).(type) {
	case []float32:
		tensor.DataType = int32(protos.TensorProto_FLOAT)
		tensor.FloatData = data
	case []float64:
		tensor.DataType = int32(protos.TensorProto_DOUBLE)
		tensor.DoubleData = data
	case []int32:
		tensor.DataType = int32(protos.TensorProto_INT32)
		tensor.Int32Data = data
	case []int64:
		tensor.DataType = int32(protos.TensorProto_INT64)
		tensor.Int64Data = data
	case []uint64:
		tensor.DataType = int32(protos.TensorProto_UINT64)
		tensor.Uint64Data = data
	}
	return tensor, nil
}

// FilledTensor creates a float32 tensor with the given dimensions, with every element set to value.
// Dimensions must be positive.
func FilledTensor(name string, value float32, dims ...int) (*protos.TensorProto, error) {
	size, err := dimsSize(dims)
	if err != nil {
		return nil, errors.WithMessagef(err, "FilledTensor(%q)", name)
	}
	values := make([]float32, size)
	for ii := range values {
		values[ii] = value
	}
	return MakeTensor(name, dims, values)
}

// OnesTensor creates a float32 tensor with the given dimensions, with every element set to 1.0.
func OnesTensor(name string, dims ...int) (*protos.TensorProto, error) {
	return FilledTensor(name, 1, dims...)
}

// dimsSize returns the number of elements of a tensor with the given dimensions.
func dimsSize(dims []int) (int, error) {
	size := 1
	for axis, dim := range dims {
		if dim <= 0 {
			return 0, errors.Errorf("dimensions must be positive, got %v (axis #%d)", dims, axis)
		}
		size *= dim
	}
	return size, nil
}

// IntAttr creates an INT attribute.
func IntAttr(name string, value int) *protos.AttributeProto {
	return &protos.AttributeProto{Name: name, Type: protos.AttributeProto_INT, I: int64(value)}
}

// IntsAttr creates an INTS attribute.
func IntsAttr(name string, values ...int) *protos.AttributeProto {
	ints := make([]int64, len(values))
	for ii, v := range values {
		ints[ii] = int64(v)
	}
	return &protos.AttributeProto{Name: name, Type: protos.AttributeProto_INTS, Ints: ints}
}

// FloatAttr creates a FLOAT attribute.
func FloatAttr(name string, value float32) *protos.AttributeProto {
	return &protos.AttributeProto{Name: name, Type: protos.AttributeProto_FLOAT, F: value}
}

// FloatsAttr creates a FLOATS attribute.
func FloatsAttr(name string, values ...float32) *protos.AttributeProto {
	return &protos.AttributeProto{Name: name, Type: protos.AttributeProto_FLOATS, Floats: slices.Clone(values)}
}

// StringAttr creates a STRING attribute.
func StringAttr(name string, value string) *protos.AttributeProto {
	return &protos.AttributeProto{Name: name, Type: protos.AttributeProto_STRING, S: []byte(value)}
}

// TensorAttr creates a TENSOR attribute.
func TensorAttr(name string, value *protos.TensorProto) *protos.AttributeProto {
	return &protos.AttributeProto{Name: name, Type: protos.AttributeProto_TENSOR, T: value}
}

// MakeNode creates an operator node of the given type.
//
// Attributes are sorted by name, and it panics (with exceptions.Panicf) if an attribute is nil, unnamed or given twice.
func MakeNode(opType string, inputs, outputs []string, attributes ...*protos.AttributeProto) *protos.NodeProto {
	if opType == "" {
		exceptions.Panicf("MakeNode: operator type is empty")
	}
	node := &protos.NodeProto{
		OpType: opType,
		Input:  slices.Clone(inputs),
		Output: slices.Clone(outputs),
	}
	for ii, attr := range attributes {
		if attr == nil || attr.Name == "" {
			exceptions.Panicf("MakeNode(%q): attribute #%d is nil or has no name", opType, ii)
		}
	}
	node.Attribute = slices.Clone(attributes)
	slices.SortStableFunc(node.Attribute, func(a, b *protos.AttributeProto) int {
		return strings.Compare(a.Name, b.Name)
	})
	for ii := 1; ii < len(node.Attribute); ii++ {
		if node.Attribute[ii].Name == node.Attribute[ii-1].Name {
			exceptions.Panicf("MakeNode(%q): attribute %q given more than once", opType, node.Attribute[ii].Name)
		}
	}
	return node
}

// MakeGraph assembles nodes (in execution order), inputs, outputs and initializers into a named graph.
// No validation is done, see CheckGraph.
func MakeGraph(nodes []*protos.NodeProto, name string, inputs, outputs []*protos.ValueInfoProto,
	initializers []*protos.TensorProto) *protos.GraphProto {
	return &protos.GraphProto{
		Name:        name,
		Node:        slices.Clone(nodes),
		Input:       slices.Clone(inputs),
		Output:      slices.Clone(outputs),
		Initializer: slices.Clone(initializers),
	}
}

// ModelOption configures the model envelope created by MakeModel.
type ModelOption func(proto *protos.ModelProto)

// WithProducerName sets the name of the tool that produced the model.
func WithProducerName(name string) ModelOption {
	return func(proto *protos.ModelProto) { proto.ProducerName = name }
}

// WithProducerVersion sets the version of the tool that produced the model.
func WithProducerVersion(version string) ModelOption {
	return func(proto *protos.ModelProto) { proto.ProducerVersion = version }
}

// WithIRVersion overrides DefaultIRVersion.
func WithIRVersion(version int64) ModelOption {
	return func(proto *protos.ModelProto) { proto.IrVersion = version }
}

// WithOpset sets the version of the operator set for domain ("" is the default ONNX domain),
// replacing the version previously imported for that domain.
func WithOpset(domain string, version int64) ModelOption {
	return func(proto *protos.ModelProto) {
		for _, opset := range proto.OpsetImport {
			if opset.Domain == domain {
				opset.Version = version
				return
			}
		}
		proto.OpsetImport = append(proto.OpsetImport, &protos.OperatorSetIdProto{Domain: domain, Version: version})
	}
}

// WithDocString sets the model documentation string.
func WithDocString(doc string) ModelOption {
	return func(proto *protos.ModelProto) { proto.DocString = doc }
}

// WithMetadata adds a key/value metadata property to the model.
func WithMetadata(key, value string) ModelOption {
	return func(proto *protos.ModelProto) {
		proto.MetadataProps = append(proto.MetadataProps, &protos.StringStringEntryProto{Key: key, Value: value})
	}
}

// MakeModel wraps the graph in a model envelope.
// By default, it uses DefaultIRVersion and imports DefaultOpsetVersion of the default operator set.
func MakeModel(graph *protos.GraphProto, options ...ModelOption) *Model {
	m := &Model{}
	m.Proto.IrVersion = DefaultIRVersion
	m.Proto.OpsetImport = []*protos.OperatorSetIdProto{{Domain: "", Version: DefaultOpsetVersion}}
	m.Proto.Graph = graph
	for _, option := range options {
		option(&m.Proto)
	}
	return m
}
