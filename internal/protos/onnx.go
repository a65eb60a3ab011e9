// Package protos holds the subset of the ONNX IR (onnx.proto) used to build and inspect models,
// along with its protobuf wire codec.
//
// Type and field names follow what protoc-gen-go generates for onnx.proto, so code written against
// these types reads the same as code using the generated bindings.
package protos

import "fmt"

// TensorProto_DataType is the element type of a tensor (onnx.proto TensorProto.DataType).
type TensorProto_DataType int32

const (
	TensorProto_UNDEFINED  TensorProto_DataType = 0
	TensorProto_FLOAT      TensorProto_DataType = 1
	TensorProto_UINT8      TensorProto_DataType = 2
	TensorProto_INT8       TensorProto_DataType = 3
	TensorProto_UINT16     TensorProto_DataType = 4
	TensorProto_INT16      TensorProto_DataType = 5
	TensorProto_INT32      TensorProto_DataType = 6
	TensorProto_INT64      TensorProto_DataType = 7
	TensorProto_STRING     TensorProto_DataType = 8
	TensorProto_BOOL       TensorProto_DataType = 9
	TensorProto_FLOAT16    TensorProto_DataType = 10
	TensorProto_DOUBLE     TensorProto_DataType = 11
	TensorProto_UINT32     TensorProto_DataType = 12
	TensorProto_UINT64     TensorProto_DataType = 13
	TensorProto_COMPLEX64  TensorProto_DataType = 14
	TensorProto_COMPLEX128 TensorProto_DataType = 15
	TensorProto_BFLOAT16   TensorProto_DataType = 16
)

var tensorDataTypeNames = map[TensorProto_DataType]string{
	TensorProto_UNDEFINED:  "UNDEFINED",
	TensorProto_FLOAT:      "FLOAT",
	TensorProto_UINT8:      "UINT8",
	TensorProto_INT8:       "INT8",
	TensorProto_UINT16:     "UINT16",
	TensorProto_INT16:      "INT16",
	TensorProto_INT32:      "INT32",
	TensorProto_INT64:      "INT64",
	TensorProto_STRING:     "STRING",
	TensorProto_BOOL:       "BOOL",
	TensorProto_FLOAT16:    "FLOAT16",
	TensorProto_DOUBLE:     "DOUBLE",
	TensorProto_UINT32:     "UINT32",
	TensorProto_UINT64:     "UINT64",
	TensorProto_COMPLEX64:  "COMPLEX64",
	TensorProto_COMPLEX128: "COMPLEX128",
	TensorProto_BFLOAT16:   "BFLOAT16",
}

func (x TensorProto_DataType) String() string {
	if name, found := tensorDataTypeNames[x]; found {
		return name
	}
	return fmt.Sprintf("TensorProto_DataType(%d)", int32(x))
}

// AttributeProto_AttributeType tells which of the AttributeProto value fields is in use.
type AttributeProto_AttributeType int32

const (
	AttributeProto_UNDEFINED      AttributeProto_AttributeType = 0
	AttributeProto_FLOAT          AttributeProto_AttributeType = 1
	AttributeProto_INT            AttributeProto_AttributeType = 2
	AttributeProto_STRING         AttributeProto_AttributeType = 3
	AttributeProto_TENSOR         AttributeProto_AttributeType = 4
	AttributeProto_GRAPH          AttributeProto_AttributeType = 5
	AttributeProto_FLOATS         AttributeProto_AttributeType = 6
	AttributeProto_INTS           AttributeProto_AttributeType = 7
	AttributeProto_STRINGS        AttributeProto_AttributeType = 8
	AttributeProto_TENSORS        AttributeProto_AttributeType = 9
	AttributeProto_GRAPHS         AttributeProto_AttributeType = 10
	AttributeProto_SPARSE_TENSOR  AttributeProto_AttributeType = 11
	AttributeProto_SPARSE_TENSORS AttributeProto_AttributeType = 12
	AttributeProto_TYPE_PROTO     AttributeProto_AttributeType = 13
	AttributeProto_TYPE_PROTOS    AttributeProto_AttributeType = 14
)

var attributeTypeNames = map[AttributeProto_AttributeType]string{
	AttributeProto_UNDEFINED:      "UNDEFINED",
	AttributeProto_FLOAT:          "FLOAT",
	AttributeProto_INT:            "INT",
	AttributeProto_STRING:         "STRING",
	AttributeProto_TENSOR:         "TENSOR",
	AttributeProto_GRAPH:          "GRAPH",
	AttributeProto_FLOATS:         "FLOATS",
	AttributeProto_INTS:           "INTS",
	AttributeProto_STRINGS:        "STRINGS",
	AttributeProto_TENSORS:        "TENSORS",
	AttributeProto_GRAPHS:         "GRAPHS",
	AttributeProto_SPARSE_TENSOR:  "SPARSE_TENSOR",
	AttributeProto_SPARSE_TENSORS: "SPARSE_TENSORS",
	AttributeProto_TYPE_PROTO:     "TYPE_PROTO",
	AttributeProto_TYPE_PROTOS:    "TYPE_PROTOS",
}

func (x AttributeProto_AttributeType) String() string {
	if name, found := attributeTypeNames[x]; found {
		return name
	}
	return fmt.Sprintf("AttributeProto_AttributeType(%d)", int32(x))
}

// ModelProto is the top-level ONNX container: a graph plus metadata.
type ModelProto struct {
	IrVersion       int64
	OpsetImport     []*OperatorSetIdProto
	ProducerName    string
	ProducerVersion string
	Domain          string
	ModelVersion    int64
	DocString       string
	Graph           *GraphProto
	MetadataProps   []*StringStringEntryProto
}

func (x *ModelProto) GetGraph() *GraphProto {
	if x == nil {
		return nil
	}
	return x.Graph
}

// OperatorSetIdProto identifies an operator set (domain and version) the model depends on.
type OperatorSetIdProto struct {
	Domain  string
	Version int64
}

// StringStringEntryProto is a key/value metadata entry.
type StringStringEntryProto struct {
	Key   string
	Value string
}

// GraphProto is a named list of nodes (in topological order) with its inputs, outputs and
// initializers.
type GraphProto struct {
	Node        []*NodeProto
	Name        string
	Initializer []*TensorProto
	DocString   string
	Input       []*ValueInfoProto
	Output      []*ValueInfoProto
	ValueInfo   []*ValueInfoProto
}

// NodeProto is one operator invocation.
type NodeProto struct {
	Input     []string
	Output    []string
	Name      string
	OpType    string
	Domain    string
	Attribute []*AttributeProto
	DocString string
}

func (x *NodeProto) GetOpType() string {
	if x == nil {
		return ""
	}
	return x.OpType
}

// AttributeProto is a named attribute value of a node. Type selects which value field is used.
type AttributeProto struct {
	Name        string
	RefAttrName string
	DocString   string
	Type        AttributeProto_AttributeType
	F           float32
	I           int64
	S           []byte
	T           *TensorProto
	G           *GraphProto
	Floats      []float32
	Ints        []int64
	Strings     [][]byte
	Tensors     []*TensorProto
	Graphs      []*GraphProto
}

// ValueInfoProto declares the name and type of a value: graph inputs and outputs mostly.
type ValueInfoProto struct {
	Name      string
	Type      *TypeProto
	DocString string
}

func (x *ValueInfoProto) GetType() *TypeProto {
	if x == nil {
		return nil
	}
	return x.Type
}

// TypeProto is the type of a value. Only tensor types are represented here; other kinds
// (sequences, maps, optionals) are skipped when decoding.
type TypeProto struct {
	Value      isTypeProto_Value
	Denotation string
}

type isTypeProto_Value interface {
	isTypeProto_Value()
}

// TypeProto_TensorType is the tensor_type case of TypeProto.Value.
type TypeProto_TensorType struct {
	TensorType *TypeProto_Tensor
}

func (*TypeProto_TensorType) isTypeProto_Value() {}

func (x *TypeProto) GetTensorType() *TypeProto_Tensor {
	if x == nil {
		return nil
	}
	if v, ok := x.Value.(*TypeProto_TensorType); ok {
		return v.TensorType
	}
	return nil
}

// TypeProto_Tensor is a tensor type: element type and (optional) shape.
type TypeProto_Tensor struct {
	ElemType int32
	Shape    *TensorShapeProto
}

func (x *TypeProto_Tensor) GetShape() *TensorShapeProto {
	if x == nil {
		return nil
	}
	return x.Shape
}

// TensorShapeProto lists the dimensions of a tensor type.
type TensorShapeProto struct {
	Dim []*TensorShapeProto_Dimension
}

// TensorShapeProto_Dimension is either a static value or a symbolic parameter name.
type TensorShapeProto_Dimension struct {
	Value      isTensorShapeProto_Dimension_Value
	Denotation string
}

type isTensorShapeProto_Dimension_Value interface {
	isTensorShapeProto_Dimension_Value()
}

type TensorShapeProto_Dimension_DimValue struct {
	DimValue int64
}

type TensorShapeProto_Dimension_DimParam struct {
	DimParam string
}

func (*TensorShapeProto_Dimension_DimValue) isTensorShapeProto_Dimension_Value() {}
func (*TensorShapeProto_Dimension_DimParam) isTensorShapeProto_Dimension_Value() {}

func (x *TensorShapeProto_Dimension) GetDimValue() int64 {
	if x == nil {
		return 0
	}
	if v, ok := x.Value.(*TensorShapeProto_Dimension_DimValue); ok {
		return v.DimValue
	}
	return 0
}

func (x *TensorShapeProto_Dimension) GetDimParam() string {
	if x == nil {
		return ""
	}
	if v, ok := x.Value.(*TensorShapeProto_Dimension_DimParam); ok {
		return v.DimParam
	}
	return ""
}

// TensorProto is a materialized tensor: initializers and tensor attributes.
//
// Values are stored in exactly one of the typed data fields or in RawData (little-endian).
type TensorProto struct {
	Dims       []int64
	DataType   int32
	Segment    *TensorProto_Segment
	FloatData  []float32
	Int32Data  []int32
	StringData [][]byte
	Int64Data  []int64
	Name       string
	RawData    []byte
	DoubleData []float64
	Uint64Data []uint64
	DocString  string
}

// TensorProto_Segment marks a tensor as a chunk [Begin, End) of a larger one.
type TensorProto_Segment struct {
	Begin int64
	End   int64
}

func (x *ValueInfoProto) GetName() string {
	if x == nil {
		return ""
	}
	return x.Name
}

func (x *TensorProto) GetName() string {
	if x == nil {
		return ""
	}
	return x.Name
}

func (x *GraphProto) GetName() string {
	if x == nil {
		return ""
	}
	return x.Name
}

func (x *GraphProto) GetNode() []*NodeProto {
	if x == nil {
		return nil
	}
	return x.Node
}

func (x *GraphProto) GetInitializer() []*TensorProto {
	if x == nil {
		return nil
	}
	return x.Initializer
}

func (x *GraphProto) GetInput() []*ValueInfoProto {
	if x == nil {
		return nil
	}
	return x.Input
}

func (x *GraphProto) GetOutput() []*ValueInfoProto {
	if x == nil {
		return nil
	}
	return x.Output
}

func (x *NodeProto) GetInput() []string {
	if x == nil {
		return nil
	}
	return x.Input
}

func (x *NodeProto) GetOutput() []string {
	if x == nil {
		return nil
	}
	return x.Output
}
