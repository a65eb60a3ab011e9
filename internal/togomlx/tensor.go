// Package togomlx contains conversion utilities from ONNX tensors to GoMLX shapes and tensors.
package togomlx

import (
	"bytes"
	"encoding/binary"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/pkg/errors"
)

// DType converts an ONNX data type to a GoMLX data type.
func DType(onnxDType protos.TensorProto_DataType) (dtypes.DType, error) {
	switch onnxDType {
	case protos.TensorProto_FLOAT:
		return dtypes.Float32, nil
	case protos.TensorProto_FLOAT16:
		return dtypes.Float16, nil
	case protos.TensorProto_BFLOAT16:
		return dtypes.BFloat16, nil
	case protos.TensorProto_DOUBLE:
		return dtypes.Float64, nil
	case protos.TensorProto_INT32:
		return dtypes.Int32, nil
	case protos.TensorProto_INT64:
		return dtypes.Int64, nil
	case protos.TensorProto_UINT8:
		return dtypes.Uint8, nil
	case protos.TensorProto_INT8:
		return dtypes.Int8, nil
	case protos.TensorProto_INT16:
		return dtypes.Int16, nil
	case protos.TensorProto_UINT16:
		return dtypes.Uint16, nil
	case protos.TensorProto_UINT32:
		return dtypes.Uint32, nil
	case protos.TensorProto_UINT64:
		return dtypes.Uint64, nil
	case protos.TensorProto_BOOL:
		return dtypes.Bool, nil
	case protos.TensorProto_COMPLEX64:
		return dtypes.Complex64, nil
	case protos.TensorProto_COMPLEX128:
		return dtypes.Complex128, nil
	default:
		return dtypes.InvalidDType, errors.Errorf("unsupported/unknown ONNX data type %v", onnxDType)
	}
}

// Shape converts an ONNX data type and shape to GoMLX shapes.Shape (it includes the dtype).
func Shape(proto *protos.TensorProto) (shape shapes.Shape, err error) {
	if proto == nil {
		err = errors.New("ONNX TensorProto is nil")
		return
	}
	var dtype dtypes.DType
	dtype, err = DType(protos.TensorProto_DataType(proto.DataType))
	if err != nil {
		return
	}
	if proto.Segment != nil {
		err = errors.Errorf("segmented tensor not supported (%v)", proto.Segment)
		return
	}
	dims := make([]int, len(proto.Dims))
	for axis, dim := range proto.Dims {
		if dim < 0 {
			err = errors.Errorf("tensor %q has negative dimension %d on axis #%d", proto.Name, dim, axis)
			return
		}
		dims[axis] = int(dim)
	}
	shape = shapes.Make(dtype, dims...)
	return
}

// ValueInfoShape returns the shape declared by a graph input or output.
// Only tensor types with static dimensions are supported.
func ValueInfoShape(info *protos.ValueInfoProto) (shape shapes.Shape, err error) {
	tensorType := info.GetType().GetTensorType()
	if tensorType == nil {
		err = errors.Errorf("value %q is not a tensor", info.GetName())
		return
	}
	var dtype dtypes.DType
	dtype, err = DType(protos.TensorProto_DataType(tensorType.ElemType))
	if err != nil {
		err = errors.WithMessagef(err, "value %q", info.GetName())
		return
	}
	var dims []int
	if tensorType.Shape != nil {
		dims = make([]int, len(tensorType.Shape.Dim))
		for axis, dim := range tensorType.Shape.Dim {
			if _, ok := dim.Value.(*protos.TensorShapeProto_Dimension_DimValue); !ok {
				err = errors.Errorf("value %q has a symbolic dimension %q on axis #%d", info.GetName(), dim.GetDimParam(), axis)
				return
			}
			dims[axis] = int(dim.GetDimValue())
		}
	}
	shape = shapes.Make(dtype, dims...)
	return
}

// Tensor converts a protos.TensorProto object to a tensors.Tensor object, handling errors and different data types.
func Tensor(proto *protos.TensorProto) (t *tensors.Tensor, err error) {
	var shape shapes.Shape
	shape, err = Shape(proto)
	if err != nil {
		err = errors.WithMessagef(err, "while parsing tensor %q", proto.GetName())
		return
	}
	switch shape.DType {
	case dtypes.Float32:
		return checkAndCreateTensor(proto, proto.FloatData, shape)
	case dtypes.Float64:
		return checkAndCreateTensor(proto, proto.DoubleData, shape)
	case dtypes.Int32:
		return checkAndCreateTensor(proto, proto.Int32Data, shape)
	case dtypes.Int64:
		return checkAndCreateTensor(proto, proto.Int64Data, shape)
	case dtypes.Uint64:
		return checkAndCreateTensor(proto, proto.Uint64Data, shape)
	}
	return nil, errors.Errorf("tensor %q shaped %s has an unsupported data type for conversion", proto.Name, shape)
}

// checkAndCreateTensor implements the generic check and copy of the ONNX proto data to a tensor for the supported data type.
// If the proto stores its values as RawData, they are decoded (little-endian) instead of onnxData.
func checkAndCreateTensor[T float32 | float64 | int32 | int64 | uint64](proto *protos.TensorProto, onnxData []T, shape shapes.Shape) (*tensors.Tensor, error) {
	data := onnxData
	if proto.RawData != nil {
		data = make([]T, shape.Size())
		if binary.Size(data) != len(proto.RawData) {
			return nil, errors.Errorf("tensor %q shaped %s uses %d bytes, but ONNX model provided %d bytes of raw-data!?",
				proto.Name, shape, binary.Size(data), len(proto.RawData))
		}
		if err := binary.Read(bytes.NewReader(proto.RawData), binary.LittleEndian, data); err != nil {
			return nil, errors.Wrapf(err, "failed to decode raw-data of tensor %q", proto.Name)
		}
	}
	if len(data) != shape.Size() {
		return nil, errors.Errorf("tensor %q shaped %s has size %d , but ONNX model provided a slice with %d values!?",
			proto.Name, shape, shape.Size(), len(data))
	}
	return tensors.FromFlatDataAndDimensions(data, shape.Dimensions...), nil
}
