// Package models builds the ONNX test models used as fixtures by the ONNC tutorial labs.
package models

import (
	"github.com/gomlx/exceptions"
	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/onnc/onnc-tutorial-models/onnx"
	"github.com/pkg/errors"
)

const (
	// ProducerName is recorded as the producer of every fixture model.
	ProducerName = "onnc-tutorial"

	// GroupConvName is the graph name of the grouped convolution fixture.
	GroupConvName = "test_group_Conv"

	// GroupConvFileName is where the grouped convolution fixture is written, relative to the working directory.
	GroupConvFileName = GroupConvName + ".onnx"
)

// GroupConv builds a model with a single grouped 2D convolution without padding:
//
//	x: FLOAT[1 8 5 5], W: FLOAT[6 4 2 2] (initialized with ones) -> Conv(groups=2) -> y: FLOAT[1 6 4 4]
//
// dilations are omitted, so they default to [1 1].
func GroupConv() (*onnx.Model, error) {
	x := onnx.MakeTensorValueInfo("x", protos.TensorProto_FLOAT, []int{1, 8, 5, 5})
	w := onnx.MakeTensorValueInfo("W", protos.TensorProto_FLOAT, []int{6, 4, 2, 2})
	y := onnx.MakeTensorValueInfo("y", protos.TensorProto_FLOAT, []int{1, 6, 4, 4})

	weights, err := onnx.OnesTensor("W", 6, 4, 2, 2)
	if err != nil {
		return nil, errors.WithMessagef(err, "building %s", GroupConvName)
	}

	var node *protos.NodeProto
	err = exceptions.TryCatch[error](func() {
		node = onnx.MakeNode("Conv", []string{"x", "W"}, []string{"y"},
			onnx.IntAttr("groups", 2),
			onnx.IntsAttr("kernel_shape", 2, 2),
			onnx.IntsAttr("strides", 1, 1),
			onnx.IntsAttr("pads", 0, 0, 0, 0),
		)
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "building %s", GroupConvName)
	}

	graph := onnx.MakeGraph(
		[]*protos.NodeProto{node},
		GroupConvName,
		[]*protos.ValueInfoProto{x, w},
		[]*protos.ValueInfoProto{y},
		[]*protos.TensorProto{weights},
	)
	return onnx.MakeModel(graph, onnx.WithProducerName(ProducerName)), nil
}

// WriteGroupConv builds the GroupConv model and saves it to filePath, replacing any existing file.
func WriteGroupConv(filePath string) error {
	m, err := GroupConv()
	if err != nil {
		return err
	}
	return m.Save(filePath)
}
