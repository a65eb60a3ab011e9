package onnx

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/pkg/support/sets"
	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/pkg/errors"
)

// This file implements optional checks of a graph. Building and saving a model never calls them.

// Check runs CheckGraph on the model graph, and CheckConv on each of its Conv nodes.
func (m *Model) Check() error {
	graph := m.Graph()
	if err := CheckGraph(graph); err != nil {
		return err
	}
	for _, node := range graph.Node {
		if node.OpType == "Conv" && node.Domain == "" {
			if err := CheckConv(graph, node); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckGraph checks the graph is well-formed:
//
//   - Graph inputs have unique, non-empty names.
//   - Every initializer supplies the value of a declared graph input.
//   - Node inputs are graph inputs or outputs of previous nodes (nodes must be in execution order).
//   - Node outputs are defined only once, and every graph output is produced.
func CheckGraph(graph *protos.GraphProto) error {
	if graph == nil {
		return errors.New("ONNX model has no graph")
	}
	available := sets.Make[string]()
	for ii, input := range graph.Input {
		if input.Name == "" {
			return errors.Errorf("graph %q input #%d has no name", graph.Name, ii)
		}
		if available.Has(input.Name) {
			return errors.Errorf("graph %q declares input %q more than once", graph.Name, input.Name)
		}
		available.Insert(input.Name)
	}

	initialized := sets.Make[string]()
	for _, tensor := range graph.Initializer {
		if !available.Has(tensor.Name) {
			return errors.Errorf("graph %q initializer %q doesn't match any graph input", graph.Name, tensor.Name)
		}
		if initialized.Has(tensor.Name) {
			return errors.Errorf("graph %q has more than one initializer named %q", graph.Name, tensor.Name)
		}
		initialized.Insert(tensor.Name)
	}

	for _, node := range graph.Node {
		for _, name := range node.Input {
			if name == "" {
				// Omitted optional input.
				continue
			}
			if !available.Has(name) {
				return errors.Errorf("graph %q node %s uses %q, which is neither a graph input nor the output of a previous node",
					graph.Name, NodeString(node), name)
			}
		}
		for _, name := range node.Output {
			if name == "" {
				continue
			}
			if available.Has(name) {
				return errors.Errorf("graph %q node %s redefines %q", graph.Name, NodeString(node), name)
			}
			available.Insert(name)
		}
	}

	for _, output := range graph.Output {
		if !available.Has(output.Name) {
			return errors.Errorf("graph %q output %q is not produced by any node", graph.Name, output.Name)
		}
	}
	return nil
}

// CheckConv checks that the declared shapes of a Conv node input (X), weights (W) and output (Y) are consistent
// with its attributes:
//
//   - X channels == group * W input channels, and W output channels is divisible by group.
//   - Y has the batch size of X and W output channels.
//   - kernel_shape, if given, matches W spatial dimensions.
//   - Each Y spatial dimension is floor((in + pad_begin + pad_end - dilation*(kernel-1) - 1) / stride) + 1.
//
// The number of groups is read from the "group" attribute, or from "groups" if "group" is not set.
func CheckConv(graph *protos.GraphProto, node *protos.NodeProto) error {
	if node.OpType != "Conv" {
		return errors.Errorf("CheckConv given a %q node", node.OpType)
	}
	if len(node.Input) < 2 || len(node.Output) < 1 {
		return errors.Errorf("Conv node %s requires at least 2 inputs and 1 output", NodeString(node))
	}
	err := exceptions.TryCatch[error](func() { checkConv(graph, node) })
	if err != nil {
		return errors.WithMessagef(err, "in graph %q", graph.GetName())
	}
	return nil
}

func checkConv(graph *protos.GraphProto, node *protos.NodeProto) {
	x := staticDims(graph, node.Input[0])
	w := staticDims(graph, node.Input[1])
	y := staticDims(graph, node.Output[0])
	if len(x) < 3 || len(w) != len(x) || len(y) != len(x) {
		exceptions.Panicf("%s: X%v, W%v and Y%v must have the same rank, at least 3", NodeString(node), x, w, y)
	}
	numSpatial := len(x) - 2

	group := convGroup(node)
	if group <= 0 {
		exceptions.Panicf("%s: group must be positive, got %d", NodeString(node), group)
	}
	if x[1] != group*w[1] {
		exceptions.Panicf("%s: X has %d channels, but group (%d) * W input channels (%d) = %d",
			NodeString(node), x[1], group, w[1], group*w[1])
	}
	if w[0]%group != 0 {
		exceptions.Panicf("%s: W output channels (%d) not divisible by group (%d)", NodeString(node), w[0], group)
	}
	if y[0] != x[0] {
		exceptions.Panicf("%s: Y batch size %d differs from X batch size %d", NodeString(node), y[0], x[0])
	}
	if y[1] != w[0] {
		exceptions.Panicf("%s: Y has %d channels, but W has %d output channels", NodeString(node), y[1], w[0])
	}

	kernel := getIntsAttrOr(node, "kernel_shape", w[2:])
	if !slices.Equal(kernel, w[2:]) {
		exceptions.Panicf("%s: kernel_shape %v doesn't match W spatial dimensions %v", NodeString(node), kernel, w[2:])
	}
	strides := getIntsAttrOr(node, "strides", repeatInt(1, numSpatial))
	dilations := getIntsAttrOr(node, "dilations", repeatInt(1, numSpatial))
	pads := getIntsAttrOr(node, "pads", repeatInt(0, 2*numSpatial))
	if len(strides) != numSpatial || len(dilations) != numSpatial || len(pads) != 2*numSpatial {
		exceptions.Panicf("%s: strides %v, dilations %v or pads %v don't match %d spatial axes",
			NodeString(node), strides, dilations, pads, numSpatial)
	}

	autoPad := getStringAttrOr(node, "auto_pad", "NOTSET")
	for axis := range numSpatial {
		if strides[axis] <= 0 || dilations[axis] <= 0 {
			exceptions.Panicf("%s: strides %v and dilations %v must be positive", NodeString(node), strides, dilations)
		}
		in := x[2+axis]
		var want int
		switch autoPad {
		case "NOTSET", "":
			effectiveKernel := dilations[axis]*(kernel[axis]-1) + 1
			want = (in+pads[axis]+pads[axis+numSpatial]-effectiveKernel)/strides[axis] + 1
		case "VALID":
			effectiveKernel := dilations[axis]*(kernel[axis]-1) + 1
			want = (in-effectiveKernel)/strides[axis] + 1
		case "SAME_UPPER", "SAME_LOWER":
			want = (in + strides[axis] - 1) / strides[axis]
		default:
			exceptions.Panicf("%s: unknown auto_pad %q", NodeString(node), autoPad)
		}
		if y[2+axis] != want {
			exceptions.Panicf("%s: Y spatial axis #%d has dimension %d, but X%v, W%v and the attributes yield %d",
				NodeString(node), axis, y[2+axis], x, w, want)
		}
	}
}

// convGroup returns the number of groups of a Conv node.
func convGroup(node *protos.NodeProto) int {
	if getNodeAttr(node, "group", false) != nil {
		return getIntAttrOr(node, "group", 1)
	}
	return getIntAttrOr(node, "groups", 1)
}

// staticDims returns the static dimensions declared for the named value: as a graph input, output or
// value info, or else as an initializer.
// It panics if the value is not declared or has symbolic dimensions.
func staticDims(graph *protos.GraphProto, name string) []int {
	for _, values := range [][]*protos.ValueInfoProto{graph.Input, graph.Output, graph.ValueInfo} {
		for _, value := range values {
			if value.Name != name {
				continue
			}
			shape := value.GetType().GetTensorType().GetShape()
			if shape == nil {
				exceptions.Panicf("value %q has no tensor shape declared", name)
			}
			dims := make([]int, len(shape.Dim))
			for axis, dim := range shape.Dim {
				if _, ok := dim.Value.(*protos.TensorShapeProto_Dimension_DimValue); !ok {
					exceptions.Panicf("value %q has a symbolic dimension %q on axis #%d", name, dim.GetDimParam(), axis)
				}
				dims[axis] = int(dim.GetDimValue())
			}
			return dims
		}
	}
	for _, tensor := range graph.Initializer {
		if tensor.Name == name {
			return sliceMap(tensor.Dims, func(d int64) int { return int(d) })
		}
	}
	exceptions.Panicf("no shape declared for value %q", name)
	panic(nil) // lint.
}

func repeatInt(value, n int) []int {
	values := make([]int, n)
	for ii := range values {
		values[ii] = value
	}
	return values
}
