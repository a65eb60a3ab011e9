package onnx

import (
	"testing"

	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/stretchr/testify/require"
)

func TestCheckGraph(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4}, IntAttr("group", 2))
		require.NoError(t, CheckGraph(graph))
	})

	t.Run("NilGraph", func(t *testing.T) {
		require.ErrorContains(t, CheckGraph(nil), "no graph")
	})

	t.Run("InitializerWithoutInput", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4})
		graph.Input = graph.Input[:1]
		require.ErrorContains(t, CheckGraph(graph), `initializer "W" doesn't match any graph input`)
	})

	t.Run("DuplicateInput", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4})
		graph.Input = append(graph.Input, graph.Input[0])
		require.ErrorContains(t, CheckGraph(graph), "more than once")
	})

	t.Run("UnknownNodeInput", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4})
		graph.Node[0].Input[0] = "z"
		require.ErrorContains(t, CheckGraph(graph), `uses "z"`)
	})

	t.Run("NodesOutOfOrder", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4})
		graph.Node[0].Output[0] = "conv_out"
		relu := MakeNode("Relu", []string{"conv_out"}, []string{"y"})
		graph.Node = []*protos.NodeProto{relu, graph.Node[0]}
		require.ErrorContains(t, CheckGraph(graph), `uses "conv_out"`)
		graph.Node[0], graph.Node[1] = graph.Node[1], graph.Node[0]
		require.NoError(t, CheckGraph(graph))
	})

	t.Run("OutputNotProduced", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4})
		graph.Output[0].Name = "out"
		require.ErrorContains(t, CheckGraph(graph), `output "out" is not produced`)
	})

	t.Run("OptionalInputOmitted", func(t *testing.T) {
		graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4})
		graph.Node[0].Input = append(graph.Node[0].Input, "")
		require.NoError(t, CheckGraph(graph))
	})
}

func TestCheckConv(t *testing.T) {
	x, w, y := []int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4}
	groupConvAttrs := []*protos.AttributeProto{
		IntsAttr("kernel_shape", 2, 2),
		IntsAttr("strides", 1, 1),
		IntsAttr("pads", 0, 0, 0, 0),
	}

	t.Run("GroupAttribute", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, append(groupConvAttrs, IntAttr("group", 2))...)
		require.NoError(t, CheckConv(graph, graph.Node[0]))
	})

	t.Run("GroupsAttribute", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, append(groupConvAttrs, IntAttr("groups", 2))...)
		require.NoError(t, CheckConv(graph, graph.Node[0]))
	})

	t.Run("GroupTakesPrecedence", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, IntAttr("group", 1), IntAttr("groups", 2))
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "X has 8 channels")
	})

	t.Run("MissingGroup", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, groupConvAttrs...)
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "X has 8 channels")
	})

	t.Run("OutputChannelsNotDivisible", func(t *testing.T) {
		graph := groupConvGraph(x, []int{5, 4, 2, 2}, []int{1, 5, 4, 4}, IntAttr("group", 2))
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "not divisible")
	})

	t.Run("WrongOutputChannels", func(t *testing.T) {
		graph := groupConvGraph(x, w, []int{1, 4, 4, 4}, IntAttr("group", 2))
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "Y has 4 channels")
	})

	t.Run("WrongSpatialSize", func(t *testing.T) {
		graph := groupConvGraph(x, w, []int{1, 6, 5, 5}, IntAttr("group", 2))
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "Y spatial axis #0")
	})

	t.Run("PaddingStridesDilations", func(t *testing.T) {
		// (5 + 1 + 1 - 2*(2-1) - 1) / 2 + 1 = 3
		graph := groupConvGraph(x, w, []int{1, 6, 3, 3},
			IntAttr("group", 2), IntsAttr("pads", 1, 1, 1, 1), IntsAttr("strides", 2, 2), IntsAttr("dilations", 2, 2))
		require.NoError(t, CheckConv(graph, graph.Node[0]))
	})

	t.Run("AutoPadSame", func(t *testing.T) {
		graph := groupConvGraph(x, w, []int{1, 6, 5, 5}, IntAttr("group", 2), StringAttr("auto_pad", "SAME_UPPER"))
		require.NoError(t, CheckConv(graph, graph.Node[0]))
	})

	t.Run("KernelShapeMismatch", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, IntAttr("group", 2), IntsAttr("kernel_shape", 3, 3))
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "kernel_shape")
	})

	t.Run("WrongAttributeType", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, IntAttr("group", 2), IntAttr("strides", 1))
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "unsupported ONNX attribute")
	})

	t.Run("SymbolicDimension", func(t *testing.T) {
		graph := groupConvGraph(x, w, y, IntAttr("group", 2))
		graph.Input[0].Type.GetTensorType().Shape.Dim[0].Value = &protos.TensorShapeProto_Dimension_DimParam{DimParam: "batch"}
		require.ErrorContains(t, CheckConv(graph, graph.Node[0]), "symbolic dimension")
	})

	t.Run("NotConv", func(t *testing.T) {
		graph := groupConvGraph(x, w, y)
		require.Error(t, CheckConv(graph, MakeNode("Relu", []string{"x"}, []string{"y"})))
	})

	t.Run("ModelCheck", func(t *testing.T) {
		require.NoError(t, MakeModel(groupConvGraph(x, w, y, IntAttr("groups", 2))).Check())
		require.Error(t, MakeModel(groupConvGraph(x, w, y)).Check())
		require.Error(t, (&Model{}).Check())
	})
}
