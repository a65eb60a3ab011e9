package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/janpfeifer/must"
	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/onnc/onnc-tutorial-models/internal/togomlx"
	"github.com/onnc/onnc-tutorial-models/onnx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAndRead writes the fixture to dir and parses it back.
func writeAndRead(t *testing.T, dir string) (*onnx.Model, []byte) {
	filePath := filepath.Join(dir, GroupConvFileName)
	require.NoError(t, WriteGroupConv(filePath))
	contents := must.M1(os.ReadFile(filePath))
	require.NotEmpty(t, contents)
	m, err := onnx.ReadFile(filePath)
	require.NoError(t, err)
	return m, contents
}

func TestGroupConvFile(t *testing.T) {
	m, _ := writeAndRead(t, t.TempDir())
	require.Equal(t, ProducerName, m.Proto.ProducerName)
	require.Equal(t, int64(onnx.DefaultIRVersion), m.Proto.IrVersion)

	graph := m.Graph()
	require.NotNil(t, graph)
	require.Equal(t, GroupConvName, graph.Name)

	t.Run("Node", func(t *testing.T) {
		require.Len(t, graph.Node, 1)
		node := graph.Node[0]
		require.Equal(t, "Conv", node.OpType)
		require.Equal(t, []string{"x", "W"}, node.Input)
		require.Equal(t, []string{"y"}, node.Output)

		attrs := make(map[string]*protos.AttributeProto)
		for _, attr := range node.Attribute {
			attrs[attr.Name] = attr
		}
		require.Len(t, attrs, 4)
		require.Equal(t, protos.AttributeProto_INT, attrs["groups"].Type)
		require.Equal(t, int64(2), attrs["groups"].I)
		for name, want := range map[string][]int64{
			"kernel_shape": {2, 2},
			"strides":      {1, 1},
			"pads":         {0, 0, 0, 0},
		} {
			require.Equal(t, protos.AttributeProto_INTS, attrs[name].Type, "attribute %q", name)
			require.Equal(t, want, attrs[name].Ints, "attribute %q", name)
		}
		require.NotContains(t, attrs, "dilations")
	})

	t.Run("InputsAndOutputs", func(t *testing.T) {
		require.Equal(t, []string{"x", "W"}, m.Inputs())
		require.Equal(t, []string{"y"}, m.Outputs())
		wantDims := map[string][]int{
			"x": {1, 8, 5, 5},
			"W": {6, 4, 2, 2},
			"y": {1, 6, 4, 4},
		}
		for _, value := range append(graph.Input, graph.Output...) {
			shape, err := togomlx.ValueInfoShape(value)
			require.NoError(t, err)
			assert.Equal(t, dtypes.Float32, shape.DType, "value %q", value.Name)
			assert.Equal(t, wantDims[value.Name], shape.Dimensions, "value %q", value.Name)
		}
	})

	t.Run("Initializer", func(t *testing.T) {
		require.Equal(t, []string{"W"}, m.Variables())
		tensor, err := togomlx.Tensor(m.Initializer("W"))
		require.NoError(t, err)
		require.Equal(t, dtypes.Float32, tensor.Shape().DType)
		require.Equal(t, []int{6, 4, 2, 2}, tensor.Shape().Dimensions)
		values := tensors.MustCopyFlatData[float32](tensor)
		require.Len(t, values, 96)
		for ii, v := range values {
			require.Equal(t, float32(1), v, "element #%d", ii)
		}
	})

	t.Run("Check", func(t *testing.T) {
		require.NoError(t, m.Check())
	})
}

func TestGroupConvIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first, firstContents := writeAndRead(t, dir)
	second, secondContents := writeAndRead(t, dir)
	require.Equal(t, firstContents, secondContents)
	require.Equal(t, first.Proto, second.Proto)

	// Deleting the file and writing again yields the same file.
	require.NoError(t, os.Remove(filepath.Join(dir, GroupConvFileName)))
	_, thirdContents := writeAndRead(t, dir)
	require.Equal(t, firstContents, thirdContents)

	// Same bytes on a separate directory.
	_, otherContents := writeAndRead(t, t.TempDir())
	require.Equal(t, firstContents, otherContents)
}

func TestGroupConvWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, WriteGroupConv(GroupConvFileName))
	info, err := os.Stat(filepath.Join(dir, "test_group_Conv.onnx"))
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestGroupConvModel(t *testing.T) {
	m, err := GroupConv()
	require.NoError(t, err)
	require.Equal(t,
		`Conv(x, W) -> y {groups=2, kernel_shape=[2 2], pads=[0 0 0 0], strides=[1 1]}`,
		onnx.NodeString(m.Graph().Node[0]))
	require.NoError(t, onnx.CheckGraph(m.Graph()))
}
