package onnx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelString(t *testing.T) {
	graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4}, IntAttr("groups", 2))
	m := MakeModel(graph, WithProducerName("tester"), WithMetadata("fixture", "true"))
	s := m.String()
	line := func(s string) string { return "\t" + s + "\n" }
	require.Contains(t, s, line("Producer:\ttester / "))
	require.Contains(t, s, line("IR Version:\t3"))
	require.Contains(t, s, line("Operator Sets:\t[v8]"))
	require.Contains(t, s, line(`Graph:	"conv"`))
	require.Contains(t, s, line("# nodes:\t1"))
	require.Contains(t, s, line(`Op types:	[]string{"Conv"}`))
	require.Contains(t, s, line("Inputs:\t[x: FLOAT[1 8 5 5], W: FLOAT[6 4 2 2]]"))
	require.Contains(t, s, line("Outputs:\t[y: FLOAT[1 6 4 4]]"))
	require.Contains(t, s, line("Initializers:\t[W: FLOAT[6 4 2 2]]"))
	require.Contains(t, s, "\tMetadata: [fixture=true]\n")

	require.Contains(t, (&Model{}).String(), "no graph")
}

func TestNodeString(t *testing.T) {
	node := MakeNode("Conv", []string{"x", "W"}, []string{"y"},
		IntsAttr("kernel_shape", 2, 2), IntAttr("groups", 2), StringAttr("auto_pad", "NOTSET"), FloatAttr("alpha", 0.5))
	require.Equal(t, `Conv(x, W) -> y {alpha=0.5, auto_pad="NOTSET", groups=2, kernel_shape=[2 2]}`, NodeString(node))

	node = MakeNode("Relu", []string{"a"}, []string{"b"})
	node.Name = "relu0"
	node.Domain = "custom"
	require.Equal(t, `"relu0": custom.Relu(a) -> b`, NodeString(node))
}

func TestPrintNodes(t *testing.T) {
	graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4}, IntAttr("groups", 2))
	var buf bytes.Buffer
	require.NoError(t, MakeModel(graph).PrintNodes(&buf))
	require.Equal(t, "Conv(x, W) -> y {groups=2}\n", buf.String())
}

func TestWriteGraphviz(t *testing.T) {
	graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4}, IntAttr("groups", 2))
	var buf bytes.Buffer
	require.NoError(t, MakeModel(graph).WriteGraphviz(&buf))
	want := `digraph "conv" {
  "Conv_0" [label="Conv"]
  "x" -> "Conv_0"
  "W" -> "Conv_0"
  "Conv_0" -> "y"
  "y" [shape=rect]
}
`
	require.Equal(t, want, buf.String())

	require.Error(t, (&Model{}).WriteGraphviz(&buf))
}
