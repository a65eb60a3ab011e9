package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReadFile(t *testing.T) {
	graph := groupConvGraph([]int{1, 8, 5, 5}, []int{6, 4, 2, 2}, []int{1, 6, 4, 4}, IntAttr("groups", 2))
	m := MakeModel(graph, WithProducerName("tester"))
	filePath := filepath.Join(t.TempDir(), "model.onnx")

	// Saving overwrites existing files.
	require.NoError(t, os.WriteFile(filePath, []byte("previous contents, longer than nothing"), 0o644))
	require.NoError(t, m.Save(filePath))
	contents := must.M1(os.ReadFile(filePath))
	require.Equal(t, must.M1(m.Marshal()), contents)

	loaded, err := ReadFile(filePath)
	require.NoError(t, err)
	require.Equal(t, m.Proto, loaded.Proto)
	require.Equal(t, []string{"x", "W"}, loaded.Inputs())
	require.Equal(t, []string{"y"}, loaded.Outputs())
	require.Equal(t, []string{"W"}, loaded.Variables())
	require.NotNil(t, loaded.Initializer("W"))
	require.Nil(t, loaded.Initializer("x"))
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.onnx"))
	require.ErrorContains(t, err, "failed to read ONNX model file")

	garbage := filepath.Join(t.TempDir(), "garbage.onnx")
	require.NoError(t, os.WriteFile(garbage, []byte{0x0a, 0xff, 0xff}, 0o644))
	_, err = ReadFile(garbage)
	require.ErrorContains(t, err, "failed to parse ONNX model proto")
}

func TestSaveError(t *testing.T) {
	m := MakeModel(groupConvGraph([]int{1, 2, 3, 3}, []int{2, 2, 1, 1}, []int{1, 2, 3, 3}))
	err := m.Save(filepath.Join(t.TempDir(), "no-such-dir", "model.onnx"))
	require.ErrorContains(t, err, "failed to write ONNX model")
}

func TestEmptyModel(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	require.Nil(t, m.Graph())
	require.Empty(t, m.Inputs())
	require.Empty(t, m.Outputs())
	require.Empty(t, m.Variables())
}
