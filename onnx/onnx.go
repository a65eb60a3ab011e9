// Package onnx builds, reads and writes ONNX models.
//
//   - MakeModel, MakeGraph, MakeNode, MakeTensorValueInfo, MakeTensor: build a model in memory, the same way
//     the Python onnx.helper module does.
//   - Model.Save / Model.Marshal: serialize a model in the ONNX protobuf format.
//   - Parse / ReadFile: read a serialized ONNX ModelProto back into a Model.
//   - Model.Check: optional structural checks of the graph, plus shape checks of Conv nodes.
package onnx

import (
	"io"
	"os"

	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
	"k8s.io/klog/v2"
)

// Model represents an ONNX model, either built with MakeModel or parsed from a file.
type Model struct {
	Proto protos.ModelProto
}

// Parse parses a serialized ONNX ModelProto.
func Parse(contents []byte) (*Model, error) {
	m := &Model{}
	err := protos.Unmarshal(contents, &m.Proto)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse ONNX model proto")
	}
	return m, nil
}

// ReadFile memory-maps the ONNX model file and parses it.
func ReadFile(filePath string) (*Model, error) {
	reader, err := mmap.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read ONNX model file in %s", filePath)
	}
	defer reader.Close()

	// Parsed messages must not keep references to the mapping, so the contents are copied out.
	contents := make([]byte, reader.Len())
	n, err := reader.ReadAt(contents, 0)
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "failed to read ONNX model file in %s", filePath)
	}
	if n != len(contents) {
		return nil, errors.Errorf("read %d bytes but expected %d from ONNX model file %s", n, len(contents), filePath)
	}
	m, err := Parse(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "ONNX model file %s", filePath)
	}
	return m, nil
}

// Marshal returns the serialized ONNX ModelProto.
// Serialization is deterministic: the same model always yields the same bytes.
func (m *Model) Marshal() ([]byte, error) {
	contents, err := protos.Marshal(&m.Proto)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to serialize ONNX model proto")
	}
	return contents, nil
}

// Save serializes the model and writes it to filePath, replacing any existing file.
func (m *Model) Save(filePath string) error {
	contents, err := m.Marshal()
	if err != nil {
		return err
	}
	if err = os.WriteFile(filePath, contents, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write ONNX model to %s", filePath)
	}
	klog.V(1).Infof("wrote ONNX model %q (%d bytes) to %s", m.Proto.GetGraph().GetName(), len(contents), filePath)
	return nil
}

// Graph returns the main graph of the model, or nil if it has none.
func (m *Model) Graph() *protos.GraphProto {
	return m.Proto.GetGraph()
}

// Inputs returns the names of the graph inputs, including the ones fed by initializers.
func (m *Model) Inputs() []string {
	return valueNames(m.Graph().GetInput())
}

// Outputs returns the names of the graph outputs.
func (m *Model) Outputs() []string {
	return valueNames(m.Graph().GetOutput())
}

// Variables returns the names of the initializers (constant tensors) of the graph.
func (m *Model) Variables() []string {
	initializers := m.Graph().GetInitializer()
	names := make([]string, 0, len(initializers))
	for _, tensor := range initializers {
		names = append(names, tensor.Name)
	}
	return names
}

// Initializer returns the initializer with the given name, or nil if there is none.
func (m *Model) Initializer(name string) *protos.TensorProto {
	for _, tensor := range m.Graph().GetInitializer() {
		if tensor.Name == name {
			return tensor
		}
	}
	return nil
}

func valueNames(values []*protos.ValueInfoProto) []string {
	names := make([]string, 0, len(values))
	for _, value := range values {
		names = append(names, value.Name)
	}
	return names
}
