package onnx

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gomlx/gomlx/pkg/support/sets"
	"github.com/onnc/onnc-tutorial-models/internal/protos"
	"github.com/pkg/errors"
)

// String implements fmt.Stringer, and pretty prints model information.
func (m *Model) String() string {
	var buf bytes.Buffer
	// w writes lines to the buffer.
	w := func(format string, args ...any) {
		if len(args) == 0 {
			buf.WriteString(format)
		} else {
			buf.WriteString(fmt.Sprintf(format, args...))
		}
	}
	w("ONNX Model:\n")
	if m.Proto.DocString != "" {
		w("%s\n", m.Proto.DocString)
	}
	if m.Proto.ModelVersion != 0 {
		w("\tVersion:\t%d\n", m.Proto.ModelVersion)
	}
	if m.Proto.ProducerName != "" {
		w("\tProducer:\t%s / %s\n", m.Proto.ProducerName, m.Proto.ProducerVersion)
	}
	w("\tIR Version:\t%d\n", m.Proto.IrVersion)
	w("\tOperator Sets:\t[")
	for ii, opSetId := range m.Proto.OpsetImport {
		if ii > 0 {
			w(", ")
		}
		if opSetId.Domain != "" {
			w("v%d (%s)", opSetId.Version, opSetId.Domain)
		} else {
			w("v%d", opSetId.Version)
		}
	}
	w("]\n")

	graph := m.Graph()
	if graph == nil {
		w("\tno graph\n")
		return buf.String()
	}
	w("\tGraph:\t%q\n", graph.Name)
	w("\t# nodes:\t%d\n", len(graph.Node))
	opTypesSet := sets.Make[string]()
	for _, n := range graph.Node {
		opTypesSet.Insert(n.GetOpType())
	}
	w("\tOp types:\t%#v\n", slices.Sorted(maps.Keys(opTypesSet)))
	w("\tInputs:\t%s\n", valuesString(graph.Input))
	w("\tOutputs:\t%s\n", valuesString(graph.Output))
	if len(graph.Initializer) > 0 {
		parts := make([]string, 0, len(graph.Initializer))
		for _, tensor := range graph.Initializer {
			parts = append(parts, fmt.Sprintf("%s: %s%v", tensor.Name, protos.TensorProto_DataType(tensor.DataType), tensor.Dims))
		}
		w("\tInitializers:\t[%s]\n", strings.Join(parts, ", "))
	}

	if len(m.Proto.MetadataProps) > 0 {
		w("\tMetadata: [")
		for ii, prop := range m.Proto.MetadataProps {
			if ii > 0 {
				w(", ")
			}
			w("%s=%s", prop.Key, prop.Value)
		}
		w("]\n")
	}
	return buf.String()
}

// valuesString lists graph values with their types, e.g. "[x: FLOAT[1 8 5 5], y: FLOAT[1 6 4 4]]".
func valuesString(values []*protos.ValueInfoProto) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprintf("%s: %s", value.Name, typeString(value.Type)))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func typeString(t *protos.TypeProto) string {
	tensorType := t.GetTensorType()
	if tensorType == nil {
		return "?"
	}
	dims := make([]string, 0)
	if tensorType.Shape != nil {
		for _, dim := range tensorType.Shape.Dim {
			if param := dim.GetDimParam(); param != "" {
				dims = append(dims, param)
			} else {
				dims = append(dims, fmt.Sprint(dim.GetDimValue()))
			}
		}
	}
	return fmt.Sprintf("%s[%s]", protos.TensorProto_DataType(tensorType.ElemType), strings.Join(dims, " "))
}

// NodeString returns a one-line description of the node, e.g. `Conv(x, W) -> y {groups=2, strides=[1 1]}`.
func NodeString(node *protos.NodeProto) string {
	var buf strings.Builder
	if node.Name != "" {
		fmt.Fprintf(&buf, "%q: ", node.Name)
	}
	if node.Domain != "" {
		buf.WriteString(node.Domain)
		buf.WriteString(".")
	}
	fmt.Fprintf(&buf, "%s(%s) -> %s", node.OpType, strings.Join(node.Input, ", "), strings.Join(node.Output, ", "))
	if len(node.Attribute) > 0 {
		attrs := make([]string, 0, len(node.Attribute))
		for _, attr := range node.Attribute {
			attrs = append(attrs, attr.Name+"="+attributeValueString(attr))
		}
		fmt.Fprintf(&buf, " {%s}", strings.Join(attrs, ", "))
	}
	return buf.String()
}

func attributeValueString(attr *protos.AttributeProto) string {
	switch attr.Type {
	case protos.AttributeProto_FLOAT:
		return fmt.Sprintf("%g", attr.F)
	case protos.AttributeProto_INT:
		return fmt.Sprintf("%d", attr.I)
	case protos.AttributeProto_STRING:
		return fmt.Sprintf("%q", attr.S)
	case protos.AttributeProto_FLOATS:
		return fmt.Sprintf("%v", attr.Floats)
	case protos.AttributeProto_INTS:
		return fmt.Sprintf("%v", attr.Ints)
	case protos.AttributeProto_STRINGS:
		return fmt.Sprintf("%q", attr.Strings)
	case protos.AttributeProto_TENSOR:
		if attr.T == nil {
			return "tensor(nil)"
		}
		return fmt.Sprintf("tensor(%s%v)", protos.TensorProto_DataType(attr.T.DataType), attr.T.Dims)
	case protos.AttributeProto_GRAPH:
		return fmt.Sprintf("graph(%q)", attr.G.GetName())
	default:
		return attr.Type.String()
	}
}

// PrintNodes writes one line per node of the graph, in execution order.
func (m *Model) PrintNodes(w io.Writer) error {
	var buf bytes.Buffer
	for _, node := range m.Graph().GetNode() {
		buf.WriteString(NodeString(node))
		buf.WriteString("\n")
	}
	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "failed to print ONNX nodes")
}

// WriteGraphviz writes the graph in Graphviz "dot" format: operators are labeled with their type, values are
// connected to the operators consuming and producing them, and operator outputs are drawn as rectangles.
func (m *Model) WriteGraphviz(w io.Writer) error {
	graph := m.Graph()
	if graph == nil {
		return errors.New("ONNX model has no graph")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", graph.Name)
	for ii, node := range graph.Node {
		opName := node.Name
		if opName == "" {
			opName = fmt.Sprintf("%s_%d", node.OpType, ii)
		}
		fmt.Fprintf(&buf, "  %q [label=%q]\n", opName, node.OpType)
		for _, input := range node.Input {
			if input == "" {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q\n", input, opName)
		}
		for _, output := range node.Output {
			if output == "" {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q\n", opName, output)
			fmt.Fprintf(&buf, "  %q [shape=rect]\n", output)
		}
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "failed to write Graphviz graph")
}
