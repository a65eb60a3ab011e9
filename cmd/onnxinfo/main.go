// onnxinfo prints information about ONNX model files: a summary, the list of nodes and, optionally,
// the result of the graph checks and a Graphviz rendering of the graph.
//
// Usage:
//
//	onnxinfo [-check] [-dot] model.onnx...
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/onnc/onnc-tutorial-models/onnx"
	"k8s.io/klog/v2"
)

var (
	flagCheck = flag.Bool("check", false, "Check the graph structure and the shapes of Conv nodes.")
	flagDot   = flag.Bool("dot", false, "Print the graph in Graphviz dot format.")
	flagNodes = flag.Bool("nodes", true, "Print one line per node of the graph.")
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] model.onnx...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer klog.Flush()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, filePath := range flag.Args() {
		if err := describe(filePath); err != nil {
			klog.Errorf("%s: %+v", filePath, err)
			failed = true
		}
	}
	if failed {
		klog.Flush()
		os.Exit(1)
	}
}

func describe(filePath string) error {
	m, err := onnx.ReadFile(filePath)
	if err != nil {
		return err
	}
	fmt.Printf("%s:\n%s", filePath, m)
	if *flagNodes {
		if err = m.PrintNodes(os.Stdout); err != nil {
			return err
		}
	}
	if *flagDot {
		if err = m.WriteGraphviz(os.Stdout); err != nil {
			return err
		}
	}
	if *flagCheck {
		if err = m.Check(); err != nil {
			return err
		}
		klog.Infof("%s: checks passed", filePath)
	}
	return nil
}
