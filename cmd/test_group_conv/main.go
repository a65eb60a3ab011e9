// test_group_conv writes the grouped convolution fixture model to test_group_Conv.onnx in the current directory.
//
// It takes no arguments. The file is overwritten on every run, and the content is always the same.
package main

import (
	"github.com/onnc/onnc-tutorial-models/models"
	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := models.WriteGroupConv(models.GroupConvFileName); err != nil {
		klog.Fatalf("Failed to write %s: %+v", models.GroupConvFileName, err)
	}
	klog.Infof("Wrote %s", models.GroupConvFileName)
}
