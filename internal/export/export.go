// Package export drives the external ultralytics exporter to produce
// ONNX files from source model weights. The export itself (graph
// construction, the simplify pass) happens entirely inside the exporter;
// this package only shells out with the contractual parameters: the
// operator-set version and the simplify flag.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrExporterNotFound is returned by Find when the ultralytics CLI is not
// installed. Callers treat this as fatal and print an install hint.
var ErrExporterNotFound = errors.New("ultralytics exporter not found in PATH")

// DefaultOpset is pinned for ONNX Runtime 1.16 compatibility: opset 14
// serializes with IR version 9, under the 1.16.3 tier's ceiling.
const DefaultOpset = 14

// Options are the contractual export parameters.
type Options struct {
	// Source is the weights file to export, e.g. yolo12n.pt.
	Source string

	// Opset is the ONNX operator-set version to export with.
	Opset int

	// Simplify enables the export-time graph-simplification pass.
	Simplify bool
}

// OutputPath is where the exporter writes the ONNX file for the given
// source weights: same directory, .onnx extension.
func (o Options) OutputPath() string {
	return strings.TrimSuffix(o.Source, ".pt") + ".onnx"
}

func (o Options) args() []string {
	return []string{
		"export",
		"model=" + o.Source,
		"format=onnx",
		fmt.Sprintf("opset=%d", o.Opset),
		fmt.Sprintf("simplify=%t", o.Simplify),
	}
}

// Exporter invokes the ultralytics `yolo` CLI.
type Exporter struct {
	bin string

	// Stdout receives the exporter's own output. Nil discards it.
	Stdout io.Writer
}

// Find locates the exporter binary. Returns ErrExporterNotFound when the
// ultralytics CLI is not installed.
func Find() (*Exporter, error) {
	bin, err := exec.LookPath("yolo")
	if err != nil {
		return nil, ErrExporterNotFound
	}
	return &Exporter{bin: bin}, nil
}

// Export runs the exporter once. No retries: a failed export surfaces the
// exporter's error output verbatim.
func (e *Exporter) Export(ctx context.Context, opts Options) (string, error) {
	if opts.Source == "" {
		return "", errors.New("export: source weights path required")
	}
	if opts.Opset <= 0 {
		opts.Opset = DefaultOpset
	}

	cmd := exec.CommandContext(ctx, e.bin, opts.args()...)
	var stderr strings.Builder
	cmd.Stdout = e.Stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("export failed: %w", err)
		}
		return "", fmt.Errorf("export failed: %w: %s", err, msg)
	}

	return opts.OutputPath(), nil
}
