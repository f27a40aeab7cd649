package export

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestOptionsOutputPath(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{source: "yolo12n.pt", want: "yolo12n.onnx"},
		{source: filepath.Join("weights", "yolo12n.pt"), want: filepath.Join("weights", "yolo12n.onnx")},
		{source: "model.weights", want: "model.weights.onnx"},
	}

	for _, tt := range tests {
		got := Options{Source: tt.source}.OutputPath()
		if got != tt.want {
			t.Fatalf("OutputPath(%q): expected %q, got %q", tt.source, tt.want, got)
		}
	}
}

func TestOptionsArgs(t *testing.T) {
	opts := Options{Source: "yolo12n.pt", Opset: 14, Simplify: true}
	got := strings.Join(opts.args(), " ")
	want := "export model=yolo12n.pt format=onnx opset=14 simplify=true"
	if got != want {
		t.Fatalf("expected args %q, got %q", want, got)
	}

	opts.Simplify = false
	opts.Opset = 17
	got = strings.Join(opts.args(), " ")
	if !strings.Contains(got, "opset=17") || !strings.Contains(got, "simplify=false") {
		t.Fatalf("unexpected args: %q", got)
	}
}

func TestExport_RequiresSource(t *testing.T) {
	e := &Exporter{bin: "yolo"}
	if _, err := e.Export(context.Background(), Options{}); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestExport_RunsExporter(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake exporter script requires a POSIX shell")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "yolo")
	script := "#!/bin/sh\necho \"export args: $@\"\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake exporter: %v", err)
	}

	e := &Exporter{bin: bin}
	out, err := e.Export(context.Background(), Options{Source: "yolo12n.pt", Opset: 14, Simplify: true})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out != "yolo12n.onnx" {
		t.Fatalf("expected output path yolo12n.onnx, got %s", out)
	}
}

func TestExport_SurfacesExporterError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake exporter script requires a POSIX shell")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "yolo")
	script := "#!/bin/sh\necho 'no such model' >&2\nexit 2\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake exporter: %v", err)
	}

	e := &Exporter{bin: bin}
	_, err := e.Export(context.Background(), Options{Source: "missing.pt", Opset: 14})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no such model") {
		t.Fatalf("expected exporter stderr in error, got: %v", err)
	}
}
