package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"modelmedic/internal/check"
	"modelmedic/internal/compat"
)

func init() {
	// Deterministic output regardless of TTY detection.
	color.NoColor = true
}

func okResult() check.Result {
	return check.Result{
		Name:         "YOLO",
		Path:         ".cache/yolo/yolo12n.onnx",
		Status:       check.StatusOK,
		IRVersion:    9,
		OpsetVersion: 18,
		Compatible:   true,
		Message:      "Compatible with ONNX Runtime 1.16.3",
	}
}

func testSummary() Summary {
	return Summary{
		Runtimes:       compat.Runtimes(),
		Recommendation: compat.Recommend([]int64{9}),
	}
}

func TestConsoleSink_TextResult(t *testing.T) {
	tests := []struct {
		name   string
		input  check.Result
		expect []string
	}{
		{
			name:  "compatible model",
			input: okResult(),
			expect: []string{
				"YOLO (.cache/yolo/yolo12n.onnx):",
				"IR version: 9",
				"Opset version: 18",
				"✓ Compatible with ONNX Runtime 1.16.3",
			},
		},
		{
			name: "incompatible model",
			input: check.Result{
				Name: "Model", Path: "m.onnx", Status: check.StatusOK,
				IRVersion: 10, OpsetVersion: 21, Compatible: false,
				Message: "Requires ONNX Runtime 1.17+ (IR version 10)",
			},
			expect: []string{"✗ Requires ONNX Runtime 1.17+ (IR version 10)"},
		},
		{
			name: "missing model",
			input: check.Result{
				Name: "OSNet", Path: "x.onnx", Status: check.StatusMissing,
				Message: "Model not found at x.onnx",
			},
			expect: []string{"OSNet: Model not found at x.onnx"},
		},
		{
			name: "load error",
			input: check.Result{
				Name: "Broken", Path: "b.onnx", Status: check.StatusError,
				Message: "failed to parse ONNX model proto",
			},
			expect: []string{"Broken: Error loading model - failed to parse ONNX model proto"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewConsoleSink(&buf, "text", nil)
			if err := s.Write(tt.input); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			out := buf.String()
			for _, want := range tt.expect {
				if !strings.Contains(out, want) {
					t.Fatalf("expected output to contain %q; got:\n%s", want, out)
				}
			}
		})
	}
}

func TestConsoleSink_TextSummary(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text", nil)
	if err := s.Write(testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"ONNX Runtime Compatibility",
		"ONNX Runtime 1.16.3: Supports IR <= 9, Opset <= 18",
		"ONNX Runtime 1.19.0: Supports IR <= 10, Opset <= 21",
		"Recommendation:",
		"Keep ONNX Runtime 1.16.3 (all models have IR <= 9)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected summary to contain %q; got:\n%s", want, out)
		}
	}
}

func TestConsoleSink_TextHeader(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text", nil)
	if err := s.Write(Event{Type: "run.started", Models: 2}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "ONNX Model Version Check") {
		t.Fatalf("expected header; got:\n%s", buf.String())
	}
}

func TestConsoleSink_StatusFilter(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text", []string{"missing"})

	if err := s.Write(okResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected OK result to be filtered; got:\n%s", buf.String())
	}

	missing := check.Result{Name: "OSNet", Status: check.StatusMissing, Message: "Model not found at p"}
	if err := s.Write(missing); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "OSNet") {
		t.Fatalf("expected MISSING result to pass the filter; got:\n%s", buf.String())
	}
}

func TestConsoleSink_JSONAggregate(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "json", nil)

	if err := s.Write(Event{Type: "run.started"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(okResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var results []check.Result
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("output is not a JSON array of results: %v; got:\n%s", err, buf.String())
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Name != "YOLO" || results[0].IRVersion != 9 {
		t.Fatalf("unexpected result: %+v", results[0])
	}
}

func TestConsoleSink_NDJSONEvents(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "ndjson", nil)

	if err := s.Write(Event{Type: "run.started", Models: 1}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(okResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(Event{Type: "run.finished", ExitCode: 0}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 NDJSON lines, got %d:\n%s", len(lines), buf.String())
	}

	wantTypes := []string{"run.started", "model.result", "run.summary", "run.finished"}
	for i, line := range lines {
		var e struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if e.Type != wantTypes[i] {
			t.Fatalf("line %d: expected type %s, got %s", i, wantTypes[i], e.Type)
		}
	}
}

func TestConsoleSink_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "yaml", nil)
	if err := s.Write(okResult()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
