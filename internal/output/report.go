package output

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"modelmedic/internal/check"
)

// ReportSink accumulates a full run and writes a Markdown report on Close.
type ReportSink struct {
	path    string
	file    *os.File
	mu      sync.Mutex
	results []check.Result
	summary *Summary
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case check.Result:
		s.results = append(s.results, t)
	case Summary:
		sum := t
		s.summary = &sum
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("# ONNX Model Version Report\n\n")

	// Per-model results, in check order.
	b.WriteString("## Models\n\n")
	if len(s.results) == 0 {
		b.WriteString("No models checked.\n\n")
	} else {
		b.WriteString("| Model | Status | IR version | Opset version | Verdict |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, r := range s.results {
			switch r.Status {
			case check.StatusOK:
				b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s |\n",
					r.Name, r.Status, r.IRVersion, r.OpsetVersion, r.Message))
			default:
				b.WriteString(fmt.Sprintf("| %s | %s | - | - | %s |\n",
					r.Name, r.Status, r.Message))
			}
		}
		b.WriteString("\n")
	}

	if s.summary != nil {
		b.WriteString("## Runtime Support\n\n")
		b.WriteString("| ONNX Runtime | Max IR version | Max opset version |\n")
		b.WriteString("|---|---|---|\n")
		for _, rt := range s.summary.Runtimes {
			b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", rt.Version, rt.MaxIR, rt.MaxOpset))
		}
		b.WriteString("\n## Recommendation\n\n")
		b.WriteString(s.summary.Recommendation.Message())
		b.WriteString("\n")
	}

	_, writeErr := s.file.WriteString(b.String())
	if closeErr := s.file.Close(); closeErr != nil && writeErr == nil {
		writeErr = closeErr
	}
	return writeErr
}
