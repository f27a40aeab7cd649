package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"modelmedic/internal/check"
)

const rule60 = "============================================================"

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	results         []check.Result // For JSON array output
	allowedStatuses map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[strings.ToUpper(st)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	// Apply filtering if configured
	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(check.Result); ok {
			if !s.allowedStatuses[string(r.Status)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(check.Result)
		if !ok {
			// Ignore events and the summary in JSON console mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case check.Result:
			if err := encoder.Encode(eventFromResult(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Summary:
			if err := encoder.Encode(eventFromSummary(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case Event:
			if t.Type == "run.started" {
				return s.printHeader()
			}
			return nil
		case check.Result:
			if err := s.printResult(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Summary:
			if err := s.printSummary(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) printHeader() error {
	_, err := fmt.Fprintf(s.writer, "%s\nONNX Model Version Check\n%s\n\n", rule60, rule60)
	return err
}

func (s *ConsoleSink) printResult(r check.Result) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	switch r.Status {
	case check.StatusOK:
		if err := printf("%s (%s):\n", r.Name, r.Path); err != nil {
			return err
		}
		if err := printf("  IR version: %d\n", r.IRVersion); err != nil {
			return err
		}
		if err := printf("  Opset version: %d\n", r.OpsetVersion); err != nil {
			return err
		}
		glyph := color.GreenString("✓")
		if !r.Compatible {
			glyph = color.RedString("✗")
		}
		if err := printf("  %s %s\n", glyph, r.Message); err != nil {
			return err
		}
	case check.StatusMissing:
		if err := printf("%s: %s\n", r.Name, r.Message); err != nil {
			return err
		}
	case check.StatusError:
		if err := printf("%s: Error loading model - %s\n", r.Name, r.Message); err != nil {
			return err
		}
	}
	return printf("\n")
}

func (s *ConsoleSink) printSummary(sum Summary) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	if err := printf("%s\nONNX Runtime Compatibility\n%s\n\n", rule60, rule60); err != nil {
		return err
	}
	for _, rt := range sum.Runtimes {
		if err := printf("ONNX Runtime %s: Supports IR <= %d, Opset <= %d\n", rt.Version, rt.MaxIR, rt.MaxOpset); err != nil {
			return err
		}
	}
	if err := printf("\nRecommendation:\n"); err != nil {
		return err
	}
	return printf("  %s\n", sum.Recommendation.Message())
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
