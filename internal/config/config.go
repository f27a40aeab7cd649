package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"modelmedic/internal/check"
	"modelmedic/internal/export"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// command behavior, keep the CLI flag wiring in internal/cli in sync.
	Models  Models
	Export  Export
	Output  Output
	Runtime Runtime
}

type Models struct {
	// Specs lists models to check as NAME=PATH entries (see --model).
	// Values may be provided as repeated flags and/or comma-separated lists.
	// Empty means the default model set under CacheDir.
	Specs []string

	// CacheDir is the local model cache root the default model set lives
	// under (see --cache-dir).
	CacheDir string
}

type Export struct {
	// Source is the weights file to export (see --source).
	Source string

	// Opset is the ONNX operator-set version to export with (see --opset).
	Opset int

	// Simplify enables the export-time graph-simplification pass
	// (see --simplify).
	Simplify bool

	// Fetch downloads the source weights from GitHub release assets first
	// when they are not present on disk (see --fetch).
	Fetch bool
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format
	// (see --console-format). Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by result status
	// (see --console-filter-status). Allowed values: OK, MISSING, ERROR.
	ConsoleFilterStatus []string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the
	// --out file extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Runtime struct {
	// Concurrency bounds parallel asset downloads in fetch
	// (see --concurrency). Must be >= 1. Checking is always sequential.
	Concurrency int

	// Verbose enables more detailed diagnostics (primarily GitHub API
	// call logging during fetch).
	Verbose bool
}

// Default model set, matching the project's model cache layout.
const (
	DefaultCacheDir  = ".cache"
	defaultYOLOPath  = "yolo/yolo12n.onnx"
	defaultOSNetPath = "reid/osnet_x0_25.onnx"
)

func New() *Config {
	return &Config{
		Models: Models{
			CacheDir: DefaultCacheDir,
		},
		Export: Export{
			Source:   "yolo12n.pt",
			Opset:    export.DefaultOpset,
			Simplify: true,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 2,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Models.Specs = splitCommaList(c.Models.Specs)
	c.Output.ConsoleFilterStatus = splitCommaList(c.Output.ConsoleFilterStatus)

	for _, spec := range c.Models.Specs {
		if _, _, err := parseModelSpec(spec); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Models.CacheDir) == "" {
		return errors.New("--cache-dir must not be empty")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	// Export validation
	if c.Export.Opset < 1 {
		return errors.New("--opset must be >= 1")
	}
	if strings.TrimSpace(c.Export.Source) == "" {
		return errors.New("--source must not be empty")
	}

	// Runtime validation
	if c.Runtime.Concurrency < 1 {
		return errors.New("--concurrency must be >= 1")
	}

	return nil
}

// Descriptors resolves the model set to check, preserving --model order.
// Without explicit --model flags it falls back to the default detector and
// re-identification models under the cache dir.
func (c *Config) Descriptors() ([]check.Descriptor, error) {
	if len(c.Models.Specs) == 0 {
		return []check.Descriptor{
			{Name: "YOLO", Path: filepath.Join(c.Models.CacheDir, filepath.FromSlash(defaultYOLOPath))},
			{Name: "OSNet", Path: filepath.Join(c.Models.CacheDir, filepath.FromSlash(defaultOSNetPath))},
		}, nil
	}

	descriptors := make([]check.Descriptor, 0, len(c.Models.Specs))
	for _, spec := range c.Models.Specs {
		name, path, err := parseModelSpec(spec)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, check.Descriptor{Name: name, Path: path})
	}
	return descriptors, nil
}

func parseModelSpec(spec string) (name, path string, err error) {
	name, path, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	path = strings.TrimSpace(path)
	if !ok || name == "" || path == "" {
		return "", "", fmt.Errorf("invalid --model entry %q: expected NAME=PATH", spec)
	}
	return name, path, nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
