package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return buf.String()
}

func TestRuntimesList(t *testing.T) {
	out := execute(t, "runtimes", "list")

	for _, want := range []string{
		"RUNTIME: 1.16.3",
		"Max IR version:    9",
		"Max opset version: 18",
		"RUNTIME: 1.19.0",
		"Max IR version:    10",
		"Max opset version: 21",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q; got:\n%s", want, out)
		}
	}
}

func TestRuntimesListQuiet(t *testing.T) {
	out := execute(t, "runtimes", "list", "--quiet")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "1.16.3" || lines[1] != "1.19.0" {
		t.Fatalf("unexpected quiet output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.Contains(out, "modelmedic") {
		t.Fatalf("expected version output to name the binary; got:\n%s", out)
	}
}
