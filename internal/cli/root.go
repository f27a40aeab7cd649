package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "modelmedic",
	Short: "Check and export ONNX models against ONNX Runtime support ranges",
	Long: `ModelMedic inspects local ONNX model files and reports their IR and opset
versions against known ONNX Runtime support ranges.

ModelMedic is check-only on the model side: it reads version metadata, never
the graph, and never rewrites a model. Export is delegated to the ultralytics
exporter.

Examples:
	# Show available commands and global flags
	modelmedic --help

	# Check the default model set under the local cache
	modelmedic check

	# Check an explicit model file
	modelmedic check --model YOLO=.cache/yolo/yolo12n.onnx

	# List known runtime tiers
	modelmedic runtimes list

	# Print build info
	modelmedic version

Output:
	By default, commands write human-readable output to stdout.
	The check command supports structured output via --out and --console-format
	(see "modelmedic check --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every GitHub API call during fetch and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
