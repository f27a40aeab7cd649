package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"modelmedic/internal/compat"
)

var runtimesListQuiet bool
var runtimesCmd = &cobra.Command{
	Use:   "runtimes",
	Short: "Inspect known ONNX Runtime tiers",
	Long: `Inspect the ONNX Runtime tiers this build knows about.

Each tier declares the maximum IR and opset versions it supports. The
check command classifies models against these tiers (see
"modelmedic check --help").

Examples:
  # List known runtime tiers
  modelmedic runtimes list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var runtimesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known runtime tiers",
	Long: `List the ONNX Runtime tiers known to this build, oldest first.

Examples:
  modelmedic runtimes list

Output:
  A vertical list of tiers:
    ----------------------------------------
    RUNTIME: {VERSION}
    ----------------------------------------
    Max IR version:    {N}
    Max opset version: {N}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, rt := range compat.Runtimes() {
			if runtimesListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), rt.Version)
			} else {
				printRuntime(cmd.OutOrStdout(), rt)
			}
		}
		return nil
	},
}

func printRuntime(w io.Writer, rt compat.Runtime) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "RUNTIME: %s\n", rt.Version)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Max IR version:    %d\n", rt.MaxIR)
	fmt.Fprintf(w, "Max opset version: %d\n", rt.MaxOpset)
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(runtimesCmd)
	runtimesCmd.AddCommand(runtimesListCmd)
	runtimesListCmd.Flags().BoolVarP(&runtimesListQuiet, "quiet", "q", false, "Only print runtime versions")
}
