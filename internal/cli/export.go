package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"modelmedic/internal/compat"
	"modelmedic/internal/export"
	"modelmedic/internal/flags"
	gh "modelmedic/internal/github"
	"modelmedic/internal/onnx"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export source model weights to ONNX via the ultralytics exporter",
	Long: `Export source model weights (e.g. yolo12n.pt) to ONNX.

The export itself runs in the ultralytics exporter; modelmedic passes the
operator-set version and the simplify flag, then verifies the produced
file with the same parser the check command uses.

The default opset is 14: it serializes with IR version 9, which keeps the
exported model loadable by the ONNX Runtime 1.16.3 tier.

Requirements:
	The ultralytics CLI must be installed (pip install ultralytics). If it
	is absent, export exits with code 1 and an install hint.

Examples:
  # Export with the pinned defaults (opset 14, simplify on)
  modelmedic export

  # Fetch yolo12n.pt from GitHub release assets first if missing
  modelmedic export --fetch

  # Export a different weights file at a different opset
  modelmedic export --source yolov8n.pt --opset 17
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		out := cmd.OutOrStdout()

		if cfg.Export.Fetch {
			if err := fetchSourceIfMissing(ctx, cfg.Export.Source); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		exp, err := export.Find()
		if err != nil {
			// The install hint goes to stdout on purpose: it is guidance,
			// not diagnostics.
			fmt.Fprintln(out, "ERROR: ultralytics exporter not installed")
			fmt.Fprintln(out, "Install with: pip install ultralytics")
			os.Exit(1)
		}
		exp.Stdout = out

		fmt.Fprintf(out, "Loading %s...\n", cfg.Export.Source)
		fmt.Fprintf(out, "Exporting to ONNX format with opset %d (compatible with ONNX Runtime 1.16)...\n", cfg.Export.Opset)

		outPath, err := exp.Export(ctx, export.Options{
			Source:   cfg.Export.Source,
			Opset:    cfg.Export.Opset,
			Simplify: cfg.Export.Simplify,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(out, "Export complete! Model saved as: %s\n", filepath.Base(outPath))
		fmt.Fprintf(out, "Note: exported with opset %d for ONNX Runtime 1.16 compatibility\n", cfg.Export.Opset)

		verifyExport(out, outPath)
	},
}

// verifyExport re-reads the produced file and prints its verdict. A
// verification failure is reported but does not fail the export: the file
// was produced, it is merely suspect.
func verifyExport(out io.Writer, path string) {
	model, err := onnx.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "Warning: could not verify exported model: %v\n", err)
		return
	}
	info, err := model.Versions()
	if err != nil {
		fmt.Fprintf(out, "Warning: could not verify exported model: %v\n", err)
		return
	}
	verdict := compat.Classify(info.IRVersion)
	glyph := color.GreenString("✓")
	if !verdict.Compatible {
		glyph = color.RedString("✗")
	}
	fmt.Fprintf(out, "Verified: IR version %d, opset %d\n", info.IRVersion, info.OpsetVersion)
	fmt.Fprintf(out, "%s %s\n", glyph, verdict.Message())
}

// fetchSourceIfMissing downloads the source weights release asset into
// the source path's directory when the file is not already on disk.
func fetchSourceIfMissing(ctx context.Context, source string) error {
	if _, err := os.Stat(source); err == nil {
		return nil
	}

	owner, repo, err := splitAssetRepo(fetchAssetRepo)
	if err != nil {
		return err
	}

	token, _, err := gh.ResolveAuthToken(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to resolve GitHub auth token: %w", err)
	}
	client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	asset := gh.WeightAsset{Owner: owner, Repo: repo, Tag: fetchTag, Name: filepath.Base(source)}
	dir := filepath.Dir(source)
	return client.DownloadAssets(ctx, []gh.WeightAsset{asset}, dir, 1)
}

func splitAssetRepo(value string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(value, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid --%s value %q: expected OWNER/REPO", flags.FlagAssetRepo, value)
	}
	return owner, repo, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&cfg.Export.Source, flags.FlagSource, cfg.Export.Source, "Source weights file to export")
	exportCmd.Flags().IntVar(&cfg.Export.Opset, flags.FlagOpset, cfg.Export.Opset, "ONNX operator-set version to export with")
	exportCmd.Flags().BoolVar(&cfg.Export.Simplify, flags.FlagSimplify, cfg.Export.Simplify, "Apply the graph-simplification pass during export")
	exportCmd.Flags().BoolVar(&cfg.Export.Fetch, flags.FlagFetch, false, "Download the source weights from GitHub release assets if missing")
	exportCmd.Flags().StringVar(&fetchAssetRepo, flags.FlagAssetRepo, defaultAssetRepo, "GitHub repository hosting the weights release assets (OWNER/REPO)")
	exportCmd.Flags().StringVar(&fetchTag, flags.FlagTag, defaultAssetTag, "Release tag holding the weights assets")
}
