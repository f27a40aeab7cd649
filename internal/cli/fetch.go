package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"modelmedic/internal/flags"
	gh "modelmedic/internal/github"
)

// yolo12n.pt is published as a release asset of ultralytics/assets.
const (
	defaultAssetRepo = "ultralytics/assets"
	defaultAssetTag  = "v8.3.0"
)

var (
	fetchAssetRepo = defaultAssetRepo
	fetchTag       = defaultAssetTag
	fetchAssets    []string
	fetchDest      string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download source model weights from GitHub release assets",
	Long: `Download source model weights published as GitHub release assets into
the local weights directory.

Assets already present on disk are skipped. Downloads run in parallel,
bounded by --concurrency; a failed download cancels the rest.

Authentication:
	A token is optional for public assets. When needed, modelmedic prefers
	GITHUB_TOKEN and falls back to GitHub CLI authentication (gh auth token).

Examples:
  # Fetch the default detector weights
  modelmedic fetch

  # Fetch several assets from a specific release
  modelmedic fetch --asset-repo ultralytics/assets --tag v8.3.0 --assets yolo12n.pt,yolo12s.pt
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		owner, repo, err := splitAssetRepo(fetchAssetRepo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(fetchAssets) == 0 {
			fmt.Fprintln(os.Stderr, "Error: at least one --assets entry must be provided")
			os.Exit(1)
		}

		dest := fetchDest
		if dest == "" {
			dest = filepath.Join(cfg.Models.CacheDir, "weights")
		}

		ctx := context.Background()
		token, _, err := gh.ResolveAuthToken(ctx, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(1)
		}
		client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(1)
		}

		assets := make([]gh.WeightAsset, 0, len(fetchAssets))
		for _, name := range fetchAssets {
			assets = append(assets, gh.WeightAsset{Owner: owner, Repo: repo, Tag: fetchTag, Name: name})
		}

		if err := client.DownloadAssets(ctx, assets, dest, cfg.Runtime.Concurrency); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, a := range assets {
			fmt.Fprintf(cmd.OutOrStdout(), "Fetched %s -> %s\n", a, filepath.Join(dest, a.Name))
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchAssetRepo, flags.FlagAssetRepo, defaultAssetRepo, "GitHub repository hosting the weights release assets (OWNER/REPO)")
	fetchCmd.Flags().StringVar(&fetchTag, flags.FlagTag, defaultAssetTag, "Release tag holding the weights assets")
	fetchCmd.Flags().StringSliceVar(&fetchAssets, flags.FlagAssets, []string{"yolo12n.pt"}, "Asset names to download (repeatable; comma-separated accepted)")
	fetchCmd.Flags().StringVar(&fetchDest, flags.FlagDest, "", "Destination directory (default: <cache-dir>/weights)")
	fetchCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent downloads")
}
