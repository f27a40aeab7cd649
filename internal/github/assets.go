package github

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/go-github/v81/github"
	"golang.org/x/sync/errgroup"
)

// WeightAsset identifies a release asset holding source model weights,
// e.g. yolo12n.pt from ultralytics/assets at tag v8.3.0.
type WeightAsset struct {
	Owner string
	Repo  string
	Tag   string
	Name  string
}

func (a WeightAsset) String() string {
	return fmt.Sprintf("%s/%s@%s:%s", a.Owner, a.Repo, a.Tag, a.Name)
}

// DownloadAssets fetches the given release assets into destDir, at most
// concurrency at a time. Assets already present on disk are skipped.
// The first failure cancels the remaining downloads.
func (c *Client) DownloadAssets(ctx context.Context, assets []WeightAsset, destDir string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, a := range assets {
		g.Go(func() error {
			dest := filepath.Join(destDir, a.Name)
			if _, err := os.Stat(dest); err == nil {
				return nil
			}
			if err := c.downloadAsset(ctx, a, dest); err != nil {
				return fmt.Errorf("download %s: %w", a, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Client) downloadAsset(ctx context.Context, a WeightAsset, dest string) error {
	release, _, err := c.Client.Repositories.GetReleaseByTag(ctx, a.Owner, a.Repo, a.Tag)
	if err != nil {
		return fmt.Errorf("failed to resolve release: %w", err)
	}

	var asset *github.ReleaseAsset
	for _, ra := range release.Assets {
		if ra.GetName() == a.Name {
			asset = ra
			break
		}
	}
	if asset == nil {
		return fmt.Errorf("release %s has no asset named %s", a.Tag, a.Name)
	}

	rc, _, err := c.Client.Repositories.DownloadReleaseAsset(ctx, a.Owner, a.Repo, asset.GetID(), c.HTTP)
	if err != nil {
		return fmt.Errorf("failed to download asset: %w", err)
	}
	defer rc.Close()

	// Write to a temp file and rename, so an interrupted download never
	// leaves a truncated weights file behind.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move asset into place: %w", err)
	}
	return nil
}
