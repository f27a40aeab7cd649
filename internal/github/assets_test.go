package github

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWeightAssetString(t *testing.T) {
	a := WeightAsset{Owner: "ultralytics", Repo: "assets", Tag: "v8.3.0", Name: "yolo12n.pt"}
	want := "ultralytics/assets@v8.3.0:yolo12n.pt"
	if a.String() != want {
		t.Fatalf("expected %q, got %q", want, a.String())
	}
}

func TestDownloadAssets_SkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "yolo12n.pt"), []byte("weights"), 0644); err != nil {
		t.Fatalf("failed to seed asset: %v", err)
	}

	// No API client is wired: if the download path were taken despite the
	// file existing, this would panic rather than pass.
	c := &Client{}
	assets := []WeightAsset{{Owner: "o", Repo: "r", Tag: "t", Name: "yolo12n.pt"}}
	if err := c.DownloadAssets(context.Background(), assets, dir, 2); err != nil {
		t.Fatalf("expected existing asset to be skipped: %v", err)
	}
}

func TestDownloadAssets_CreatesDestDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "weights", "nested")

	c := &Client{}
	if err := c.DownloadAssets(context.Background(), nil, dir, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected destination directory to exist: %v", err)
	}
}
