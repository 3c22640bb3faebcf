package gui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/zbango/mia/resource"
)

func TestLoadIconsFallsBackWhenAssetsMissing(t *testing.T) {
	t.Setenv(resource.EnvVar, t.TempDir())

	icons := LoadIcons()
	if icons.Listen == nil || icons.Stop == nil {
		t.Fatalf("expected generated icons, got listen=%v stop=%v", icons.Listen, icons.Stop)
	}
	b := icons.Listen.Bounds()
	if b.Dx() != fallbackSize || b.Dy() != fallbackSize {
		t.Errorf("fallback icon size = %dx%d, want %dx%d", b.Dx(), b.Dy(), fallbackSize, fallbackSize)
	}
}

func TestLoadAndResizeDownscales(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	writePNG(t, path, 600, 400)

	img, err := loadAndResize(path, iconMaxSize)
	if err != nil {
		t.Fatalf("loadAndResize: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != iconMaxSize {
		t.Errorf("width = %d, want %d", b.Dx(), iconMaxSize)
	}
	if b.Dy() != 192 {
		t.Errorf("height = %d, want 192", b.Dy())
	}
}

func TestLoadAndResizeMissingFile(t *testing.T) {
	if _, err := loadAndResize(filepath.Join(t.TempDir(), "nope.png"), iconMaxSize); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCircleIconTransparentCorners(t *testing.T) {
	img := circleIcon(color.RGBA{0, 160, 60, 255})
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner pixel should be transparent")
	}
	c := fallbackSize / 2
	if _, _, _, a := img.At(c, c).RGBA(); a == 0 {
		t.Error("center pixel should be opaque")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}
