package gui

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/zbango/mia/log"
	"github.com/zbango/mia/resource"
)

const (
	listenAsset = "mia_listen.png"
	stopAsset   = "mia_stop.png"

	iconMaxSize    = 288
	fallbackSize   = 100
	fallbackRadius = 40
)

// Icons holds the two button states. Asset-load failure is non-fatal:
// missing files yield generated circle icons.
type Icons struct {
	Listen image.Image
	Stop   image.Image
}

func LoadIcons() Icons {
	listen, lerr := loadAndResize(resource.Path(listenAsset), iconMaxSize)
	stop, serr := loadAndResize(resource.Path(stopAsset), iconMaxSize)
	if lerr != nil || serr != nil {
		log.Warnf("icon load failed (listen: %v, stop: %v), using generated icons", lerr, serr)
		return Icons{
			Listen: circleIcon(color.RGBA{0, 160, 60, 255}),
			Stop:   circleIcon(color.RGBA{210, 40, 40, 255}),
		}
	}
	return Icons{Listen: listen, Stop: stop}
}

// loadAndResize decodes an image file and downscales it to fit maxSize,
// preserving the aspect ratio. Images already within bounds pass through.
func loadAndResize(path string, maxSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img, nil
	}

	ratio := min(float64(maxSize)/float64(b.Dx()), float64(maxSize)/float64(b.Dy()))
	w := int(float64(b.Dx()) * ratio)
	h := int(float64(b.Dy()) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, nil
}

// circleIcon renders a filled circle on a transparent square, the
// fallback when bundled assets are missing.
func circleIcon(fill color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, fallbackSize, fallbackSize))
	c := float64(fallbackSize) / 2
	for y := 0; y < fallbackSize; y++ {
		for x := 0; x < fallbackSize; x++ {
			dx := float64(x) - c + 0.5
			dy := float64(y) - c + 0.5
			if dx*dx+dy*dy <= fallbackRadius*fallbackRadius {
				img.Set(x, y, fill)
			}
		}
	}
	return img
}
