package compose

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DbIM/qr-code/internal/assets"
	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrAssetLoad marks a logo that is missing or cannot be decoded. It is a
// packaging problem: the service must not start with it.
var ErrAssetLoad = errors.New("compose: logo asset unavailable")

// SVGRasterSize is the side SVG logos are rasterized at before scaling.
const SVGRasterSize = 512

// DefaultLogo decodes the logo bundled with the binary.
func DefaultLogo() (image.Image, error) {
	return LoadLogo(assets.LogoName, bytes.NewReader(assets.Logo()))
}

// LoadLogoFile reads a PNG, JPEG or SVG logo from disk.
func LoadLogoFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrAssetLoad, "open %s: %v", path, err)
	}
	defer f.Close()
	return LoadLogo(filepath.Base(path), f)
}

// LoadLogo decodes a logo. name is only used to pick the SVG path and for
// error messages.
func LoadLogo(name string, r io.Reader) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return loadSVG(name, r)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(ErrAssetLoad, "decode %s: %v", name, err)
	}
	if img.Bounds().Empty() {
		return nil, errors.Wrapf(ErrAssetLoad, "%s has no pixels", name)
	}
	return img, nil
}

func loadSVG(name string, r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, errors.Wrapf(ErrAssetLoad, "parse %s: %v", name, err)
	}
	w, h := SVGRasterSize, SVGRasterSize
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
