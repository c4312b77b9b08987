// Package compose builds the branded payment QR image: the plain QR raster is
// clipped to a colored disc and a logo is stamped in the middle.
package compose

import (
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// DefaultBackground is the light blue the disc is filled with.
var DefaultBackground = color.NRGBA{R: 0xEA, G: 0xF3, B: 0xFF, A: 0xFF}

// LogoDivisor sets the logo side to size/LogoDivisor.
const LogoDivisor = 4

// Option configures a Compositor.
type Option interface {
	apply(c *Compositor)
}

type funcOption struct {
	f func(c *Compositor)
}

func (fo *funcOption) apply(c *Compositor) {
	fo.f(c)
}

func newFuncOption(f func(c *Compositor)) *funcOption {
	return &funcOption{f: f}
}

// WithBackground sets the disc color. The color is made fully opaque.
func WithBackground(bg color.Color) Option {
	return newFuncOption(func(c *Compositor) {
		if bg == nil {
			return
		}
		n := color.NRGBAModel.Convert(bg).(color.NRGBA)
		n.A = 0xff
		c.background = n
	})
}

// Compositor owns the decoded logo and is safe for concurrent use: each
// Compose call works on its own canvas and the logo is only read.
type Compositor struct {
	logo       image.Image
	background color.NRGBA

	scaled sync.Map // int -> *image.NRGBA
}

// New returns a Compositor for logo. A missing or empty logo is an asset
// error, not a per-request one.
func New(logo image.Image, opts ...Option) (*Compositor, error) {
	if logo == nil || logo.Bounds().Empty() {
		return nil, errors.Wrap(ErrAssetLoad, "logo image is empty")
	}
	c := &Compositor{
		logo:       logo,
		background: DefaultBackground,
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c, nil
}

// Background is the disc color in use.
func (c *Compositor) Background() color.NRGBA { return c.background }

// Compose builds the square branded image from a plain QR raster:
//  1. a transparent canvas of side min(width, height),
//  2. a disc of radius side/2 in the background color,
//  3. every dark (non-white, non-transparent) raster pixel inside the disc,
//     copied as opaque ink,
//  4. the logo scaled to side/4 and centered, replacing what lies beneath.
func (c *Compositor) Compose(raw image.Image) *image.NRGBA {
	b := raw.Bounds()
	size := min(b.Dx(), b.Dy())
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	if size == 0 {
		return canvas
	}

	paintDisc(canvas, size, c.background)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			disc := canvas.NRGBAAt(x, y)
			if disc.A == 0 {
				continue
			}
			ink := color.NRGBAModel.Convert(raw.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if ink.A == 0 || isWhite(ink) {
				continue
			}
			// ink is opaque; only the disc's own edge coverage softens it
			canvas.SetNRGBA(x, y, color.NRGBA{R: ink.R, G: ink.G, B: ink.B, A: disc.A})
		}
	}

	if r := LogoRect(size); !r.Empty() {
		xdraw.Draw(canvas, r, c.scaledLogo(r.Dx()), image.Point{}, xdraw.Src)
	}
	return canvas
}

// Render composes raw and encodes the result as PNG.
func (c *Compositor) Render(raw image.Image) ([]byte, error) {
	return EncodePNG(c.Compose(raw))
}

// LogoRect is where Compose places the logo on a canvas of the given side.
func LogoRect(size int) image.Rectangle {
	logoSize := size / LogoDivisor
	off := (size - logoSize) / 2
	return image.Rect(off, off, off+logoSize, off+logoSize)
}

func (c *Compositor) scaledLogo(side int) *image.NRGBA {
	if v, ok := c.scaled.Load(side); ok {
		return v.(*image.NRGBA)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), c.logo, c.logo.Bounds(), xdraw.Src, nil)
	v, _ := c.scaled.LoadOrStore(side, dst)
	return v.(*image.NRGBA)
}

func paintDisc(dst *image.NRGBA, size int, fill color.NRGBA) {
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)
	filler.SetColor(fill)
	r := float64(size) / 2
	rasterx.AddCircle(r, r, r, filler)
	filler.Draw()
}

func isWhite(c color.NRGBA) bool {
	return c.R == 0xff && c.G == 0xff && c.B == 0xff && c.A == 0xff
}
