package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func newTestCompositor(t *testing.T, opts ...Option) *Compositor {
	t.Helper()
	c, err := New(uniform(10, 10, red), opts...)
	require.NoError(t, err)
	return c
}

func near(t *testing.T, want, got color.NRGBA, msg string) {
	t.Helper()
	d := func(a, b uint8) int { return int(math.Abs(float64(a) - float64(b))) }
	assert.True(t, d(want.R, got.R) <= 1 && d(want.G, got.G) <= 1 && d(want.B, got.B) <= 1 && d(want.A, got.A) <= 1,
		"%s: want %v, got %v", msg, want, got)
}

func TestComposeUsesShortestSide(t *testing.T) {
	out := newTestCompositor(t).Compose(uniform(300, 320, white))
	assert.Equal(t, image.Rect(0, 0, 300, 300), out.Bounds())
}

func TestComposeMasksOutsideDisc(t *testing.T) {
	const size = 300
	out := newTestCompositor(t).Compose(uniform(size, size, black))

	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			if d > c+1 {
				require.Equal(t, uint8(0), out.NRGBAAt(x, y).A, "pixel (%d,%d) outside the disc", x, y)
			}
		}
	}
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(size-1, size-1).A)
}

func TestComposeDiscBackground(t *testing.T) {
	out := newTestCompositor(t).Compose(uniform(300, 300, white))
	near(t, DefaultBackground, out.NRGBAAt(150, 20), "top of disc")
	near(t, DefaultBackground, out.NRGBAAt(20, 150), "left of disc")
	near(t, DefaultBackground, out.NRGBAAt(100, 100), "inner disc")
}

func TestComposeCopiesInkAsOpaque(t *testing.T) {
	raw := uniform(300, 300, white)
	raw.SetNRGBA(150, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 0x80})
	raw.SetNRGBA(20, 150, black)
	raw.SetNRGBA(150, 280, color.NRGBA{}) // fully transparent: skipped

	out := newTestCompositor(t).Compose(raw)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, out.NRGBAAt(150, 20))
	assert.Equal(t, black, out.NRGBAAt(20, 150))
	near(t, DefaultBackground, out.NRGBAAt(150, 280), "transparent source pixel")
	near(t, DefaultBackground, out.NRGBAAt(151, 20), "white source pixel")
}

func TestComposeLogoPlacement(t *testing.T) {
	for _, size := range []int{300, 301, 123} {
		out := newTestCompositor(t).Compose(uniform(size, size, white))
		r := LogoRect(size)

		assert.Equal(t, size/4, r.Dx())
		assert.Equal(t, size/4, r.Dy())
		left, right := r.Min.X, size-r.Max.X
		assert.LessOrEqual(t, int(math.Abs(float64(left-right))), 1, "centered horizontally")

		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				near(t, red, out.NRGBAAt(x, y), "logo pixel")
			}
		}
		mid := size / 2
		near(t, DefaultBackground, out.NRGBAAt(r.Min.X-1, mid), "left of logo")
		near(t, DefaultBackground, out.NRGBAAt(r.Max.X, mid), "right of logo")
		near(t, DefaultBackground, out.NRGBAAt(mid, r.Min.Y-1), "above logo")
		near(t, DefaultBackground, out.NRGBAAt(mid, r.Max.Y), "below logo")
	}
}

func TestComposeLogoReplacesWithItsOwnAlpha(t *testing.T) {
	c, err := New(uniform(8, 8, color.NRGBA{}))
	require.NoError(t, err)

	out := c.Compose(uniform(300, 300, black))
	assert.Equal(t, uint8(0), out.NRGBAAt(150, 150).A)
}

func TestComposeTinyRaster(t *testing.T) {
	c := newTestCompositor(t)
	assert.True(t, c.Compose(image.NewNRGBA(image.Rect(0, 0, 0, 5))).Bounds().Empty())
	assert.Equal(t, 3, c.Compose(uniform(3, 3, black)).Bounds().Dx())
}

func TestRenderIsDeterministicPNG(t *testing.T) {
	c := newTestCompositor(t)
	raw := uniform(200, 200, white)
	for i := 0; i < 200; i += 7 {
		raw.SetNRGBA(i, i, black)
	}

	a, err := c.Render(raw)
	require.NoError(t, err)
	b, err := c.Render(raw)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	img, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
}

func TestWithBackground(t *testing.T) {
	c := newTestCompositor(t, WithBackground(color.NRGBA{R: 1, G: 2, B: 3, A: 4}))
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, c.Background())

	out := c.Compose(uniform(100, 100, white))
	near(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, out.NRGBAAt(50, 10), "custom disc color")
}

func TestNewRejectsMissingLogo(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, ErrAssetLoad))

	_, err = New(image.NewNRGBA(image.Rectangle{}))
	assert.True(t, errors.Is(err, ErrAssetLoad))
}

func TestDefaultLogo(t *testing.T) {
	logo, err := DefaultLogo()
	require.NoError(t, err)
	assert.Equal(t, 128, logo.Bounds().Dx())
	assert.Equal(t, 128, logo.Bounds().Dy())
}

func TestLoadLogoErrors(t *testing.T) {
	_, err := LoadLogo("logo.jpg", strings.NewReader("not an image"))
	assert.True(t, errors.Is(err, ErrAssetLoad))

	_, err = LoadLogoFile("/nonexistent/logo.png")
	assert.True(t, errors.Is(err, ErrAssetLoad))
}

func TestLoadLogoSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`
	logo, err := LoadLogo("logo.svg", strings.NewReader(svg))
	require.NoError(t, err)
	assert.Equal(t, SVGRasterSize, logo.Bounds().Dx())

	center := color.NRGBAModel.Convert(logo.At(SVGRasterSize/2, SVGRasterSize/2)).(color.NRGBA)
	assert.Greater(t, center.R, uint8(200))
	assert.Less(t, center.G, uint8(50))
	assert.Greater(t, center.A, uint8(200))
}

func TestEncodeJPEGFlattens(t *testing.T) {
	out := newTestCompositor(t).Compose(uniform(64, 64, white))
	data, err := Encode(out, FormatJPEG, DefaultBackground, 90)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, out.Bounds(), img.Bounds())

	// corners were transparent and now carry the opaque background
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.InDelta(t, 0xEA, r>>8, 8)
	assert.InDelta(t, 0xF3, g>>8, 8)
	assert.InDelta(t, 0xFF, b>>8, 8)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJPEG, ParseFormat("JPEG"))
	assert.Equal(t, FormatJPEG, ParseFormat("jpg"))
	assert.Equal(t, FormatPNG, ParseFormat("svg"))
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/jpeg", FormatJPEG.ContentType())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#EAF3FF")
	require.NoError(t, err)
	assert.Equal(t, DefaultBackground, c)

	c, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.Equal(t, black, c)

	for _, bad := range []string{"", "#fff", "#GGGGGG", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
