package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
)

// ParseFormat maps user input to a Format; anything unknown falls back to PNG.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return FormatJPEG
	}
	return FormatPNG
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// EncodePNG serializes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// EncodeJPEG flattens img onto an opaque background (JPEG has no alpha) and
// encodes it. A transparent bg falls back to white.
func EncodeJPEG(img image.Image, bg color.Color, quality int) ([]byte, error) {
	r, g, b, a := bg.RGBA()
	opaque := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
	if a == 0 {
		opaque = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	xdraw.Draw(out, bounds, &image.Uniform{C: opaque}, image.Point{}, xdraw.Src)
	xdraw.Draw(out, bounds, img, bounds.Min, xdraw.Over)

	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	return buf.Bytes(), nil
}

// Encode serializes img in format f.
func Encode(img image.Image, f Format, bg color.Color, quality int) ([]byte, error) {
	if f == FormatJPEG {
		return EncodeJPEG(img, bg, quality)
	}
	return EncodePNG(img)
}

// ParseHexColor reads "#RRGGBB" (the '#' is optional) into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, errors.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
