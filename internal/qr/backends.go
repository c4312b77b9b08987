package qr

import (
	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
	skip2 "github.com/skip2/go-qrcode"
)

// Skip2Source encodes with github.com/skip2/go-qrcode.
type Skip2Source struct{}

func (Skip2Source) Encode(content string, level Level) (*Matrix, error) {
	var rl skip2.RecoveryLevel
	switch level.orDefault() {
	case LevelLow:
		rl = skip2.Low
	case LevelMedium:
		rl = skip2.Medium
	case LevelHigh:
		rl = skip2.Highest
	default:
		rl = skip2.High
	}

	q, err := skip2.New(content, rl)
	if err != nil {
		return nil, encodingError(err, content)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()
	return cropDark(len(bitmap), func(x, y int) bool {
		return x < len(bitmap[y]) && bitmap[y][x]
	}), nil
}

// BoombulerSource encodes with github.com/boombuler/barcode/qr.
type BoombulerSource struct{}

func (BoombulerSource) Encode(content string, level Level) (*Matrix, error) {
	var ecl bqr.ErrorCorrectionLevel
	switch level.orDefault() {
	case LevelLow:
		ecl = bqr.L
	case LevelMedium:
		ecl = bqr.M
	case LevelHigh:
		ecl = bqr.H
	default:
		ecl = bqr.Q
	}

	code, err := bqr.Encode(content, ecl, bqr.Auto)
	if err != nil {
		return nil, encodingError(err, content)
	}
	return fromBarcode(code), nil
}

func fromBarcode(code barcode.Barcode) *Matrix {
	b := code.Bounds()
	return cropDark(b.Dx(), func(x, y int) bool {
		r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return r < 0x8000
	})
}

// ZXingSource encodes with github.com/makiuchi-d/gozxing, the Go port of the
// ZXing QR writer.
type ZXingSource struct{}

func (ZXingSource) Encode(content string, level Level) (*Matrix, error) {
	var ecl decoder.ErrorCorrectionLevel
	switch level.orDefault() {
	case LevelLow:
		ecl = decoder.ErrorCorrectionLevel_L
	case LevelMedium:
		ecl = decoder.ErrorCorrectionLevel_M
	case LevelHigh:
		ecl = decoder.ErrorCorrectionLevel_H
	default:
		ecl = decoder.ErrorCorrectionLevel_Q
	}

	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: ecl,
	}
	bm, err := zxingqr.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, 0, 0, hints)
	if err != nil {
		return nil, encodingError(err, content)
	}
	return cropDark(bm.GetWidth(), bm.Get), nil
}

// cropDark copies the dark modules of an n×n grid into a Matrix trimmed to
// the bounding box of its dark modules. The three finder patterns span the
// whole symbol, so this strips any quiet zone an encoder may have added.
func cropDark(n int, dark func(x, y int) bool) *Matrix {
	minX, minY, maxX, maxY := n, n, -1, -1
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !dark(x, y) {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return NewMatrix(0)
	}

	size := max(maxX-minX, maxY-minY) + 1
	m := NewMatrix(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if minX+x < n && minY+y < n {
				m.set(x, y, dark(minX+x, minY+y))
			}
		}
	}
	return m
}
