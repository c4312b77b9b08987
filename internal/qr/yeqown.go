package qr

import (
	qrcode "github.com/yeqown/go-qrcode/v2"
)

// YeqownSource encodes with github.com/yeqown/go-qrcode in byte mode.
type YeqownSource struct{}

func (YeqownSource) Encode(content string, level Level) (*Matrix, error) {
	qrc, err := qrcode.NewWith(content,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		yeqownLevel(level),
	)
	if err != nil {
		return nil, encodingError(err, content)
	}

	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, encodingError(err, content)
	}
	return w.m, nil
}

func yeqownLevel(l Level) qrcode.EncodeOption {
	switch l.orDefault() {
	case LevelLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case LevelHigh:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	}
}

// matrixWriter satisfies qrcode.Writer and keeps the bare module matrix
// instead of drawing it.
type matrixWriter struct {
	m *Matrix
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	w.m = NewMatrix(mat.Width())
	mat.Iterate(qrcode.IterDirection_ROW, func(x int, y int, v qrcode.QRValue) {
		w.m.set(x, y, v.IsSet())
	})
	return nil
}

func (w *matrixWriter) Close() error { return nil }
