// Package qr turns link strings into QR module matrices and plain rasters.
//
// The symbol encoding itself is delegated to third-party encoders behind the
// Source interface; this package only normalizes their output.
package qr

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrEncoding is wrapped by every Source failure, most commonly content that
// does not fit the largest symbol at the requested level.
var ErrEncoding = errors.New("qr: content cannot be encoded")

// Level is the error correction level of a symbol.
type Level int

const (
	// LevelDefault is the zero value and stands for DefaultLevel.
	LevelDefault Level = iota
	LevelLow
	LevelMedium
	LevelQuartile
	LevelHigh
)

// DefaultLevel is used when no level is given. The branded image clips the
// symbol to a disc and covers its center with the logo; below H the clipped
// finder patterns and the covered modules leave too little to decode.
const DefaultLevel = LevelHigh

func (l Level) orDefault() Level {
	if l == LevelDefault {
		return DefaultLevel
	}
	return l
}

func (l Level) String() string {
	switch l.orDefault() {
	case LevelLow:
		return "L"
	case LevelMedium:
		return "M"
	case LevelQuartile:
		return "Q"
	case LevelHigh:
		return "H"
	}
	return "?"
}

// ParseLevel accepts L/M/Q/H or the spelled-out names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return LevelLow, nil
	case "m", "medium":
		return LevelMedium, nil
	case "q", "quartile", "quart":
		return LevelQuartile, nil
	case "h", "high", "highest":
		return LevelHigh, nil
	}
	return 0, errors.Errorf("unknown error correction level %q", s)
}

// Source encodes content into a module matrix.
type Source interface {
	Encode(content string, level Level) (*Matrix, error)
}

// Backend names accepted by NewSource.
const (
	BackendYeqown    = "yeqown"
	BackendSkip2     = "skip2"
	BackendBoombuler = "boombuler"
	BackendZXing     = "zxing"
)

// NewSource returns the encoder registered under name. An empty name selects
// the default yeqown encoder.
func NewSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendYeqown:
		return YeqownSource{}, nil
	case BackendSkip2:
		return Skip2Source{}, nil
	case BackendBoombuler:
		return BoombulerSource{}, nil
	case BackendZXing:
		return ZXingSource{}, nil
	}
	return nil, errors.Errorf("unknown qr backend %q", name)
}

func encodingError(err error, content string) error {
	return errors.Wrapf(ErrEncoding, "%d bytes: %v", len(content), err)
}
