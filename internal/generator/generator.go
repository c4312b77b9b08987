// Package generator runs the payment QR pipeline: fields are encoded into a
// canonical link, the link into a QR matrix, the matrix into a raster and the
// raster into the branded image.
package generator

import (
	"context"
	"encoding/base64"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DbIM/qr-code/internal/cache"
	"github.com/DbIM/qr-code/internal/compose"
	"github.com/DbIM/qr-code/internal/metrics"
	"github.com/DbIM/qr-code/internal/payment"
	"github.com/DbIM/qr-code/internal/qr"
)

// Result is one rendered payment QR.
type Result struct {
	// Link is the canonical relative link, "/pay?...".
	Link string
	// Content is what the QR symbol carries: Link, or Link resolved against
	// the public base URL.
	Content string
	Format  compose.Format
	Image   []byte
}

// DataURL inlines the image for direct display in a page.
func (r *Result) DataURL() string {
	return "data:" + r.Format.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(r.Image)
}

// Settings tunes a Service. Zero values fall back to qr.DefaultLevel, a
// 300px raster and JPEG quality 92.
type Settings struct {
	Level       qr.Level
	Size        int
	BaseURL     string
	JPEGQuality int
	Cache       cache.Cache[string, []byte]
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// Service is safe for concurrent use.
type Service struct {
	source  qr.Source
	comp    *compose.Compositor
	level   qr.Level
	size    int
	baseURL string
	quality int
	cache   cache.Cache[string, []byte]
	metrics *metrics.Metrics
	log     *zap.Logger
}

func New(source qr.Source, comp *compose.Compositor, s Settings) *Service {
	if s.Level == qr.LevelDefault {
		s.Level = qr.DefaultLevel
	}
	if s.Size <= 0 {
		s.Size = 300
	}
	if s.JPEGQuality <= 0 {
		s.JPEGQuality = 92
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return &Service{
		source:  source,
		comp:    comp,
		level:   s.Level,
		size:    s.Size,
		baseURL: s.BaseURL,
		quality: s.JPEGQuality,
		cache:   s.Cache,
		metrics: s.Metrics,
		log:     s.Logger,
	}
}

// Generate validates raw form input and renders it. Values are trimmed first.
// Field problems come back as payment.FieldErrors listing every bad field.
func (s *Service) Generate(ctx context.Context, in payment.Input, format compose.Format) (*Result, error) {
	f, err := in.TrimSpace().Fields()
	if err != nil {
		s.metrics.Generated(metrics.ResultInvalid, string(format))
		return nil, err
	}
	return s.GenerateFields(ctx, f, format)
}

// GenerateFields renders already-typed fields. A link that does not fit in
// a QR symbol returns an error wrapping qr.ErrEncoding.
func (s *Service) GenerateFields(ctx context.Context, f payment.Fields, format compose.Format) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if format == "" {
		format = compose.FormatPNG
	}

	link := payment.Encode(f)
	res := &Result{
		Link:    link,
		Content: payment.Absolute(s.baseURL, link),
		Format:  format,
	}

	key := string(format) + "|" + res.Content
	if s.cache != nil {
		img, ok := s.cache.Get(key)
		s.metrics.CacheLookup(ok)
		if ok {
			res.Image = img
			s.metrics.Generated(metrics.ResultOK, string(format))
			return res, nil
		}
	}

	start := time.Now()
	img, err := s.render(res.Content, format)
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, qr.ErrEncoding) {
			result = metrics.ResultEncoding
		}
		s.metrics.Generated(result, string(format))
		s.log.Warn("payment qr not rendered",
			zap.String("link", link),
			zap.Error(err),
		)
		return nil, err
	}
	elapsed := time.Since(start)
	s.metrics.ObserveRender(elapsed)
	s.metrics.Generated(metrics.ResultOK, string(format))
	s.log.Debug("payment qr rendered",
		zap.String("link", link),
		zap.String("format", string(format)),
		zap.Int("bytes", len(img)),
		zap.Duration("took", elapsed),
	)

	if s.cache != nil {
		s.cache.Set(key, img)
	}
	res.Image = img
	return res, nil
}

func (s *Service) render(content string, format compose.Format) ([]byte, error) {
	m, err := s.source.Encode(content, s.level)
	if err != nil {
		return nil, err
	}
	composed := s.comp.Compose(m.Image(s.size))
	return compose.Encode(composed, format, s.comp.Background(), s.quality)
}

// Confirm reads a scanned link's query and counts the outcome. It never
// fails.
func (s *Service) Confirm(q url.Values) payment.Confirmation {
	c := payment.Confirm(q)
	s.metrics.Confirmed(c.Valid)
	return c
}
