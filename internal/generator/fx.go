package generator

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DbIM/qr-code/internal/cache"
	"github.com/DbIM/qr-code/internal/compose"
	"github.com/DbIM/qr-code/internal/config"
	"github.com/DbIM/qr-code/internal/metrics"
	"github.com/DbIM/qr-code/internal/qr"
)

var Module = fx.Module("generator",
	fx.Provide(NewCompositor),
	fx.Provide(NewFromConfig),
)

// NewCompositor loads the configured logo (or the bundled one). Failing here
// stops startup rather than serving images without a logo.
func NewCompositor(cfg *config.Config) (*compose.Compositor, error) {
	var (
		logo image.Image
		err  error
	)
	if cfg.Image.LogoPath != "" {
		logo, err = compose.LoadLogoFile(cfg.Image.LogoPath)
	} else {
		logo, err = compose.DefaultLogo()
	}
	if err != nil {
		return nil, err
	}

	bg, err := compose.ParseHexColor(cfg.Image.Background)
	if err != nil {
		return nil, errors.Wrap(err, "image.background")
	}
	return compose.New(logo, compose.WithBackground(bg))
}

type Params struct {
	fx.In

	Config     *config.Config
	Compositor *compose.Compositor
	Logger     *zap.Logger      `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`
}

// NewFromConfig wires a Service from configuration.
func NewFromConfig(p Params) (*Service, error) {
	cfg := p.Config
	source, err := qr.NewSource(cfg.QR.Backend)
	if err != nil {
		return nil, err
	}
	level, err := qr.ParseLevel(cfg.QR.Level)
	if err != nil {
		return nil, err
	}

	s := Settings{
		Level:       level,
		Size:        cfg.QR.Size,
		BaseURL:     cfg.Server.PublicBaseURL,
		JPEGQuality: cfg.Image.JPEGQuality,
		Metrics:     p.Metrics,
		Logger:      p.Logger,
	}
	if cfg.Cache.Enabled {
		s.Cache = cache.NewTTLCache[string, []byte](cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}
	return New(source, p.Compositor, s), nil
}
