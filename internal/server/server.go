// Package server assembles the gin engine and runs it under fx.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DbIM/qr-code/internal/config"
	"github.com/DbIM/qr-code/internal/handlers"
	"github.com/DbIM/qr-code/internal/logger"
	"github.com/DbIM/qr-code/internal/metrics"
)

var Module = fx.Module("server",
	fx.Provide(handlers.New),
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)

type EngineParams struct {
	fx.In

	Handler *handlers.Handler
	Logger  *zap.Logger      `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

// NewEngine wires middleware and routes.
func NewEngine(p EngineParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(metrics.GinMiddleware(p.Metrics))
	r.Use(gin.Recovery())

	h := p.Handler
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Scanned links land here
	r.GET("/pay", h.PaymentView)

	// API routes
	api := r.Group("/api")
	{
		api.POST("/payments", h.CreatePayment)
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/pay", h.Pay)
		api.POST("/toast", h.GenericToast)
	}
	return r
}

// RunHTTP serves r on the configured address for the lifetime of the app.
func RunHTTP(lc fx.Lifecycle, cfg *config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("payment qr service listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
