package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DbIM/qr-code/internal/generator"
	"github.com/DbIM/qr-code/internal/logger"
	"github.com/DbIM/qr-code/internal/payment"
	"github.com/DbIM/qr-code/internal/qr"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	gen *generator.Service
}

// New returns a new Handler instance.
func New(gen *generator.Service) *Handler { return &Handler{gen: gen} }

// Healthz answers liveness checks.
func (h *Handler) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// abortWithError maps pipeline errors to status codes: bad fields are the
// client's fault, an oversized link cannot be encoded, anything else is ours.
func abortWithError(c *gin.Context, err error) {
	var fe payment.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "invalid payment fields",
			"fields": fe.ByField(),
		})
	case errors.Is(err, qr.ErrEncoding):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": "payment data is too long to fit in a QR code",
		})
	default:
		logger.FromGin(c).Error("qr generation failed", zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
	}
}
