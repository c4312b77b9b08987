package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DbIM/qr-code/internal/logger"
	"github.com/DbIM/qr-code/web/components"
)

// PaymentRegistered is the notification shown after the pay button.
const PaymentRegistered = "Ваш платёж успешно зарегистрирован"

// Toast variants.
const (
	VariantSuccess = "success"
	VariantError   = "error"
	VariantWarning = "warning"
	VariantInfo    = "info"
)

// Toast is a short notification for the display layer.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant"`
	Duration    int    `json:"duration"`
	Dismissible bool   `json:"dismissible"`
}

// Pay acknowledges the pay button on the confirmation view. Nothing is
// charged; the notification is the whole effect.
func (h *Handler) Pay(c *gin.Context) {
	conf := h.gen.Confirm(c.Request.URL.Query())
	logger.FromGin(c).Info("payment registered", zap.Bool("valid", conf.Valid))
	writeToast(c, Toast{
		Title:       PaymentRegistered,
		Variant:     VariantSuccess,
		Duration:    2000,
		Dismissible: true,
	})
}

// GenericToast echoes a notification built from form values.
func (h *Handler) GenericToast(c *gin.Context) {
	var v string
	switch c.PostForm("variant") {
	case "error", "destructive":
		v = VariantError
	case "warning":
		v = VariantWarning
	case "info":
		v = VariantInfo
	default:
		v = VariantSuccess
	}

	writeToast(c, Toast{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     v,
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
	})
}

// writeToast answers HTMX swaps with an HTML fragment and API clients that
// ask for JSON with the struct.
func writeToast(c *gin.Context, t Toast) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, t)
		return
	}
	render(c, components.Toast(components.ToastProps(t)))
}
