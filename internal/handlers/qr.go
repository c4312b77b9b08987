package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DbIM/qr-code/internal/compose"
	"github.com/DbIM/qr-code/internal/payment"
)

// HeaderPaymentLink carries the canonical link of a rendered image.
const HeaderPaymentLink = "X-Payment-Link"

// PaymentResponse is returned by CreatePayment.
type PaymentResponse struct {
	Link    string `json:"link"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// QRCodeHandler renders the payment QR for the fields given in the query
// string and streams the image bytes.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	var in payment.Input
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format := compose.ParseFormat(c.DefaultQuery("format", "png"))

	res, err := h.gen.Generate(c.Request.Context(), in, format)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header(HeaderPaymentLink, res.Link)
	c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	if download, _ := strconv.ParseBool(c.Query("download")); download {
		c.Header("Content-Disposition", `attachment; filename="payment-qr.`+string(format)+`"`)
	}
	c.Data(http.StatusOK, format.ContentType(), res.Image)
}

// CreatePayment takes the payment form (JSON or form-encoded) and answers
// with the canonical link and the PNG inlined as a data URL.
func (h *Handler) CreatePayment(c *gin.Context) {
	var in payment.Input
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.gen.Generate(c.Request.Context(), in, compose.FormatPNG)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PaymentResponse{
		Link:    res.Link,
		Content: res.Content,
		Image:   res.DataURL(),
	})
}
