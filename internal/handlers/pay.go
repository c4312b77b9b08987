package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/DbIM/qr-code/web/components"
)

// PayAction is where the confirmation page's pay button posts.
const PayAction = "/api/pay"

// PaymentView is where a scanned link lands. Whatever the query holds is
// shown back read-only; malformed values are flagged but never rejected.
// Browsers get the HTML page, Accept: application/json gets the page data.
func (h *Handler) PaymentView(c *gin.Context) {
	page := components.NewPaymentPage(h.gen.Confirm(c.Request.URL.Query()))

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, page)
		return
	}
	action := PayAction
	if q := c.Request.URL.RawQuery; q != "" {
		action += "?" + q
	}
	render(c, components.PaymentView(page, action))
}

func render(c *gin.Context, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}
