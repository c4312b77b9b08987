package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// PaymentView renders the confirmation page. The pay button posts to payURL
// and swaps the returned toast into #toasts.
func PaymentView(p PaymentPage, payURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="ru"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + templ.EscapeString(p.Title) + `</title>`)
		b.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.4"></script></head>`)
		b.WriteString(`<body><main class="payment"><h1>` + templ.EscapeString(p.Title) + `</h1>`)
		if !p.Valid {
			b.WriteString(`<p class="payment-invalid" role="alert">Некоторые значения не распознаны</p>`)
		}
		b.WriteString(`<dl class="payment-fields">`)
		for _, f := range p.Fields {
			b.WriteString(`<dt>` + templ.EscapeString(f.Label) + `</dt>`)
			b.WriteString(`<dd data-key="` + templ.EscapeString(f.Key) + `"`)
			if msg, ok := p.Errors[f.Key]; ok {
				b.WriteString(` class="invalid" title="` + templ.EscapeString(msg) + `"`)
			}
			b.WriteString(`>` + templ.EscapeString(f.Value) + `</dd>`)
		}
		b.WriteString(`</dl>`)
		b.WriteString(`<button type="button" hx-post="` + templ.EscapeString(string(templ.URL(payURL))) +
			`" hx-target="#toasts" hx-swap="beforeend">Оплатить</button>`)
		b.WriteString(`<div id="toasts"></div></main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ToastProps describes one notification.
type ToastProps struct {
	Title       string
	Description string
	Variant     string
	Duration    int
	Dismissible bool
}

// Toast renders a notification fragment for HTMX swaps.
func Toast(p ToastProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="toast toast-` + templ.EscapeString(p.Variant) +
			`" role="status" data-duration="` + strconv.Itoa(p.Duration) + `">`)
		b.WriteString(`<strong>` + templ.EscapeString(p.Title) + `</strong>`)
		if p.Description != "" {
			b.WriteString(`<p>` + templ.EscapeString(p.Description) + `</p>`)
		}
		if p.Dismissible {
			b.WriteString(`<button type="button" class="toast-close" aria-label="Закрыть">&times;</button>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
