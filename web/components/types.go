package components

import "github.com/DbIM/qr-code/internal/payment"

// PageTitle heads the confirmation view.
const PageTitle = "Подтверждение платежа"

// Field is one read-only row of the confirmation view.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// PaymentPage is the data the display layer renders after a link is scanned.
type PaymentPage struct {
	Title  string            `json:"title"`
	Fields []Field           `json:"fields"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Labels as shown on the payment form.
var Labels = map[string]string{
	payment.KeyFirstName:  "Имя",
	payment.KeyLastName:   "Фамилия",
	payment.KeyMiddleName: "Отчество",
	payment.KeyBirthDate:  "Дата платежа",
	payment.KeyAmount:     "Сумма платежа",
}

// NewPaymentPage lays out a confirmation in link order. Values are shown
// exactly as they arrived, including ones that failed to parse.
func NewPaymentPage(c payment.Confirmation) PaymentPage {
	v := c.View
	values := [...]struct{ key, value string }{
		{payment.KeyFirstName, v.FirstName},
		{payment.KeyLastName, v.LastName},
		{payment.KeyMiddleName, v.MiddleName},
		{payment.KeyBirthDate, v.BirthDate},
		{payment.KeyAmount, v.Amount},
	}
	page := PaymentPage{
		Title:  PageTitle,
		Fields: make([]Field, 0, len(values)),
		Valid:  c.Valid,
	}
	if len(c.Errors) > 0 {
		page.Errors = c.Errors.ByField()
	}
	for _, kv := range values {
		page.Fields = append(page.Fields, Field{Key: kv.key, Label: Labels[kv.key], Value: kv.value})
	}
	return page
}
