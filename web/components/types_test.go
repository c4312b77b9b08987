package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DbIM/qr-code/internal/payment"
)

func TestNewPaymentPage(t *testing.T) {
	page := NewPaymentPage(payment.Confirm(map[string][]string{"firstName": {"Ivan"}, "amount": {"abc"}}))

	assert.Equal(t, PageTitle, page.Title)
	assert.False(t, page.Valid)
	assert.Len(t, page.Fields, 5)
	assert.Equal(t, Field{Key: "firstName", Label: "Имя", Value: "Ivan"}, page.Fields[0])
	assert.Equal(t, Field{Key: "middleName", Label: "Отчество", Value: ""}, page.Fields[2])
	assert.Equal(t, Field{Key: "amount", Label: "Сумма платежа", Value: "abc"}, page.Fields[4])
	assert.Contains(t, page.Errors, "amount")
}

func TestNewPaymentPageValid(t *testing.T) {
	page := NewPaymentPage(payment.Confirm(map[string][]string{"amount": {"150.5"}}))
	assert.True(t, page.Valid)
	assert.Nil(t, page.Errors)
}
