package payment

import (
	"net/url"

	"github.com/pkg/errors"
)

// Confirmation is what the payer sees after scanning: the raw values for
// display, their typed reading, and whether every value parsed cleanly.
type Confirmation struct {
	View   View
	Fields Fields
	Valid  bool
	// Errors lists the values that did not parse; they are still displayed.
	Errors FieldErrors
}

// Confirm reads a scanned link's query. It never fails: unparseable values
// are kept in View and reported in Errors.
func Confirm(q url.Values) Confirmation {
	c := Confirmation{
		View:   DecodeView(q),
		Fields: Decode(q),
		Valid:  true,
	}
	if _, err := c.View.Input().Fields(); err != nil {
		c.Valid = false
		var fe FieldErrors
		if errors.As(err, &fe) {
			c.Errors = fe
		}
	}
	return c
}
