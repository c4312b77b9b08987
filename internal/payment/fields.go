package payment

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date used on the wire.
const DateLayout = "2006-01-02"

var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Fields holds the payment-identifying values encoded into a link.
// Empty strings and nil pointers mean "not provided".
type Fields struct {
	FirstName  string
	LastName   string
	MiddleName string
	BirthDate  *time.Time
	Amount     *decimal.Decimal
}

// Input is the raw, unparsed form of Fields as a form or API payload submits it.
type Input struct {
	FirstName  string `json:"firstName" form:"firstName"`
	LastName   string `json:"lastName" form:"lastName"`
	MiddleName string `json:"middleName" form:"middleName"`
	BirthDate  string `json:"birthDate" form:"birthDate"`
	Amount     string `json:"amount" form:"amount"`
}

// ValidationError reports a single malformed field value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// FieldErrors collects every ValidationError found in one Input.
type FieldErrors []*ValidationError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ByField maps field keys to their messages.
func (fe FieldErrors) ByField() map[string]string {
	out := make(map[string]string, len(fe))
	for _, e := range fe {
		out[e.Field] = e.Reason
	}
	return out
}

// ParseBirthDate parses a YYYY-MM-DD date. Empty input yields nil; surrounding
// whitespace is a format error.
func ParseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, &ValidationError{Field: KeyBirthDate, Value: s, Reason: "expected date as YYYY-MM-DD"}
	}
	return &t, nil
}

// FormatBirthDate renders t as YYYY-MM-DD.
func FormatBirthDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseAmount parses a plain decimal number with '.' as separator.
// Grouping separators, exponents and negative values are rejected.
func ParseAmount(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	if !amountPattern.MatchString(s) {
		return nil, &ValidationError{Field: KeyAmount, Value: s, Reason: "expected a number like 150.50"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &ValidationError{Field: KeyAmount, Value: s, Reason: err.Error()}
	}
	if d.IsNegative() {
		return nil, &ValidationError{Field: KeyAmount, Value: s, Reason: "must not be negative"}
	}
	return &d, nil
}

// FormatAmount renders d in its shortest plain form, e.g. 150.50 -> "150.5".
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// TrimSpace strips surrounding whitespace from every value. Form input goes
// through it before Fields; scanned links do not.
func (in Input) TrimSpace() Input {
	return Input{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		MiddleName: strings.TrimSpace(in.MiddleName),
		BirthDate:  strings.TrimSpace(in.BirthDate),
		Amount:     strings.TrimSpace(in.Amount),
	}
}

// Fields parses the raw input. All malformed fields are reported together.
func (in Input) Fields() (Fields, error) {
	f := Fields{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		MiddleName: in.MiddleName,
	}

	var errs FieldErrors
	date, err := ParseBirthDate(in.BirthDate)
	if err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	f.BirthDate = date

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	f.Amount = amount

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// Input returns the textual form of f, the inverse of Input.Fields.
func (f Fields) Input() Input {
	in := Input{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		MiddleName: f.MiddleName,
	}
	if f.BirthDate != nil {
		in.BirthDate = FormatBirthDate(*f.BirthDate)
	}
	if f.Amount != nil {
		in.Amount = FormatAmount(*f.Amount)
	}
	return in
}
