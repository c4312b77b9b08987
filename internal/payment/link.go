package payment

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// PathPrefix is the fixed path every canonical link starts with.
const PathPrefix = "/pay"

// Query keys, in the order they are emitted.
const (
	KeyFirstName  = "firstName"
	KeyLastName   = "lastName"
	KeyMiddleName = "middleName"
	KeyBirthDate  = "birthDate"
	KeyAmount     = "amount"
)

var keyOrder = [...]string{KeyFirstName, KeyLastName, KeyMiddleName, KeyBirthDate, KeyAmount}

// Encode builds the canonical link for f. Keys always come out in the same
// order and empty values are left out, so equal Fields give equal strings.
func Encode(f Fields) string {
	in := f.Input()
	values := [...]string{in.FirstName, in.LastName, in.MiddleName, in.BirthDate, in.Amount}

	var b strings.Builder
	b.WriteString(PathPrefix)
	sep := byte('?')
	for i, key := range keyOrder {
		if values[i] == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(values[i]))
		sep = '&'
	}
	return b.String()
}

// View is the confirmation-side reading of a link: the first value of every
// key exactly as received, malformed or not.
type View struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	BirthDate  string `json:"birthDate"`
	Amount     string `json:"amount"`
}

// DecodeView never fails: missing keys become empty strings and unknown keys
// are ignored.
func DecodeView(q url.Values) View {
	return View{
		FirstName:  first(q, KeyFirstName),
		LastName:   first(q, KeyLastName),
		MiddleName: first(q, KeyMiddleName),
		BirthDate:  first(q, KeyBirthDate),
		Amount:     first(q, KeyAmount),
	}
}

// Input converts the view back into parseable input.
func (v View) Input() Input {
	return Input(v)
}

// Decode reads typed Fields from query parameters. It is lenient: a date or
// amount that does not parse is treated as absent instead of failing.
func Decode(q url.Values) Fields {
	v := DecodeView(q)
	f := Fields{
		FirstName:  v.FirstName,
		LastName:   v.LastName,
		MiddleName: v.MiddleName,
	}
	if d, err := ParseBirthDate(v.BirthDate); err == nil {
		f.BirthDate = d
	}
	if a, err := ParseAmount(v.Amount); err == nil {
		f.Amount = a
	}
	return f
}

// ParseLink splits a canonical (or absolute) link and reads it the way the
// confirmation view does. Only the path is checked: it must be /pay, possibly
// below a base path such as https://host/app/pay.
func ParseLink(link string) (Confirmation, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return Confirmation{}, errors.Wrap(err, "parse link")
	}
	if !IsLinkPath(u.Path) {
		return Confirmation{}, errors.Errorf("link path %q is not %s", u.Path, PathPrefix)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Confirmation{}, errors.Wrap(err, "parse link query")
	}
	return Confirm(q), nil
}

// IsLinkPath reports whether p is PathPrefix or ends in it. PathPrefix
// carries its leading slash, so /repay and /pay/x do not match.
func IsLinkPath(p string) bool {
	return strings.HasSuffix(p, PathPrefix)
}

// NormalizeBaseURL validates an http(s) origin that links are resolved
// against. An empty string is allowed and means "keep links relative".
func NormalizeBaseURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", nil
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", errors.Wrap(err, "invalid base URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("only http and https base URLs are supported")
	}
	if u.Host == "" {
		return "", errors.New("base URL must include a host")
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/"), nil
}

// Absolute joins a normalized base URL and a canonical link.
func Absolute(base, link string) string {
	if base == "" {
		return link
	}
	return base + link
}

func first(q url.Values, key string) string {
	if vs := q[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
