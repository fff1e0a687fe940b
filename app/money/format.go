package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCurrency = "NGN"
	DefaultLocale   = "en-NG"
)

var symbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"GHS": "GH₵",
	"KES": "KSh",
}

type Formatter struct {
	printer  *message.Printer
	currency string
	prefix   string
}

func NewFormatter(currencyCode, locale string) (*Formatter, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	prefix, ok := symbols[code]
	if !ok {
		prefix = code + " "
	}

	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: code,
		prefix:   prefix,
	}, nil
}

func MustNewFormatter(currencyCode, locale string) *Formatter {
	f, err := NewFormatter(currencyCode, locale)
	if err != nil {
		panic(err)
	}
	return f
}

var defaultFormatter = MustNewFormatter(DefaultCurrency, DefaultLocale)

// Format renders amount with the default NGN formatter.
func Format(amount int64) string {
	return defaultFormatter.Format(amount)
}

func (f *Formatter) Currency() string {
	return f.currency
}

// Format renders amount with no decimal places. Negative amounts keep their
// sign in front of the symbol.
func (f *Formatter) Format(amount int64) string {
	sign := ""
	magnitude := uint64(amount)
	if amount < 0 {
		sign = "-"
		magnitude = uint64(-(amount + 1)) + 1
	}
	return sign + f.prefix + f.printer.Sprintf("%d", magnitude)
}
