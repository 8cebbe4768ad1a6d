package money

import (
	"fmt"

	"github.com/govalues/decimal"
)

// ExchangeRate represents a unidirectional exchange rate between two
// currencies.
// The zero value corresponds to "GBP/GBP 0", which is not a valid rate and
// cannot be used for conversion.
// ExchangeRate is an immutable value and is safe for concurrent use by
// multiple goroutines.
type ExchangeRate struct {
	base  Currency        // currency being exchanged
	quote Currency        // currency being obtained in exchange for the base currency
	rate  decimal.Decimal // units of quote currency per 1 unit of the base currency
}

// NewExchRate returns a new exchange rate between the base and quote
// currencies.
//
// NewExchRate returns an error wrapping [ErrInvalidArgument] if the rate is
// not positive, or if the currencies are equal and the rate is not equal
// to 1.
func NewExchRate(base, quote Currency, rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPos() {
		return ExchangeRate{}, fmt.Errorf("%w: exchange rate must be positive", ErrInvalidArgument)
	}
	if base == quote && !rate.IsOne() {
		return ExchangeRate{}, fmt.Errorf("%w: exchange rate between identical currencies must be equal to 1", ErrInvalidArgument)
	}
	return ExchangeRate{base: base, quote: quote, rate: rate}, nil
}

// ParseExchRate converts currency and decimal strings to an exchange rate.
// See also constructors [ParseCurr] and [decimal.Parse].
func ParseExchRate(base, quote, rate string) (ExchangeRate, error) {
	b, err := ParseCurr(base)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("parsing base currency: %w", err)
	}
	q, err := ParseCurr(quote)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("parsing quote currency: %w", err)
	}
	d, err := decimal.Parse(rate)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("parsing rate: %w", err)
	}
	r, err := NewExchRate(b, q, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("constructing rate: %w", err)
	}
	return r, nil
}

// MustParseExchRate is like [ParseExchRate] but panics if any of the strings
// cannot be parsed.
// It simplifies safe initialization of global variables holding exchange
// rates.
func MustParseExchRate(base, quote, rate string) ExchangeRate {
	r, err := ParseExchRate(base, quote, rate)
	if err != nil {
		panic(fmt.Sprintf("ParseExchRate(%q, %q, %q) failed: %v", base, quote, rate, err))
	}
	return r
}

// Base returns the currency being exchanged.
func (r ExchangeRate) Base() Currency {
	return r.base
}

// Quote returns the currency being obtained in exchange for the base
// currency.
func (r ExchangeRate) Quote() Currency {
	return r.quote
}

// Rate returns the decimal value of the exchange rate.
func (r ExchangeRate) Rate() decimal.Decimal {
	return r.rate
}

// CanConv returns true if [ExchangeRate.Conv] can be used to convert the
// given amount.
func (r ExchangeRate) CanConv(b Amount) bool {
	return b.Curr() == r.Base() && r.rate.IsPos()
}

// Conv returns the amount converted from the base currency to the quote
// currency.
// The result is rounded to the scale of the quote currency using
// [rounding half to even] (banker's rounding).
//
// Conv returns an error wrapping [ErrCurrencyMismatch] if the currency of
// the given amount does not match the base currency of the exchange rate.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r ExchangeRate) Conv(b Amount) (Amount, error) {
	c, err := r.conv(b)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v to %v: %w", b, r.Quote(), err)
	}
	return c, nil
}

func (r ExchangeRate) conv(b Amount) (Amount, error) {
	if !r.CanConv(b) {
		return Amount{}, ErrCurrencyMismatch
	}
	d, err := b.Decimal()
	if err != nil {
		return Amount{}, err
	}
	d, err = d.Mul(r.rate)
	if err != nil {
		return Amount{}, err
	}
	q := Amount{curr: r.quote}
	return q.fromDecimal(d)
}

// Mul returns an exchange rate with the same base and quote currencies,
// but with the rate multiplied by factor e.
//
// Mul returns an error wrapping [ErrInvalidArgument] if the factor is not
// positive.
func (r ExchangeRate) Mul(e decimal.Decimal) (ExchangeRate, error) {
	if !e.IsPos() {
		return ExchangeRate{}, fmt.Errorf("multiplying %v by %v: %w: factor must be positive", r, e, ErrInvalidArgument)
	}
	d, err := r.rate.Mul(e)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("multiplying %v by %v: %w", r, e, err)
	}
	q, err := NewExchRate(r.base, r.quote, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("multiplying %v by %v: %w", r, e, err)
	}
	return q, nil
}

// Inv returns the inverse of the exchange rate.
//
// Inv returns an error wrapping [ErrDivisionByZero] if the rate is zero,
// which is only the case for the zero value of ExchangeRate.
func (r ExchangeRate) Inv() (ExchangeRate, error) {
	if r.rate.IsZero() {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, ErrDivisionByZero)
	}
	one := r.rate.One()
	d, err := one.Quo(r.rate)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	q, err := NewExchRate(r.quote, r.base, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	return q, nil
}

// SameCurr returns true if exchange rates are denominated in the same base
// and quote currencies.
// See also methods [ExchangeRate.Base] and [ExchangeRate.Quote].
func (r ExchangeRate) SameCurr(q ExchangeRate) bool {
	return q.Base() == r.Base() && q.Quote() == r.Quote()
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the exchange rate, for example "USD/EUR 0.9097".
// See also methods [Currency.String] and [ExchangeRate.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r ExchangeRate) String() string {
	return r.Base().String() + "/" + r.Quote().String() + " " + r.rate.String()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example          | Description           |
//	| ------ | ---------------- | --------------------- |
//	| %s, %v | USD/EUR 0.9      | Currency pair and rate|
//	| %q     | "USD/EUR 0.9"    | Quoted pair and rate  |
//	| %f     | 0.9              | Rate                  |
//	| %c     | USD/EUR          | Currency pair         |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (r ExchangeRate) Format(state fmt.State, verb rune) {
	var s string
	switch verb {
	case 'c', 'C':
		s = r.Base().Code() + "/" + r.Quote().Code()
	case 'f', 'F':
		s = r.rate.String()
	default:
		s = r.String()
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + len(s) + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for i := 0; i < tspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	for i := 0; i < tquote; i++ {
		buf[pos] = '"'
		pos--
	}

	// Currency pair and rate
	for i := len(s); i > 0; i-- {
		buf[pos] = s[i-1]
		pos--
	}

	// Opening quote
	for i := 0; i < lquote; i++ {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for i := 0; i < lspaces; i++ {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.ExchangeRate="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
