package money

import (
	"database/sql/driver"
	"fmt"
)

// Currency type represents a currency from the closed set supported by this
// package. The zero value is [GBP].
//
// Currency is implemented as an integer index into in-memory arrays that
// store the code, symbol, display name, and scale of each supported currency.
// This design makes invalid currency values unrepresentable: every Currency
// obtained through [ParseCurr] or the package constants is a member of the
// supported set, so metadata lookups are total.
//
// When persisting a currency value, use the alphabetic code returned by the
// [Currency.Code] method rather than the integer index, as the mapping
// between index and currency may change in future versions.
type Currency uint8

// Supported currencies.
const (
	GBP Currency = iota // Pound sterling
	USD                 // United States dollar
	EUR                 // Euro
)

var (
	codeLookup   = [...]string{GBP: "GBP", USD: "USD", EUR: "EUR"}
	numLookup    = [...]string{GBP: "826", USD: "840", EUR: "978"}
	symbolLookup = [...]string{GBP: "£", USD: "$", EUR: "€"}
	nameLookup   = [...]string{GBP: "Sterling", USD: "United States dollar", EUR: "Euro"}
	scaleLookup  = [...]int8{GBP: 2, USD: 2, EUR: 2}
)

var currLookup = map[string]Currency{
	"GBP": GBP, "gbp": GBP, "826": GBP,
	"USD": USD, "usd": USD, "840": USD,
	"EUR": EUR, "eur": EUR, "978": EUR,
}

// ParseCurr converts a string to currency.
// The input string must be in one of the following formats:
//
//	USD
//	usd
//	840
//
// ParseCurr returns an error wrapping [ErrInvalidArgument] if the string does
// not represent a supported currency.
func ParseCurr(curr string) (Currency, error) {
	c, ok := currLookup[curr]
	if !ok {
		return GBP, fmt.Errorf("%w: unknown currency %q", ErrInvalidArgument, curr)
	}
	return c, nil
}

// MustParseCurr is like [ParseCurr] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding currencies.
func MustParseCurr(curr string) Currency {
	c, err := ParseCurr(curr)
	if err != nil {
		panic(fmt.Sprintf("ParseCurr(%q) failed: %v", curr, err))
	}
	return c
}

// Code returns the [3-letter code] assigned to the currency by the ISO 4217
// standard.
// This code is a unique identifier of the currency and is used in
// international finance and commerce.
//
// [3-letter code]: https://en.wikipedia.org/wiki/ISO_4217#National_currencies
func (c Currency) Code() string {
	return codeLookup[c]
}

// Num returns the [3-digit code] assigned to the currency by the ISO 4217
// standard.
//
// [3-digit code]: https://en.wikipedia.org/wiki/ISO_4217#Numeric_codes
func (c Currency) Num() string {
	return numLookup[c]
}

// Symbol returns the display symbol of the currency, for example "$" for
// [USD].
func (c Currency) Symbol() string {
	return symbolLookup[c]
}

// Name returns the display name of the currency, for example
// "United States dollar" for [USD].
func (c Currency) Name() string {
	return nameLookup[c]
}

// Scale returns the number of digits after the decimal point required for
// representing the minor unit of the currency.
// All currently supported currencies use a scale of 2: one minor unit is
// represented as 0.01 major units.
func (c Currency) Scale() int {
	return int(scaleLookup[c])
}

// String method implements the [fmt.Stringer] interface and returns
// the 3-letter code of the currency.
// See also method [Currency.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseCurr].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Currency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", GBP, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a quoted 3-letter code.
// See also method [Currency.Code].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Currency) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 5)
	text = append(text, '"')
	text = append(text, c.Code()...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseCurr].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", GBP, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns a 3-letter code.
// See also method [Currency.Code].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (c *Currency) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*c, err = ParseCurr(value)
	case []byte:
		*c, err = ParseCurr(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T", GBP, NullCurrency{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, GBP, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (c Currency) Value() (driver.Value, error) {
	return c.Code(), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description     |
//	| ---------- | ------- | --------------- |
//	| %c, %s, %v | USD     | Currency        |
//	| %q         | "USD"   | Quoted currency |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (c Currency) Format(state fmt.State, verb rune) {
	curr := c.Code()
	currlen := len(curr)

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + currlen + tquote
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

	// Currency code
	for i := 0; i < currlen; i++ {
		buf[pos] = curr[currlen-i-1]
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
	case 'q', 'Q', 's', 'S', 'v', 'V', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.Currency="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// NullCurrency represents a currency that can be null.
// Its zero value is null.
// NullCurrency is not thread-safe.
type NullCurrency struct {
	Currency Currency
	Valid    bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Currency.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullCurrency) Scan(value any) error {
	if value == nil {
		n.Currency = GBP
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Currency.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Currency.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullCurrency) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Currency.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Currency.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullCurrency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		n.Currency = GBP
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Currency.UnmarshalJSON(text)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Currency.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullCurrency) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Currency.MarshalJSON()
}
