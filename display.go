package money

// displayOptions hold the recognized rendering options of [Amount.Display].
type displayOptions struct {
	symbol    bool   // prepend the currency symbol
	code      bool   // append the currency code
	separator string // thousands-grouping token
	delimiter string // decimal-point token
}

func defaultDisplayOptions() displayOptions {
	return displayOptions{
		symbol:    true,
		code:      false,
		separator: ",",
		delimiter: ".",
	}
}

// DisplayOption configures the rendering performed by [Amount.Display].
type DisplayOption func(*displayOptions)

// WithSymbol controls whether the currency symbol is prepended to the
// rendered amount.
// The default is true.
func WithSymbol(show bool) DisplayOption {
	return func(o *displayOptions) {
		o.symbol = show
	}
}

// WithCode controls whether the 3-letter currency code, preceded by a space,
// is appended to the rendered amount.
// The default is false.
func WithCode(show bool) DisplayOption {
	return func(o *displayOptions) {
		o.code = show
	}
}

// WithSeparator sets the token inserted between groups of three integer
// digits.
// The default is ",".
func WithSeparator(sep string) DisplayOption {
	return func(o *displayOptions) {
		o.separator = sep
	}
}

// WithDelimiter sets the token inserted between the integer and the
// minor-unit digits.
// The default is ".".
func WithDelimiter(del string) DisplayOption {
	return func(o *displayOptions) {
		o.delimiter = del
	}
}

// Display renders the amount for humans: the integer digits are grouped in
// threes, and the minor-unit digits always follow the delimiter, zero-padded
// so that there is at least one digit before the delimiter and exactly two
// after it.
//
//	MustNewAmount("USD", 0).Display()        // $0.00
//	MustNewAmount("USD", 5).Display()        // $0.05
//	MustNewAmount("GBP", 123456).Display()   // £1,234.56
//	MustNewAmount("GBP", -9).Display()       // -£0.09
//
// The rendering is adjusted with options:
//
//	MustNewAmount("EUR", 100000).Display(
//		WithSeparator("."),
//		WithDelimiter(","),
//		WithCode(true),
//	) // €1.000,00 EUR
//
// See also methods [Amount.String] and [Amount.Format].
func (a Amount) Display(opts ...DisplayOption) string {
	o := defaultDisplayOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Digit counts
	u := absUnits(a.units)
	fracdigs := a.curr.Scale()
	intdigs := prec(u) - fracdigs
	if intdigs < 1 {
		intdigs = 1 // leading 0
	}
	nseps := (intdigs - 1) / 3

	// Sign
	rsign := 0
	if a.units < 0 {
		rsign = 1
	}

	// Currency symbol and code
	symbol := ""
	if o.symbol {
		symbol = a.curr.Symbol()
	}
	curr, currdel := "", 0
	if o.code {
		curr = a.curr.Code()
		currdel = 1
	}

	width := rsign + len(symbol) + intdigs + nseps*len(o.separator) +
		len(o.delimiter) + fracdigs + currdel + len(curr)

	buf := make([]byte, width)
	pos := width - 1

	// Currency code
	for i := len(curr); i > 0; i-- {
		buf[pos] = curr[i-1]
		pos--
	}
	if currdel > 0 {
		buf[pos] = ' '
		pos--
	}

	// Fractional digits
	for i := 0; i < fracdigs; i++ {
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
	}

	// Delimiter
	for i := len(o.delimiter); i > 0; i-- {
		buf[pos] = o.delimiter[i-1]
		pos--
	}

	// Integer digits, grouped in threes from the least significant
	for i := 0; i < intdigs; i++ {
		if i > 0 && i%3 == 0 {
			for j := len(o.separator); j > 0; j-- {
				buf[pos] = o.separator[j-1]
				pos--
			}
		}
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
	}

	// Currency symbol
	for i := len(symbol); i > 0; i-- {
		buf[pos] = symbol[i-1]
		pos--
	}

	// Arithmetic sign
	if rsign > 0 {
		buf[pos] = '-'
	}

	return string(buf)
}
