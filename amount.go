package money

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/govalues/decimal"
)

// Sentinel errors returned by this package.
// Use [errors.Is] to test for them, as returned errors carry additional
// context describing the failed operation.
var (
	// ErrInvalidArgument indicates a malformed input, such as an unknown
	// currency code or an empty, negative, or zero-sum set of allocation
	// weights.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCurrencyMismatch indicates a binary operation on amounts
	// denominated in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrDivisionByZero indicates a zero divisor or a non-positive number
	// of parts given to [Amount.Split].
	ErrDivisionByZero = errors.New("division by zero")
)

var errAmountOverflow = errors.New("amount overflow")

// Amount type represents a monetary value as an integer count of minor
// currency units (e.g. cents).
// Its zero value corresponds to "GBP 0.00".
// Amount is an immutable value and is safe for concurrent use by multiple
// goroutines.
//
// Two amounts are equal if and only if both their currencies and their
// minor-unit counts are equal, so amounts can be compared with ==.
type Amount struct {
	curr  Currency // currency of the amount
	units int64    // signed count of minor currency units
}

func newAmount(c Currency, units int64) Amount {
	return Amount{curr: c, units: units}
}

// NewAmount returns an amount of the given number of minor currency units
// (e.g. cents, pence) denominated in the given currency.
//
// NewAmount returns an error wrapping [ErrInvalidArgument] if the currency
// code is not supported.
// See also constructor [ParseCurr].
func NewAmount(curr string, units int64) (Amount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	return newAmount(c, units), nil
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be
// constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(curr string, units int64) Amount {
	a, err := NewAmount(curr, units)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%q, %v) failed: %v", curr, units, err))
	}
	return a
}

// Curr returns the currency of the amount.
func (a Amount) Curr() Currency {
	return a.curr
}

// MinorUnits returns the amount as an integer count of minor currency units.
// See also constructor [NewAmount].
func (a Amount) MinorUnits() int64 {
	return a.units
}

// Decimal returns the decimal representation of the amount in major currency
// units, for example 1.50 for an amount of 150 cents.
func (a Amount) Decimal() (decimal.Decimal, error) {
	d, err := decimal.New(a.units, a.curr.Scale())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", a, err)
	}
	return d, nil
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	switch {
	case a.units < 0:
		return -1
	case a.units > 0:
		return 1
	}
	return 0
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.units < 0
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.units > 0
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.units == 0
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	if a.units < 0 {
		return newAmount(a.curr, -a.units)
	}
	return a
}

// Neg returns an amount with the opposite sign.
func (a Amount) Neg() Amount {
	return newAmount(a.curr, -a.units)
}

// Zero returns an amount with a value of 0, having the same currency as
// amount a.
func (a Amount) Zero() Amount {
	return newAmount(a.curr, 0)
}

// SameCurr returns true if amounts are denominated in the same currency.
// See also method [Amount.Curr].
func (a Amount) SameCurr(b Amount) bool {
	return a.curr == b.curr
}

// Add returns the sum of amounts a and b.
//
// Add returns an error if:
//   - amounts are denominated in different currencies;
//   - the result overflows the range of int64 minor units.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	if !a.SameCurr(b) {
		return Amount{}, ErrCurrencyMismatch
	}
	s := a.units + b.units
	if (b.units > 0 && s < a.units) || (b.units < 0 && s > a.units) {
		return Amount{}, errAmountOverflow
	}
	return newAmount(a.curr, s), nil
}

// Sub returns the difference between amounts a and b.
//
// Sub returns an error if:
//   - amounts are denominated in different currencies;
//   - the result overflows the range of int64 minor units.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	if !a.SameCurr(b) {
		return Amount{}, ErrCurrencyMismatch
	}
	s := a.units - b.units
	if (b.units < 0 && s < a.units) || (b.units > 0 && s > a.units) {
		return Amount{}, errAmountOverflow
	}
	return newAmount(a.curr, s), nil
}

// Mul returns the product of amount a and factor e, rounded to the scale of
// the currency using [rounding half to even] (banker's rounding).
//
// Mul returns an error if the result overflows the range of int64 minor
// units.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) Mul(e decimal.Decimal) (Amount, error) {
	c, err := a.mul(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) mul(e decimal.Decimal) (Amount, error) {
	d, err := a.Decimal()
	if err != nil {
		return Amount{}, err
	}
	d, err = d.Mul(e)
	if err != nil {
		return Amount{}, err
	}
	return a.fromDecimal(d)
}

// Quo returns the quotient of amount a and divisor e, rounded to the scale
// of the currency using [rounding half to even] (banker's rounding).
// See also methods [Amount.Split] and [Amount.Allocate].
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the result overflows the range of int64 minor units.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) Quo(e decimal.Decimal) (Amount, error) {
	c, err := a.quo(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) quo(e decimal.Decimal) (Amount, error) {
	if e.IsZero() {
		return Amount{}, ErrDivisionByZero
	}
	d, err := a.Decimal()
	if err != nil {
		return Amount{}, err
	}
	d, err = d.Quo(e)
	if err != nil {
		return Amount{}, err
	}
	return a.fromDecimal(d)
}

// fromDecimal converts a decimal number of major units back to an amount
// denominated in the currency of amount a, rounding half to even at the
// scale of the currency.
func (a Amount) fromDecimal(d decimal.Decimal) (Amount, error) {
	scale := a.curr.Scale()
	whole, frac, ok := d.Int64(scale)
	if !ok {
		return Amount{}, errAmountOverflow
	}
	pow := int64(1)
	for i := 0; i < scale; i++ {
		pow *= 10
	}
	if whole > math.MaxInt64/pow || whole < math.MinInt64/pow {
		return Amount{}, errAmountOverflow
	}
	units := whole * pow
	if (frac > 0 && units > math.MaxInt64-frac) || (frac < 0 && units < math.MinInt64-frac) {
		return Amount{}, errAmountOverflow
	}
	return newAmount(a.curr, units+frac), nil
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// See also method [Amount.CmpAbs].
//
// Cmp returns an error if amounts are denominated in different currencies.
func (a Amount) Cmp(b Amount) (int, error) {
	if !a.SameCurr(b) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, ErrCurrencyMismatch)
	}
	return cmpInt64(a.units, b.units), nil
}

// CmpAbs compares absolute values of amounts and returns:
//
//	-1 if |a| < |b|
//	 0 if |a| = |b|
//	+1 if |a| > |b|
//
// See also method [Amount.Cmp].
//
// CmpAbs returns an error if amounts are denominated in different currencies.
func (a Amount) CmpAbs(b Amount) (int, error) {
	if !a.SameCurr(b) {
		return 0, fmt.Errorf("comparing [abs(%v)] and [abs(%v)]: %w", a, b, ErrCurrencyMismatch)
	}
	return cmpUint64(absUnits(a.units), absUnits(b.units)), nil
}

func cmpInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func cmpUint64(x, y uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// absUnits returns the magnitude of a minor-unit count.
// The result is exact even for math.MinInt64.
func absUnits(units int64) uint64 {
	u := uint64(units)
	if units < 0 {
		u = -u
	}
	return u
}

// Min returns the smaller amount.
//
// Min returns an error if amounts are denominated in different currencies.
func (a Amount) Min(b Amount) (Amount, error) {
	switch c, err := a.Cmp(b); {
	case err != nil:
		return Amount{}, err
	case c <= 0: // a <= b
		return a, nil
	default:
		return b, nil
	}
}

// Max returns the larger amount.
//
// Max returns an error if amounts are denominated in different currencies.
func (a Amount) Max(b Amount) (Amount, error) {
	switch c, err := a.Cmp(b); {
	case err != nil:
		return Amount{}, err
	case c >= 0: // a >= b
		return a, nil
	default:
		return b, nil
	}
}

// Allocate distributes the amount into weighted parts, one per weight, in
// input order.
// Each part is the truncated weighted portion of the amount; the remaining
// minor units, of which there are fewer than the number of weights, are then
// distributed one by one to the leading parts.
// The sum of the returned parts is always exactly equal to the original
// amount, for positive, negative, and zero amounts alike.
// See also method [Amount.Split].
//
// Allocate returns an error wrapping [ErrInvalidArgument] if no weights are
// given, if any weight is negative, or if the sum of the weights is zero or
// overflows the range of int64.
func (a Amount) Allocate(weights ...int) ([]Amount, error) {
	r, err := a.allocate(weights)
	if err != nil {
		return nil, fmt.Errorf("allocating %v among %v parts: %w", a, len(weights), err)
	}
	return r, nil
}

func (a Amount) allocate(weights []int) ([]Amount, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: parts cannot be empty", ErrInvalidArgument)
	}
	var sum int64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: all parts must be non-negative integers", ErrInvalidArgument)
		}
		if int64(w) > math.MaxInt64-sum {
			return nil, fmt.Errorf("%w: sum of all parts must not overflow int64", ErrInvalidArgument)
		}
		sum += int64(w)
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: sum of all parts must be greater than zero", ErrInvalidArgument)
	}

	// Quota shares, truncated toward zero.
	// The product units*weight can exceed 64 bits, so it is kept in a
	// 128-bit intermediate; weight <= sum guarantees the quotient fits
	// back into 64 bits.
	u := absUnits(a.units)
	res := make([]Amount, len(weights))
	var total int64
	for i, w := range weights {
		hi, lo := bits.Mul64(u, uint64(w))
		quo, _ := bits.Div64(hi, lo, uint64(sum))
		share := int64(quo)
		if a.units < 0 {
			share = -share
		}
		res[i] = newAmount(a.curr, share)
		total += share
	}

	// Truncation leaves fewer leftover units than there are parts.
	// They go to the leading parts, which makes weight order an observable
	// part of the contract.
	left := a.units - total
	step := int64(1)
	if left < 0 {
		step = -1
		left = -left
	}
	for i := int64(0); i < left; i++ {
		res[i].units += step
	}
	return res, nil
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the original amount cannot be divided equally among the specified
// number of parts, the remaining minor units are distributed one by one to
// the leading parts.
// See also method [Amount.Allocate].
//
// Split returns an error wrapping [ErrDivisionByZero] if the number of parts
// is not positive.
func (a Amount) Split(parts int) ([]Amount, error) {
	r, err := a.split(parts)
	if err != nil {
		return nil, fmt.Errorf("splitting %v into %v parts: %w", a, parts, err)
	}
	return r, nil
}

func (a Amount) split(parts int) ([]Amount, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("%w: number of parts must be positive", ErrDivisionByZero)
	}
	if parts == 1 {
		return []Amount{a}, nil
	}

	base := a.units / int64(parts)
	left := a.units - base*int64(parts)
	step := int64(1)
	if left < 0 {
		step = -1
		left = -left
	}

	res := make([]Amount, parts)
	for i := range res {
		res[i] = newAmount(a.curr, base)
		if int64(i) < left {
			res[i].units += step
		}
	}
	return res, nil
}

// roundUnits divides a minor-unit count by 10^drop using
// rounding half to even and returns the shortened count.
func roundUnits(units int64, drop int) int64 {
	pow := int64(1)
	for ; drop > 0; drop-- {
		pow *= 10
	}
	q, r := units/pow, units%pow
	if r < 0 {
		r = -r
	}
	if half := pow / 2; r > half || (r == half && q%2 != 0) {
		if units > 0 {
			q++
		} else {
			q--
		}
	}
	return q
}

// prec returns the number of decimal digits in the magnitude u.
// The result for 0 is 1.
func prec(u uint64) int {
	n := 1
	for u >= 10 {
		u /= 10
		n++
	}
	return n
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of an amount, for example "USD 1.50".
// See also methods [Currency.String], [Amount.Display], [Amount.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	var buf [32]byte
	pos := len(buf) - 1
	u := absUnits(a.units)
	scale := a.curr.Scale()

	// Digits
	for {
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
		if scale > 0 {
			scale--
			// Decimal point
			if scale == 0 {
				buf[pos] = '.'
				pos--
				// Leading 0
				if u == 0 {
					buf[pos] = '0'
					pos--
				}
			}
		}
		if u == 0 && scale == 0 {
			break
		}
	}

	// Sign
	if a.units < 0 {
		buf[pos] = '-'
		pos--
	}

	// Delimiter
	buf[pos] = ' '
	pos--

	// Currency
	curr := a.curr.Code()
	for i := len(curr) - 1; i >= 0; i-- {
		buf[pos] = curr[i]
		pos--
	}

	return string(buf[pos+1:])
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example    | Description                |
//	| ------ | ---------- | -------------------------- |
//	| %s, %v | USD 1.50   | Currency and amount        |
//	| %q     | "USD 1.50" | Quoted currency and amount |
//	| %f     | 1.50       | Amount in major units      |
//	| %d     | 150        | Amount in minor units      |
//	| %c     | USD        | Currency                   |
//
// The '-' format flag can be used with all verbs.
// The '+', ' ', '0' format flags can be used with all verbs except %c.
//
// Precision is only supported for the %f verb.
// The default precision is equal to the scale of the currency; a smaller
// precision rounds half to even.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	c := a.curr
	units := a.units

	// Rescaling
	scale := c.Scale()
	tzeros := 0
	if verb == 'f' || verb == 'F' {
		if p, ok := state.Precision(); ok {
			switch {
			case p < scale:
				units = roundUnits(units, scale-p)
				scale = p
			case p > scale:
				tzeros = p - scale
			}
		}
	}

	// Integer and fractional digits
	u := absUnits(units)
	intdigs, fracdigs := 0, 0
	switch aprec := prec(u); verb {
	case 'c', 'C':
		// skip
	case 'd', 'D':
		intdigs = aprec
	default:
		fracdigs = scale
		if aprec > fracdigs {
			intdigs = aprec - fracdigs
		} else {
			intdigs = 1 // leading 0
		}
	}

	// Decimal point
	dpoint := 0
	if fracdigs > 0 || tzeros > 0 {
		dpoint = 1
	}

	// Arithmetic sign
	rsign := 0
	if verb != 'c' && verb != 'C' && (units < 0 || state.Flag('+') || state.Flag(' ')) {
		rsign = 1
	}

	// Currency code and delimiter
	curr, currsyms, currdel := "", 0, 0
	switch verb {
	case 'f', 'F', 'd', 'D':
		// skip
	case 'c', 'C':
		curr = c.Code()
		currsyms = len(curr)
	default:
		curr = c.Code()
		currsyms = len(curr)
		currdel = 1
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + currsyms + currdel + rsign + intdigs + dpoint + fracdigs + tzeros + tquote
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0') && verb != 'c' && verb != 'C':
			lzeros = w - width
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
	if tquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Trailing zeros
	for i := 0; i < tzeros; i++ {
		buf[pos] = '0'
		pos--
	}

	// Fractional digits
	for i := 0; i < fracdigs; i++ {
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
	}

	// Decimal point
	if dpoint > 0 {
		buf[pos] = '.'
		pos--
	}

	// Integer digits
	for i := 0; i < intdigs; i++ {
		buf[pos] = byte(u%10) + '0'
		pos--
		u /= 10
	}

	// Leading zeros
	for i := 0; i < lzeros; i++ {
		buf[pos] = '0'
		pos--
	}

	// Arithmetic sign
	if rsign > 0 {
		if units < 0 {
			buf[pos] = '-'
		} else if state.Flag(' ') {
			buf[pos] = ' '
		} else {
			buf[pos] = '+'
		}
		pos--
	}

	// Currency delimiter
	if currdel > 0 {
		buf[pos] = ' '
		pos--
	}

	// Currency code
	for i := currsyms; i > 0; i-- {
		buf[pos] = curr[i-1]
		pos--
	}

	// Opening quote
	if lquote > 0 {
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
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'd', 'D', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.Amount="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
