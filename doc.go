/*
Package money implements monetary values as integer counts of minor currency
units (cents, pence) paired with a currency from a small closed set.
Storing amounts as integers avoids the rounding errors that arise from binary
floating-point arithmetic.

# Representation

The package consists of two main types: Amount and Currency.
An Amount holds a Currency and a signed int64 number of minor units.
The Currency type is a closed enumeration implemented as an integer index into
in-memory arrays containing the code, symbol, display name, and scale of each
supported currency.
Both types are immutable values and are safe for concurrent use by multiple
goroutines.

# Operations

The package provides arithmetic and comparison operations between amounts,
such as Add, Sub, Cmp, Min, and Max, as well as multiplication and division by
exact decimal factors.
An Amount can be distributed into weighted parts with Allocate or into equal
parts with Split; both conserve the original amount exactly, distributing any
rounding remainder across the leading parts.

# Formatting

The Display method renders an amount for humans, grouping the integer digits
in threes and always printing two minor-unit digits.
The currency symbol, an appended currency code, and the separator and
delimiter characters are configurable through display options.
Amount and Currency also implement fmt.Stringer and fmt.Formatter.

# Conversion

The ExchangeRate type converts amounts between currencies.
The converted amount is rounded to the scale of the quote currency using
rounding half to even (banker's rounding).

# Errors

Failures are reported as wrapped sentinel errors: ErrInvalidArgument for
malformed inputs such as empty or negative allocation weights,
ErrCurrencyMismatch for binary operations across different currencies, and
ErrDivisionByZero for zero divisors and non-positive split counts.
All validation happens before any computation, so a failing call never
produces a partial result.
*/
package money
