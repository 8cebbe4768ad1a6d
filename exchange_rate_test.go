package money

import (
	"errors"
	"fmt"
	"testing"

	"github.com/govalues/decimal"
)

func TestNewExchRate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			base, quote Currency
			rate        string
		}{
			{USD, EUR, "0.9"},
			{GBP, USD, "1.27"},
			{EUR, GBP, "0.8532"},
			{USD, USD, "1"},
		}
		for _, tt := range tests {
			rate := decimal.MustParse(tt.rate)
			got, err := NewExchRate(tt.base, tt.quote, rate)
			if err != nil {
				t.Errorf("NewExchRate(%v, %v, %v) failed: %v", tt.base, tt.quote, rate, err)
				continue
			}
			if got.Base() != tt.base || got.Quote() != tt.quote || got.Rate() != rate {
				t.Errorf("NewExchRate(%v, %v, %v) = %q", tt.base, tt.quote, rate, got)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			base, quote Currency
			rate        string
		}{
			"zero rate":     {USD, EUR, "0"},
			"negative rate": {USD, EUR, "-0.9"},
			"identity rate": {USD, USD, "1.25"},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				rate := decimal.MustParse(tt.rate)
				_, err := NewExchRate(tt.base, tt.quote, rate)
				if err == nil {
					t.Errorf("NewExchRate(%v, %v, %v) did not fail", tt.base, tt.quote, rate)
					return
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("NewExchRate(%v, %v, %v) = %v, want ErrInvalidArgument", tt.base, tt.quote, rate, err)
				}
			})
		}
	})
}

func TestParseExchRate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := ParseExchRate("USD", "EUR", "0.9")
		if err != nil {
			t.Fatalf("ParseExchRate(\"USD\", \"EUR\", \"0.9\") failed: %v", err)
		}
		if got.Base() != USD || got.Quote() != EUR {
			t.Errorf("ParseExchRate(\"USD\", \"EUR\", \"0.9\") = %q", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			base, quote, rate string
		}{
			"base":     {"UUU", "EUR", "0.9"},
			"quote":    {"USD", "UUU", "0.9"},
			"rate":     {"USD", "EUR", "x"},
			"negative": {"USD", "EUR", "-0.9"},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := ParseExchRate(tt.base, tt.quote, tt.rate)
				if err == nil {
					t.Errorf("ParseExchRate(%q, %q, %q) did not fail", tt.base, tt.quote, tt.rate)
				}
			})
		}
	})
}

func TestMustParseExchRate(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustParseExchRate(\"UUU\", \"EUR\", \"0.9\") did not panic")
			}
		}()
		MustParseExchRate("UUU", "EUR", "0.9")
	})
}

func TestExchangeRate_Conv(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			base, quote string
			rate        string
			units, want int64
		}{
			{"USD", "EUR", "0.9", 1000, 900},
			{"USD", "EUR", "0.9", 0, 0},
			{"USD", "EUR", "0.9", -1000, -900},
			{"GBP", "USD", "1.27", 100, 127},
			{"USD", "GBP", "0.333", 100, 33},
			// Rounding half to even: 4.45 * 0.3 = 1.335 -> 1.34
			{"USD", "EUR", "0.3", 445, 134},
			// 0.25 * 0.5 = 0.125 -> 0.12
			{"USD", "EUR", "0.5", 25, 12},
		}
		for _, tt := range tests {
			r := MustParseExchRate(tt.base, tt.quote, tt.rate)
			b := MustNewAmount(tt.base, tt.units)
			if !r.CanConv(b) {
				t.Errorf("%q.CanConv(%q) = false", r, b)
				continue
			}
			got, err := r.Conv(b)
			if err != nil {
				t.Errorf("%q.Conv(%q) failed: %v", r, b, err)
				continue
			}
			want := MustNewAmount(tt.quote, tt.want)
			if got != want {
				t.Errorf("%q.Conv(%q) = %q, want %q", r, b, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		r := MustParseExchRate("USD", "EUR", "0.9")
		b := MustNewAmount("EUR", 100)
		if r.CanConv(b) {
			t.Errorf("%q.CanConv(%q) = true", r, b)
		}
		_, err := r.Conv(b)
		if !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("%q.Conv(%q) = %v, want ErrCurrencyMismatch", r, b, err)
		}
	})

	t.Run("zero value", func(t *testing.T) {
		r := ExchangeRate{}
		b := MustNewAmount("GBP", 100)
		if r.CanConv(b) {
			t.Errorf("ExchangeRate{}.CanConv(%q) = true", b)
		}
		if _, err := r.Conv(b); err == nil {
			t.Errorf("ExchangeRate{}.Conv(%q) did not fail", b)
		}
	})
}

func TestExchangeRate_Inv(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := MustParseExchRate("USD", "EUR", "0.8")
		got, err := r.Inv()
		if err != nil {
			t.Fatalf("%q.Inv() failed: %v", r, err)
		}
		want := MustParseExchRate("EUR", "USD", "1.25")
		if got.Base() != want.Base() || got.Quote() != want.Quote() || got.Rate() != want.Rate() {
			t.Errorf("%q.Inv() = %q, want %q", r, got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		r := ExchangeRate{}
		_, err := r.Inv()
		if !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("ExchangeRate{}.Inv() = %v, want ErrDivisionByZero", err)
		}
	})
}

func TestExchangeRate_Mul(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := MustParseExchRate("USD", "EUR", "0.9")
		e := decimal.MustParse("2")
		got, err := r.Mul(e)
		if err != nil {
			t.Fatalf("%q.Mul(%q) failed: %v", r, e, err)
		}
		want := decimal.MustParse("1.8")
		if got.Rate() != want {
			t.Errorf("%q.Mul(%q) = %q, want rate %q", r, e, got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		r := MustParseExchRate("USD", "EUR", "0.9")
		e := decimal.MustParse("-1")
		if _, err := r.Mul(e); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%q.Mul(%q) did not fail with ErrInvalidArgument", r, e)
		}
	})
}

func TestExchangeRate_SameCurr(t *testing.T) {
	r := MustParseExchRate("USD", "EUR", "0.9")
	q := MustParseExchRate("USD", "EUR", "0.95")
	p := MustParseExchRate("EUR", "USD", "1.1")
	if !r.SameCurr(q) {
		t.Errorf("%q.SameCurr(%q) = false", r, q)
	}
	if r.SameCurr(p) {
		t.Errorf("%q.SameCurr(%q) = true", r, p)
	}
}

func TestExchangeRate_Format(t *testing.T) {
	tests := []struct {
		rate         ExchangeRate
		format, want string
	}{
		{MustParseExchRate("USD", "EUR", "0.9"), "%s", "USD/EUR 0.9"},
		{MustParseExchRate("USD", "EUR", "0.9"), "%v", "USD/EUR 0.9"},
		{MustParseExchRate("USD", "EUR", "0.9"), "%q", "\"USD/EUR 0.9\""},
		{MustParseExchRate("USD", "EUR", "0.9"), "%c", "USD/EUR"},
		{MustParseExchRate("USD", "EUR", "0.9"), "%f", "0.9"},
		{MustParseExchRate("USD", "EUR", "0.9"), "%13s", "  USD/EUR 0.9"},
		{MustParseExchRate("USD", "EUR", "0.9"), "%-13s", "USD/EUR 0.9  "},
		{MustParseExchRate("USD", "EUR", "0.9"), "%b", "%!b(money.ExchangeRate=USD/EUR 0.9)"},
	}
	for _, tt := range tests {
		got := fmt.Sprintf(tt.format, tt.rate)
		if got != tt.want {
			t.Errorf("fmt.Sprintf(%q, %q) = %q, want %q", tt.format, tt.rate, got, tt.want)
		}
	}
}
