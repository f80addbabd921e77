package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned by every function in this package when the
// given ISO 4217 code is not in the registry. Silently defaulting would
// corrupt monetary math, so lookups always hard-fail.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes one registered ISO 4217 currency.
type Currency struct {
	Code          string
	Symbol        string
	Name          string
	DecimalPlaces int32
	Country       string // ISO 3166-1 alpha-2, for flag lookup in the UI layer
}

func lookup(code string) (Currency, error) {
	c, ok := registry[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// Lookup returns the registry entry for code.
func Lookup(code string) (Currency, bool) {
	c, ok := registry[code]
	return c, ok
}

// Multiplier returns 10^decimalPlaces for the currency, i.e. the factor
// between a display amount and its integer storage amount.
func Multiplier(code string) (int64, error) {
	c, err := lookup(code)
	if err != nil {
		return 0, err
	}
	return decimal.New(1, c.DecimalPlaces).IntPart(), nil
}

// ToStorageAmount converts a display amount (e.g. 136.78 CNY) into the
// integer stored in the database (13678). Rounding is half away from zero on
// the exact decimal value, so 10.005 CNY -> 1001 and 10.004 CNY -> 1000.
func ToStorageAmount(display float64, code string) (int64, error) {
	c, err := lookup(code)
	if err != nil {
		return 0, err
	}
	d := decimal.NewFromFloat(display).Shift(c.DecimalPlaces)
	return d.Round(0).IntPart(), nil
}

// ToDisplayAmount is the inverse of ToStorageAmount: storage / 10^places.
func ToDisplayAmount(storage int64, code string) (float64, error) {
	c, err := lookup(code)
	if err != nil {
		return 0, err
	}
	f, _ := decimal.New(storage, -c.DecimalPlaces).Float64()
	return f, nil
}

// FormatCurrency renders a display amount with the currency symbol, fixed to
// the currency's decimal places: FormatCurrency(136.78, "CNY") == "¥136.78",
// FormatCurrency(1000, "KRW") == "₩1000".
func FormatCurrency(display float64, code string) (string, error) {
	c, err := lookup(code)
	if err != nil {
		return "", err
	}
	return c.Symbol + decimal.NewFromFloat(display).StringFixed(c.DecimalPlaces), nil
}

// FormatStorageAmount renders an integer storage amount without the symbol,
// fixed to the currency's decimal places. Used by exporters.
func FormatStorageAmount(storage int64, code string) (string, error) {
	c, err := lookup(code)
	if err != nil {
		return "", err
	}
	return decimal.New(storage, -c.DecimalPlaces).StringFixed(c.DecimalPlaces), nil
}
