package currency

import "sort"

// registry is the fixed table of supported currencies. Zero-decimal and
// three-decimal currencies are the reason DecimalPlaces is per-entry instead
// of a hardcoded 2.
var registry = map[string]Currency{
	"CNY": {Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", DecimalPlaces: 2, Country: "CN"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2, Country: "US"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2, Country: "EU"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound", DecimalPlaces: 2, Country: "GB"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen", DecimalPlaces: 0, Country: "JP"},
	"KRW": {Code: "KRW", Symbol: "₩", Name: "South Korean Won", DecimalPlaces: 0, Country: "KR"},
	"HKD": {Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar", DecimalPlaces: 2, Country: "HK"},
	"TWD": {Code: "TWD", Symbol: "NT$", Name: "New Taiwan Dollar", DecimalPlaces: 2, Country: "TW"},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", DecimalPlaces: 2, Country: "SG"},
	"MOP": {Code: "MOP", Symbol: "MOP$", Name: "Macanese Pataca", DecimalPlaces: 2, Country: "MO"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar", DecimalPlaces: 2, Country: "AU"},
	"NZD": {Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar", DecimalPlaces: 2, Country: "NZ"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", DecimalPlaces: 2, Country: "CA"},
	"CHF": {Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", DecimalPlaces: 2, Country: "CH"},
	"SEK": {Code: "SEK", Symbol: "kr", Name: "Swedish Krona", DecimalPlaces: 2, Country: "SE"},
	"NOK": {Code: "NOK", Symbol: "kr", Name: "Norwegian Krone", DecimalPlaces: 2, Country: "NO"},
	"DKK": {Code: "DKK", Symbol: "kr", Name: "Danish Krone", DecimalPlaces: 2, Country: "DK"},
	"RUB": {Code: "RUB", Symbol: "₽", Name: "Russian Ruble", DecimalPlaces: 2, Country: "RU"},
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee", DecimalPlaces: 2, Country: "IN"},
	"THB": {Code: "THB", Symbol: "฿", Name: "Thai Baht", DecimalPlaces: 2, Country: "TH"},
	"VND": {Code: "VND", Symbol: "₫", Name: "Vietnamese Dong", DecimalPlaces: 0, Country: "VN"},
	"IDR": {Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah", DecimalPlaces: 2, Country: "ID"},
	"MYR": {Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit", DecimalPlaces: 2, Country: "MY"},
	"PHP": {Code: "PHP", Symbol: "₱", Name: "Philippine Peso", DecimalPlaces: 2, Country: "PH"},
	"BRL": {Code: "BRL", Symbol: "R$", Name: "Brazilian Real", DecimalPlaces: 2, Country: "BR"},
	"MXN": {Code: "MXN", Symbol: "Mex$", Name: "Mexican Peso", DecimalPlaces: 2, Country: "MX"},
	"ZAR": {Code: "ZAR", Symbol: "R", Name: "South African Rand", DecimalPlaces: 2, Country: "ZA"},
	"TRY": {Code: "TRY", Symbol: "₺", Name: "Turkish Lira", DecimalPlaces: 2, Country: "TR"},
	"AED": {Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", DecimalPlaces: 2, Country: "AE"},
	"SAR": {Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal", DecimalPlaces: 2, Country: "SA"},
	"KWD": {Code: "KWD", Symbol: "د.ك", Name: "Kuwaiti Dinar", DecimalPlaces: 3, Country: "KW"},
	"BHD": {Code: "BHD", Symbol: ".د.ب", Name: "Bahraini Dinar", DecimalPlaces: 3, Country: "BH"},
}

// Codes returns all registered currency codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
