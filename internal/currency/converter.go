package currency

// usdRates maps currency codes to the USD value of one local unit. The table
// is fixed configuration: rates are treated as constant for the process
// lifetime.
var usdRates = map[string]float64{
	"BRL": 0.18,
	"MXN": 0.055,
	"IDR": 0.000062,
	"USD": 1.0,
}

// ToUSD converts a local currency amount to USD reference units. Unknown
// currency codes are treated as already being in USD (multiplier 1.0), so
// the conversion is total and cannot fail.
func ToUSD(amount float64, code string) float64 {
	rate, ok := usdRates[code]
	if !ok {
		rate = 1.0
	}
	return amount * rate
}

// Rate returns the USD multiplier for a currency code, 1.0 when unknown.
func Rate(code string) float64 {
	if rate, ok := usdRates[code]; ok {
		return rate
	}
	return 1.0
}
