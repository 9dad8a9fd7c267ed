package billing

import "fmt"

// DefaultCurrency is used when a caller does not specify a code.
const DefaultCurrency = "KES"

// FormatCurrency renders an amount held in minor units for display,
// e.g. 199900 -> "KES 1999.00". Amounts are stored as cents end to end
// so this is the only place a division happens.
func FormatCurrency(amountCents int64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%s %.2f", currency, float64(amountCents)/100)
}
