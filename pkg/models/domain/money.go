package domain

import "github.com/shopspring/decimal"

// ManYenExponent is the power of ten between man-yen and yen (1 man-yen = 10,000 yen).
const ManYenExponent = 4

// ManYenToYen scales a man-yen amount to yen without rounding.
func ManYenToYen(v decimal.Decimal) decimal.Decimal {
	return v.Shift(ManYenExponent)
}

// YenToManYen scales a yen amount back to man-yen without rounding.
func YenToManYen(v decimal.Decimal) decimal.Decimal {
	return v.Shift(-ManYenExponent)
}
