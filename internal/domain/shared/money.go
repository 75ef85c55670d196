package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places amounts are rounded to
const MoneyScale = 2

// RoundMoney rounds an amount to MoneyScale places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Percent returns part/whole*100 rounded to two places, or zero when whole is zero
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).Round(2).Float64()
	return v
}

// PercentDecimal is Percent for decimal amounts
func PercentDecimal(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(2)
}
