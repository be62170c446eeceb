package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for monetary amounts.
const MoneyScale = 2

// RoundMoney rounds an amount to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// MoneyString formats an amount with exactly MoneyScale places.
func MoneyString(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}
