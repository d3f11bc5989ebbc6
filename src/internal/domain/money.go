package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits carried by stored monetary
// amounts. Intermediate results keep a wider scale and are only rounded when
// a final share is produced.
const MoneyScale = 2

const divisionScale = MoneyScale + 6

// ProportionalShare computes amount * portion / pool with banker's (half-even)
// rounding at money scale. A zero pool yields a zero share rather than a
// division fault.
func ProportionalShare(amount, portion, pool decimal.Decimal) decimal.Decimal {
	if pool.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(portion).DivRound(pool, divisionScale).RoundBank(MoneyScale)
}

// ZeroIfNil resolves an optional monetary value, treating absence as zero.
func ZeroIfNil(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
