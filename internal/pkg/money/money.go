package money

import "github.com/shopspring/decimal"

// Epsilon is the tolerance under which an amount counts as settled.
const Epsilon = 0.005

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Floor2 rounds down to cents. The float is read as its shortest decimal form,
// so 100000/10 floors to 10000.00 and not 9999.99.
func Floor2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundFloor(2).InexactFloat64()
}

// Sum adds amounts exactly and rounds the total to cents.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Max0 clamps negative amounts to zero.
func Max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Settled reports whether a remaining amount is effectively zero.
func Settled(v float64) bool {
	return v <= Epsilon
}
