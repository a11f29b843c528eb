package engine

import (
	"math/big"
	"strings"
)

// ToDecimal converts a raw integer amount string into rawAmount / 10^decimals.
// The division is exact through arbitrary precision, so 18-decimal native
// amounts survive intact. Invalid input yields zero rather than an error: a
// bad record must never abort a chain's processing.
func ToDecimal(raw string, decimals int) *big.Rat {
	zero := new(big.Rat)

	raw = strings.TrimSpace(raw)
	if raw == "" || decimals < 0 {
		return zero
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return zero
	}
	if decimals == 0 {
		return new(big.Rat).SetInt(value)
	}

	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Rat).SetFrac(value, denom)
}

// usdValue prices an exact token amount, collapsing to float64 only for the
// final per-leg figure. Unknown (zero) prices contribute nothing.
func usdValue(amount *big.Rat, price float64) float64 {
	if amount.Sign() <= 0 || price <= 0 {
		return 0
	}
	rat := new(big.Rat).SetFloat64(price)
	if rat == nil {
		return 0
	}
	value, _ := new(big.Rat).Mul(amount, rat).Float64()
	return value
}
