package model

import "strings"

// PriceTable maps a lower-cased token contract address (or native price key)
// to a non-negative USD unit price. A zero entry means the price is unknown;
// the token then contributes nothing, which is not an error. The table is
// built once before a run and treated as an immutable snapshot.
type PriceTable map[string]float64

// NewPriceTable copies entries into a fresh table with lower-cased keys.
func NewPriceTable(entries map[string]float64) PriceTable {
	table := make(PriceTable, len(entries))
	for key, price := range entries {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || price < 0 {
			continue
		}
		table[key] = price
	}
	return table
}

// Lookup returns the USD price for key, or 0 when the price is unknown.
func (p PriceTable) Lookup(key string) float64 {
	return p[strings.ToLower(strings.TrimSpace(key))]
}
