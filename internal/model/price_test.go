package model

import "testing"

func TestNewPriceTable(t *testing.T) {
	table := NewPriceTable(map[string]float64{
		"0xABCDEF": 3500,
		" 0x1111 ": 1,
		"0xbad":    -5, // negative prices are dropped
		"":         2,
	})

	if len(table) != 2 {
		t.Fatalf("table size = %d, want 2", len(table))
	}
	if got := table.Lookup("0xabcdef"); got != 3500 {
		t.Fatalf("Lookup lower = %v, want 3500", got)
	}
	if got := table.Lookup("0xABCDEF"); got != 3500 {
		t.Fatalf("Lookup upper = %v, want 3500", got)
	}
	if got := table.Lookup("0x1111"); got != 1 {
		t.Fatalf("Lookup trimmed = %v, want 1", got)
	}
}

func TestPriceTableLookupUnknown(t *testing.T) {
	table := NewPriceTable(nil)
	if got := table.Lookup("0x2222"); got != 0 {
		t.Fatalf("unknown price = %v, want 0", got)
	}
}
