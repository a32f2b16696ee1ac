package model

import "github.com/shopspring/decimal"

// SpecEntry is one end-customer row extracted from a courier cash-collection
// specification document.
type SpecEntry struct {
	Name      string
	Address   string
	Amount    decimal.Decimal
	Reference string
	Tracking  string
	Date      string // DD.MM.YYYY, shared by the whole document
}

// Specification groups the entries of one specification document, keyed by
// the source document name. A document that yields no entries is treated as
// absent rather than partially parsed.
type Specification struct {
	Name    string
	Entries []SpecEntry
}

// Total sums the entry amounts.
func (s Specification) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Amount)
	}
	return total
}
