package model

import "github.com/shopspring/decimal"

// Statement is the header block of one parsed bank statement. Dates and
// account numbers are kept exactly as printed on the statement; formatting
// for the import target happens at export time.
type Statement struct {
	Date         string // DD.MM.YYYY
	Account      string // raw digits, separators vary by bank
	Number       string
	OwnerName    string
	OwnerAddress string
	TaxNumber    string
}

// Transaction is one statement line. After classification exactly one of
// Debit/Credit is positive, unless the upstream source intentionally set
// both sides.
type Transaction struct {
	Date              string
	CustomerName      string
	CustomerAddress   string
	CustomerAccount   string // may be empty
	CustomerTaxNumber string // may be empty
	Reference         string
	Currency          string
	Debit             decimal.Decimal
	Credit            decimal.Decimal
	Description       string
}

// Amount returns whichever side of the transaction carries the value.
// Credit wins when both sides are set.
func (t Transaction) Amount() decimal.Decimal {
	if t.Credit.IsPositive() {
		return t.Credit
	}
	return t.Debit
}
