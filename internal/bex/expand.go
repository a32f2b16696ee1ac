package bex

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/izvod-dev/izvod/internal/model"
)

// Currency rounding slack when matching a specification total against an
// aggregate transaction amount.
var tolerance = decimal.New(1, -2)

// Note records the outcome of one aggregate transaction during expansion.
type Note struct {
	CustomerName string
	Amount       decimal.Decimal
	Matched      bool
	Spec         string // matched document name
	Entries      int
}

// IsAggregate reports whether a transaction is a bulk courier settlement.
func IsAggregate(tx model.Transaction, tag string) bool {
	if tag == "" {
		tag = Tag
	}
	return strings.Contains(strings.ToUpper(tx.CustomerName), strings.ToUpper(tag))
}

// Expand replaces each aggregate courier transaction whose amount matches a
// specification total (first match in supply order, within tolerance) with
// that specification's per-customer entries. The derived entries keep the
// aggregate's debit/credit side, so total transacted value is conserved.
// Unmatched aggregates pass through unchanged; they must stay visible to the
// operator rather than silently vanish.
func Expand(txs []model.Transaction, specs []model.Specification, tag string) ([]model.Transaction, []Note) {
	out := make([]model.Transaction, 0, len(txs))
	var notes []Note

	for _, tx := range txs {
		if !IsAggregate(tx, tag) {
			out = append(out, tx)
			continue
		}

		amount := tx.Amount()
		matched := false
		for _, spec := range specs {
			if len(spec.Entries) == 0 {
				continue
			}
			if spec.Total().Sub(amount).Abs().GreaterThanOrEqual(tolerance) {
				continue
			}

			debitSide := tx.Debit.IsPositive() && !tx.Credit.IsPositive()
			for _, e := range spec.Entries {
				derived := model.Transaction{
					Date:            e.Date,
					CustomerName:    e.Name,
					CustomerAddress: e.Address,
					Reference:       e.Reference,
					Currency:        tx.Currency,
					Description:     "Otkup pošiljke " + e.Tracking,
				}
				// Couriers settle by name, not bank account: the
				// counter-party account and tax id stay empty.
				if debitSide {
					derived.Debit = e.Amount
				} else {
					derived.Credit = e.Amount
				}
				out = append(out, derived)
			}

			notes = append(notes, Note{
				CustomerName: tx.CustomerName,
				Amount:       amount,
				Matched:      true,
				Spec:         spec.Name,
				Entries:      len(spec.Entries),
			})
			matched = true
			break
		}

		if !matched {
			out = append(out, tx)
			notes = append(notes, Note{CustomerName: tx.CustomerName, Amount: amount})
		}
	}
	return out, notes
}
