package classify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/izvod-dev/izvod/internal/account"
	"github.com/izvod-dev/izvod/internal/model"
)

// Classify applies the rule cascade to every transaction in place. Rows no
// rule matches fall to defaultDir, except rows the upstream source already
// marked on both sides, which pass through untouched. Order and count are
// preserved.
func Classify(txs []model.Transaction, rules []Rule, ownerAccount string, defaultDir Direction) {
	owner := account.Digits(ownerAccount)
	if defaultDir == "" {
		defaultDir = Incoming
	}

	for i := range txs {
		tx := &txs[i]
		dir, matched := apply(rules, *tx, owner)
		if !matched {
			if tx.Debit.IsPositive() && tx.Credit.IsPositive() {
				// Intentionally dual-sided upstream; do not re-derive.
				continue
			}
			dir = defaultDir
		}

		amount := tx.Amount()
		if dir == Outgoing {
			tx.Debit, tx.Credit = amount, decimal.Zero
		} else {
			tx.Debit, tx.Credit = decimal.Zero, amount
		}
	}
}

func apply(rules []Rule, tx model.Transaction, owner string) (Direction, bool) {
	name := strings.ToUpper(tx.CustomerName)
	acct := account.Digits(tx.CustomerAccount)

	for _, r := range rules {
		switch r.Kind {
		case NameContains:
			for _, m := range r.Matchers {
				if m != "" && strings.Contains(name, strings.ToUpper(m)) {
					return r.Direction, true
				}
			}
		case ReferencePrefix:
			for _, m := range r.Matchers {
				if m != "" && strings.HasPrefix(tx.Reference, m) {
					return r.Direction, true
				}
			}
		case AccountEqualsOwner:
			if acct != "" && acct == owner {
				return r.Direction, true
			}
		}
	}
	return "", false
}

// Issue describes a transaction left without a usable debit/credit split.
type Issue struct {
	Index       int
	Description string
}

// Check reports transactions that carry no amount on either side after
// classification. Dual-sided rows are legitimate passthroughs and are not
// flagged.
func Check(txs []model.Transaction) []Issue {
	var issues []Issue
	for i, tx := range txs {
		if tx.Debit.IsZero() && tx.Credit.IsZero() {
			issues = append(issues, Issue{
				Index:       i,
				Description: fmt.Sprintf("transaction %d (%s) has no amount on either side", i+1, tx.CustomerName),
			})
		}
	}
	return issues
}
