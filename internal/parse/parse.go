// Package parse turns raw statement text into a structured header and
// transaction list. The heavy lifting is delegated to a text-understanding
// model behind the Parser interface, so the engine stays testable with
// canned fixtures.
package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/izvod-dev/izvod/internal/model"
)

// Parser produces a statement header and its transactions from plain text.
type Parser interface {
	Parse(ctx context.Context, text, filename string) (model.Statement, []model.Transaction, error)
}

// payload mirrors the JSON contract with the model.
type payload struct {
	Statement struct {
		Date         string `json:"date"`
		Account      string `json:"account"`
		Number       string `json:"number"`
		OwnerName    string `json:"owner_name"`
		OwnerAddress string `json:"owner_address"`
		TaxNumber    string `json:"tax_number"`
	} `json:"statement"`
	Transactions []struct {
		Date              string          `json:"date"`
		CustomerName      string          `json:"customer_name"`
		CustomerAddress   string          `json:"customer_address"`
		CustomerAccount   string          `json:"customer_account"`
		CustomerTaxNumber string          `json:"customer_tax_number"`
		Reference         string          `json:"reference"`
		Currency          string          `json:"currency"`
		Debit             decimal.Decimal `json:"debit"`
		Credit            decimal.Decimal `json:"credit"`
		Description       string          `json:"description"`
	} `json:"transactions"`
}

// Decode parses the model's JSON response, tolerating Markdown fences the
// model sometimes adds despite instructions.
func Decode(raw string) (model.Statement, []model.Transaction, error) {
	clean := stripFences(raw)

	var p payload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return model.Statement{}, nil, fmt.Errorf("decoding statement JSON: %w", err)
	}

	st := model.Statement{
		Date:         p.Statement.Date,
		Account:      p.Statement.Account,
		Number:       p.Statement.Number,
		OwnerName:    p.Statement.OwnerName,
		OwnerAddress: p.Statement.OwnerAddress,
		TaxNumber:    p.Statement.TaxNumber,
	}

	txs := make([]model.Transaction, 0, len(p.Transactions))
	for _, t := range p.Transactions {
		txs = append(txs, model.Transaction{
			Date:              t.Date,
			CustomerName:      t.CustomerName,
			CustomerAddress:   t.CustomerAddress,
			CustomerAccount:   t.CustomerAccount,
			CustomerTaxNumber: t.CustomerTaxNumber,
			Reference:         t.Reference,
			Currency:          t.Currency,
			Debit:             t.Debit,
			Credit:            t.Credit,
			Description:       t.Description,
		})
	}
	return st, txs, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON object if the model wrapped it in prose.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
