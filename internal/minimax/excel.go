// Package minimax renders a converted statement into the two import formats
// the Minimax accounting system accepts: a two-sheet workbook and an
// attribute-bearing XML document.
package minimax

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/izvod-dev/izvod/internal/account"
	"github.com/izvod-dev/izvod/internal/model"
)

const (
	statementSheet    = "Statement"
	transactionsSheet = "Transactions"

	// Builtin number formats: 2 = "0.00", 49 = "@" (text).
	numFmtDecimal = 2
	numFmtText    = 49
)

var transactionHeaders = []interface{}{
	"CustomerName", "CustomerAddress", "CustomerAccount", "CustomerTaxNumber",
	"Date", "Reference", "Currency", "Debit", "Credit", "Description",
}

var transactionWidths = []float64{35, 25, 28, 15, 12, 25, 8, 12, 12, 45}

// WriteWorkbook writes the two-sheet Minimax import workbook. Every account
// field is normalized and the amount columns carry a fixed two-decimal
// number format; everything else is text.
func WriteWorkbook(w io.Writer, st model.Statement, txs []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtText})
	if err != nil {
		return fmt.Errorf("creating text style: %w", err)
	}
	numStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDecimal})
	if err != nil {
		return fmt.Errorf("creating number style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetSheetRow(statementSheet, "A1", &[]interface{}{"Date", "Account", "Number"}); err != nil {
		return fmt.Errorf("writing statement header: %w", err)
	}
	row := []interface{}{st.Date, account.Normalize(st.Account), st.Number}
	if err := f.SetSheetRow(statementSheet, "A2", &row); err != nil {
		return fmt.Errorf("writing statement row: %w", err)
	}
	if err := f.SetCellStyle(statementSheet, "A1", "C2", textStyle); err != nil {
		return fmt.Errorf("styling statement sheet: %w", err)
	}
	for col, width := range map[string]float64{"A": 15, "B": 32, "C": 10} {
		if err := f.SetColWidth(statementSheet, col, col, width); err != nil {
			return fmt.Errorf("sizing statement column %s: %w", col, err)
		}
	}

	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return fmt.Errorf("creating transactions sheet: %w", err)
	}
	if err := f.SetSheetRow(transactionsSheet, "A1", &transactionHeaders); err != nil {
		return fmt.Errorf("writing transactions header: %w", err)
	}

	for i, tx := range txs {
		custAccount := ""
		if tx.CustomerAccount != "" {
			custAccount = account.Normalize(tx.CustomerAccount)
		}
		debit, _ := tx.Debit.Float64()
		credit, _ := tx.Credit.Float64()

		row := []interface{}{
			tx.CustomerName,
			tx.CustomerAddress,
			custAccount,
			tx.CustomerTaxNumber,
			tx.Date,
			tx.Reference,
			currencyOrDefault(tx.Currency),
			debit,
			credit,
			tx.Description,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing transaction row %d: %w", i+1, err)
		}
	}

	last := len(txs) + 1
	if err := f.SetCellStyle(transactionsSheet, "A1", fmt.Sprintf("G%d", last), textStyle); err != nil {
		return fmt.Errorf("styling text columns: %w", err)
	}
	if err := f.SetCellStyle(transactionsSheet, "H1", fmt.Sprintf("I%d", last), numStyle); err != nil {
		return fmt.Errorf("styling amount columns: %w", err)
	}
	if err := f.SetCellStyle(transactionsSheet, "J1", fmt.Sprintf("J%d", last), textStyle); err != nil {
		return fmt.Errorf("styling description column: %w", err)
	}
	for i, width := range transactionWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolving column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(transactionsSheet, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "RSD"
	}
	return c
}
