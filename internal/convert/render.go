package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/izvod-dev/izvod/internal/minimax"
)

// Output formats accepted by Render.
const (
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	return format == FormatXLSX || format == FormatXML
}

// Render serializes a conversion result into the requested import format.
func (c *Converter) Render(res Result, format string) ([]byte, error) {
	for i := range res.Transactions {
		if res.Transactions[i].Currency == "" {
			res.Transactions[i].Currency = c.export.Currency
		}
	}

	var buf bytes.Buffer
	switch format {
	case FormatXLSX:
		if err := minimax.WriteWorkbook(&buf, res.Statement, res.Transactions); err != nil {
			return nil, fmt.Errorf("writing workbook: %w", err)
		}
	case FormatXML:
		if err := minimax.WriteXML(&buf, res.Statement, res.Transactions, c.export.Meta()); err != nil {
			return nil, fmt.Errorf("writing xml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return buf.Bytes(), nil
}

// OutputName derives the output file name from the source document name.
func OutputName(file, format string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return base + "_minimax." + format
}
