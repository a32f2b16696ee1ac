// Package bex handles courier cash-collection settlements: it parses BEX
// specification documents into per-customer entries and expands the matching
// aggregate statement transactions.
package bex

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/izvod-dev/izvod/internal/id"
	"github.com/izvod-dev/izvod/internal/model"
)

// Tag marks an aggregate courier settlement in a counter-party name.
const Tag = "BEX"

// Options control specification document parsing.
type Options struct {
	Marker          string   // token that follows the amount on every data row
	SkipPhrases     []string // banner/header phrases that are never data rows
	ReferencePrefix string   // prefix of generated settlement references
}

// DefaultOptions returns the BEX courier specification layout.
func DefaultOptions() Options {
	return Options{
		Marker:          "OTK",
		SkipPhrases:     []string{"SPECIFIKACIJA OTKUPNIH", "BROJ POŠILJKE"},
		ReferencePrefix: "WS-MM-",
	}
}

var dateRe = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

// Minimum token position of the marker: four fixed leading fields, at least
// one payer token, then the amount.
const minMarkerIndex = 6

// ParseSpecification extracts the per-customer entries from the plain text
// of one specification document. Lines that do not fit the row layout are
// dropped silently; callers treat an empty result as "no specification".
func ParseSpecification(name, text string, opts Options) model.Specification {
	if opts.Marker == "" {
		opts = DefaultOptions()
	}

	// Amount tokens look like "2,750" with a thousands comma, immediately
	// followed by the marker token.
	amountRe := regexp.MustCompile(`(\d{1,2}),(\d{3})\s+` + regexp.QuoteMeta(opts.Marker) + `\b`)

	// One settlement date applies to the whole document.
	date := dateRe.FindString(text)
	year := settlementYear(date)

	spec := model.Specification{Name: name}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isBanner(line, opts.SkipPhrases) {
			continue
		}

		m := amountRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cents, err := strconv.ParseInt(m[1]+m[2], 10, 64)
		if err != nil {
			continue
		}
		amount := decimal.NewFromInt(cents)

		tokens := strings.Fields(line)
		marker := indexOf(tokens, opts.Marker)
		if marker < minMarkerIndex {
			continue
		}

		ordinal, err := strconv.Atoi(tokens[0])
		if err != nil {
			continue
		}

		payerName, payerAddress := splitPayer(tokens[4 : marker-1])
		if payerName == "" {
			continue
		}

		spec.Entries = append(spec.Entries, model.SpecEntry{
			Name:      payerName,
			Address:   payerAddress,
			Amount:    amount,
			Reference: id.FormatReference(opts.ReferencePrefix, year, ordinal),
			Tracking:  tokens[1],
			Date:      date,
		})
	}
	return spec
}

func isBanner(line string, phrases []string) bool {
	upper := strings.ToUpper(line)
	for _, p := range phrases {
		if p != "" && strings.Contains(upper, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}

func indexOf(tokens []string, want string) int {
	for i, tok := range tokens {
		if tok == want {
			return i
		}
	}
	return -1
}

// splitPayer divides the payer tokens into a name and an address: tokens
// belong to the name until the first one containing a comma, which starts
// the address. The address keeps internal commas but drops a trailing one.
func splitPayer(tokens []string) (name, address string) {
	var nameTokens, addrTokens []string
	inAddress := false
	for _, tok := range tokens {
		if !inAddress && strings.Contains(tok, ",") {
			inAddress = true
		}
		if inAddress {
			addrTokens = append(addrTokens, tok)
		} else {
			nameTokens = append(nameTokens, tok)
		}
	}
	return strings.Join(nameTokens, " "), strings.TrimSuffix(strings.Join(addrTokens, " "), ",")
}

func settlementYear(date string) int {
	if len(date) == 10 {
		if y, err := strconv.Atoi(date[6:]); err == nil {
			return y
		}
	}
	return time.Now().Year()
}
