// Package convert runs the statement conversion engine: text extraction,
// model parsing, courier settlement expansion, and direction classification.
// The engine returns structured diagnostic events instead of printing; the
// caller decides what to display or log.
package convert

import (
	"context"
	"fmt"

	"github.com/izvod-dev/izvod/internal/bex"
	"github.com/izvod-dev/izvod/internal/classify"
	"github.com/izvod-dev/izvod/internal/config"
	"github.com/izvod-dev/izvod/internal/extract"
	"github.com/izvod-dev/izvod/internal/model"
	"github.com/izvod-dev/izvod/internal/parse"
)

// EventKind tags a diagnostic event.
type EventKind string

const (
	// EventExpanded marks a successful aggregate expansion.
	EventExpanded EventKind = "expanded"
	// EventUnmatched marks an aggregate no specification accounts for.
	EventUnmatched EventKind = "unmatched-aggregate"
	// EventInvalid marks a transaction without a usable debit/credit split.
	EventInvalid EventKind = "invalid-split"
)

// Event is one structured diagnostic from a conversion.
type Event struct {
	Kind    EventKind
	Message string
}

// Document is one uploaded file: a statement or a specification.
type Document struct {
	Name string
	Data []byte
}

// Result is the outcome of one successful conversion.
type Result struct {
	Statement    model.Statement
	Transactions []model.Transaction
	Expanded     bool
	Events       []Event
}

// Converter turns statement documents into Minimax-ready results. It is
// safe for concurrent use: each conversion is a pure function of its inputs
// and the read-only configuration.
type Converter struct {
	parser     parse.Parser
	rules      []classify.Rule
	defaultDir classify.Direction
	tag        string
	courier    bex.Options
	export     config.ExportConfig
}

// New builds a Converter from the configuration.
func New(parser parse.Parser, cfg *config.Config) *Converter {
	return &Converter{
		parser:     parser,
		rules:      cfg.Rules.Cascade,
		defaultDir: cfg.Rules.Default,
		tag:        cfg.Courier.Tag,
		courier:    cfg.Courier.Options(),
		export:     cfg.Export,
	}
}

// LoadSpecifications parses each courier specification document. Documents
// that cannot be extracted or yield no entries are treated as absent, never
// as partial specifications.
func (c *Converter) LoadSpecifications(docs []Document) []model.Specification {
	var specs []model.Specification
	for _, d := range docs {
		text, err := extract.Text(d.Data)
		if err != nil {
			continue
		}
		spec := bex.ParseSpecification(d.Name, text, c.courier)
		if len(spec.Entries) > 0 {
			specs = append(specs, spec)
		}
	}
	return specs
}

// Convert processes one statement against the shared specification set. It
// either returns a complete result or an error; no partial transaction list
// is ever exposed.
func (c *Converter) Convert(ctx context.Context, doc Document, specs []model.Specification) (Result, error) {
	text, err := extract.Text(doc.Data)
	if err != nil {
		return Result{}, fmt.Errorf("extracting %s: %w", doc.Name, err)
	}

	st, txs, err := c.parser.Parse(ctx, text, doc.Name)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s: %w", doc.Name, err)
	}

	before := len(txs)
	txs, notes := bex.Expand(txs, specs, c.tag)

	var events []Event
	for _, n := range notes {
		if n.Matched {
			events = append(events, Event{
				Kind:    EventExpanded,
				Message: fmt.Sprintf("%s: %d customers from %s", n.CustomerName, n.Entries, n.Spec),
			})
		} else {
			events = append(events, Event{
				Kind:    EventUnmatched,
				Message: fmt.Sprintf("no specification totals %s for %s", n.Amount.StringFixed(2), n.CustomerName),
			})
		}
	}

	classify.Classify(txs, c.rules, st.Account, c.defaultDir)
	for _, issue := range classify.Check(txs) {
		events = append(events, Event{Kind: EventInvalid, Message: issue.Description})
	}

	return Result{
		Statement:    st,
		Transactions: txs,
		Expanded:     len(txs) > before,
		Events:       events,
	}, nil
}
