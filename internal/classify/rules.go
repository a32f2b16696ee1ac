// Package classify assigns each transaction's debit/credit split by an
// ordered rule cascade. The cascade is data: operators describe their
// counter-parties in configuration instead of code.
package classify

// Direction is the side of the statement a rule assigns.
type Direction string

const (
	// Incoming money lands on the credit side.
	Incoming Direction = "credit"
	// Outgoing money lands on the debit side.
	Outgoing Direction = "debit"
)

// Kind selects how a rule matches a transaction.
type Kind string

const (
	// NameContains matches when the counter-party name contains any of the
	// matchers, case-insensitively.
	NameContains Kind = "name-contains"
	// ReferencePrefix matches when the payment reference starts with any
	// of the matchers.
	ReferencePrefix Kind = "reference-prefix"
	// AccountEqualsOwner matches when the counter-party account equals the
	// statement owner's account, separators ignored.
	AccountEqualsOwner Kind = "account-equals-owner"
)

// Rule is one entry of the cascade. Rules are evaluated in order and the
// first match wins, so earlier rules encode higher business precedence.
type Rule struct {
	Kind      Kind      `yaml:"kind"`
	Matchers  []string  `yaml:"matchers,omitempty"`
	Direction Direction `yaml:"direction"`
}

// DefaultRules reproduces the operator's cascade: courier settlement
// customers and their generated references are incoming, generic account
// matching comes next, and the owner's own trading identity plus known
// banks, the tax authority and suppliers are outgoing.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: NameContains, Matchers: []string{"ŠABLJOV", "SEKE", "PAVLOVIĆ"}, Direction: Incoming},
		{Kind: ReferencePrefix, Matchers: []string{"WS-MM-"}, Direction: Incoming},
		{Kind: AccountEqualsOwner, Direction: Incoming},
		{Kind: NameContains, Matchers: []string{"MG AUTO", "MLADEN GRUJOSKI"}, Direction: Outgoing},
		{Kind: NameContains, Matchers: []string{"RAIFFEISEN", "PORESKA", "GBG", "BIZ KONCEPT", "BOŽIDAR"}, Direction: Outgoing},
	}
}
