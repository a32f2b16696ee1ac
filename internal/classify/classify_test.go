package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izvod-dev/izvod/internal/model"
)

const owner = "160-0000000012345-78"

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestClassifyCourierCustomerIsIncoming(t *testing.T) {
	// The courier-customer rule outranks the outgoing name heuristics even
	// when an outgoing substring appears elsewhere on the row.
	txs := []model.Transaction{
		{CustomerName: "ERVIN SEKE", Debit: dec("1750"), Description: "preko RAIFFEISEN banke"},
	}

	Classify(txs, DefaultRules(), owner, Outgoing)
	assert.True(t, txs[0].Credit.Equal(dec("1750")))
	assert.True(t, txs[0].Debit.IsZero())
}

func TestClassifyReferencePrefixIsIncoming(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "NEPOZNAT", Reference: "WS-MM-2026000002", Debit: dec("1750")},
	}

	Classify(txs, DefaultRules(), owner, Outgoing)
	assert.True(t, txs[0].Credit.Equal(dec("1750")))
	assert.True(t, txs[0].Debit.IsZero())
}

func TestClassifyAccountMatchIsIncoming(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "PRENOS SREDSTAVA", CustomerAccount: "160000000012345678", Debit: dec("5000")},
	}

	Classify(txs, DefaultRules(), owner, Outgoing)
	assert.True(t, txs[0].Credit.Equal(dec("5000")))
	assert.True(t, txs[0].Debit.IsZero())
}

func TestClassifyOwnerIdentityIsOutgoing(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "MG AUTO DOO", Credit: dec("3000")},
	}

	Classify(txs, DefaultRules(), owner, Incoming)
	assert.True(t, txs[0].Debit.Equal(dec("3000")))
	assert.True(t, txs[0].Credit.IsZero())
}

func TestClassifyKnownOutgoingNames(t *testing.T) {
	for _, name := range []string{"RAIFFEISEN BANKA AD", "PORESKA UPRAVA", "BIZ KONCEPT DOO"} {
		txs := []model.Transaction{{CustomerName: name, Credit: dec("123.45")}}
		Classify(txs, DefaultRules(), owner, Incoming)
		assert.True(t, txs[0].Debit.Equal(dec("123.45")), "name %s", name)
		assert.True(t, txs[0].Credit.IsZero(), "name %s", name)
	}
}

func TestClassifyDualSidedPassthrough(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "PROVIZIJA", Debit: dec("100"), Credit: dec("40")},
	}

	Classify(txs, DefaultRules(), owner, Incoming)
	assert.True(t, txs[0].Debit.Equal(dec("100")))
	assert.True(t, txs[0].Credit.Equal(dec("40")))
}

func TestClassifyRuleBeatsDualSided(t *testing.T) {
	// A matched rule re-derives the split even when both sides came in set;
	// only unmatched rows get the passthrough.
	txs := []model.Transaction{
		{CustomerName: "ERVIN SEKE", Debit: dec("100"), Credit: dec("40")},
	}

	Classify(txs, DefaultRules(), owner, Outgoing)
	assert.True(t, txs[0].Credit.Equal(dec("40")))
	assert.True(t, txs[0].Debit.IsZero())
}

func TestClassifyDefaultDirection(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "KUPAC IZ KRAGUJEVCA", Debit: dec("900")},
	}
	Classify(txs, DefaultRules(), owner, Incoming)
	assert.True(t, txs[0].Credit.Equal(dec("900")))
	assert.True(t, txs[0].Debit.IsZero())

	txs = []model.Transaction{
		{CustomerName: "KUPAC IZ KRAGUJEVCA", Credit: dec("900")},
	}
	Classify(txs, DefaultRules(), owner, Outgoing)
	assert.True(t, txs[0].Debit.Equal(dec("900")))
	assert.True(t, txs[0].Credit.IsZero())
}

func TestClassifySingleSidedInvariant(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "ERVIN SEKE", Debit: dec("1750")},
		{CustomerName: "RAIFFEISEN BANKA", Credit: dec("250")},
		{CustomerName: "NEKO DRUGI", Credit: dec("10")},
	}

	Classify(txs, DefaultRules(), owner, Incoming)
	for i, tx := range txs {
		one := tx.Debit.IsPositive() != tx.Credit.IsPositive()
		assert.True(t, one, "transaction %d must be single-sided", i)
	}
}

func TestCheck(t *testing.T) {
	txs := []model.Transaction{
		{CustomerName: "OK", Credit: dec("10")},
		{CustomerName: "PRAZAN"},
		{CustomerName: "DUAL", Debit: dec("5"), Credit: dec("5")},
	}

	issues := Check(txs)
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Index)
	assert.Contains(t, issues[0].Description, "PRAZAN")
}
