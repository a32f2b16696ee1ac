package minimax

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izvod-dev/izvod/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testMeta() Meta {
	return Meta{
		StatementKind: "R",
		RegistryID:    "4167520394",
		City:          "11010 BEOGRAD-VOŽDOVAC",
		AccountType:   "Transakcioni depoziti preduzetnika",
	}
}

func testStatement() model.Statement {
	return model.Statement{
		Date:         "10.02.2026",
		Account:      "160000000012345678",
		Number:       "23",
		OwnerName:    "MG AUTO MLADEN GRUJOSKI PR",
		OwnerAddress: "VOJVODE STEPE 120, BEOGRAD",
		TaxNumber:    "109876543",
	}
}

func TestWriteXMLHeader(t *testing.T) {
	txs := []model.Transaction{
		{Date: "10.02.2026", CustomerName: "A", Credit: dec("8170")},
		{Date: "10.02.2026", CustomerName: "B", Debit: dec("1250.50")},
	}

	var buf bytes.Buffer
	err := WriteXML(&buf, testStatement(), txs, testMeta())
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, "<TransakcioniRacunPrivredaIzvod>")
	assert.Contains(t, out, `VrstaIzvoda="R"`)
	assert.Contains(t, out, `BrojIzvoda="23"`)
	assert.Contains(t, out, `DatumIzvoda="10.02.2026"`)
	assert.Contains(t, out, `MaticniBroj="4167520394"`)
	assert.Contains(t, out, `KomitentMesto="11010 BEOGRAD-VOŽDOVAC"`)
	// Digits only in the header account field.
	assert.Contains(t, out, `Partija="160000000012345678"`)
	assert.Contains(t, out, `TipRacuna="Transakcioni depoziti preduzetnika"`)
	assert.Contains(t, out, `PrethodnoStanje="0.00"`)
	assert.Contains(t, out, `DugovniPromet="1250.50"`)
	assert.Contains(t, out, `PotrazniPromet="8170.00"`)
	assert.Contains(t, out, `NovoStanje="6919.50"`)
	assert.Contains(t, out, `StanjeObracunateProvizije="0"`)
}

func TestWriteXMLItems(t *testing.T) {
	txs := []model.Transaction{
		{
			Date:            "10.02.2026",
			CustomerName:    "DENES ŠABLJOV",
			CustomerAddress: "MRAMORAK, VOJVOĐANSKA 82",
			Reference:       "WS-MM-2026000001",
			Credit:          dec("2750"),
			Description:     "Otkup pošiljke 262113552",
		},
	}

	var buf bytes.Buffer
	err := WriteXML(&buf, testStatement(), txs, testMeta())
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `NalogKorisnik="DENES ŠABLJOV"`)
	assert.Contains(t, out, `Mesto="MRAMORAK, VOJVOĐANSKA 82"`)
	assert.Contains(t, out, `Opis="Otkup pošiljke 262113552"`)
	assert.Contains(t, out, `Duguje="0.00"`)
	assert.Contains(t, out, `Potrazuje="2750.00"`)
	// The reference lands in both schema attributes.
	assert.Contains(t, out, `PozivNaBrojKorisnika="WS-MM-2026000001"`)
	assert.Contains(t, out, `Referenca="WS-MM-2026000001"`)
	assert.Contains(t, out, `DatumValute="10.02.2026"`)
	// Unused schema attributes are present but empty.
	assert.Contains(t, out, `VasBrojNaloga=""`)
	assert.Contains(t, out, `SifraPlacanja=""`)
	assert.Contains(t, out, `ModelZaduzenjaOdobrenja=""`)
	assert.Contains(t, out, `BrojZaReklamaciju=""`)
	assert.Contains(t, out, `Objasnjenje=""`)
	// Empty counter-party account stays empty, never fabricated.
	assert.Contains(t, out, `BrojRacunaPrimaocaPosiljaoca=""`)
}

func TestWriteXMLRoundTrip(t *testing.T) {
	txs := []model.Transaction{
		{Date: "10.02.2026", CustomerName: "A", CustomerAccount: "265000000098765432", Credit: dec("100")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, testStatement(), txs, testMeta()))

	var doc xmlStatement
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "265-0000000098765-32", doc.Items[0].Account)
	assert.Equal(t, "100.00", doc.Items[0].Credit)
	assert.Equal(t, "R", doc.Header.Kind)
}
