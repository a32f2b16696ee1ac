package minimax

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/izvod-dev/izvod/internal/account"
	"github.com/izvod-dev/izvod/internal/model"
)

// Meta carries the fixed header attributes the bank does not print on the
// statement itself. Values come from configuration.
type Meta struct {
	StatementKind string // VrstaIzvoda
	RegistryID    string // MaticniBroj
	City          string // KomitentMesto
	AccountType   string // TipRacuna
}

// Attribute names and order must match the Minimax import schema exactly;
// unused attributes are emitted empty, never omitted.
type xmlStatement struct {
	XMLName xml.Name  `xml:"TransakcioniRacunPrivredaIzvod"`
	Header  xmlHeader `xml:"Zaglavlje"`
	Items   []xmlItem `xml:"Stavke"`
}

type xmlHeader struct {
	Kind         string `xml:"VrstaIzvoda,attr"`
	Number       string `xml:"BrojIzvoda,attr"`
	Date         string `xml:"DatumIzvoda,attr"`
	RegistryID   string `xml:"MaticniBroj,attr"`
	OwnerName    string `xml:"KomitentNaziv,attr"`
	OwnerAddress string `xml:"KomitentAdresa,attr"`
	OwnerCity    string `xml:"KomitentMesto,attr"`
	Account      string `xml:"Partija,attr"`
	AccountType  string `xml:"TipRacuna,attr"`
	Opening      string `xml:"PrethodnoStanje,attr"`
	DebitTotal   string `xml:"DugovniPromet,attr"`
	CreditTotal  string `xml:"PotrazniPromet,attr"`
	Closing      string `xml:"NovoStanje,attr"`
	FeeBalance   string `xml:"StanjeObracunateProvizije,attr"`
}

type xmlItem struct {
	CustomerName string `xml:"NalogKorisnik,attr"`
	City         string `xml:"Mesto,attr"`
	OrderNumber  string `xml:"VasBrojNaloga,attr"`
	Account      string `xml:"BrojRacunaPrimaocaPosiljaoca,attr"`
	Description  string `xml:"Opis,attr"`
	PaymentCode  string `xml:"SifraPlacanja,attr"`
	PaymentDesc  string `xml:"SifraPlacanjaOpis,attr"`
	Debit        string `xml:"Duguje,attr"`
	Credit       string `xml:"Potrazuje,attr"`
	DebitModel   string `xml:"ModelZaduzenjaOdobrenja,attr"`
	DebitRef     string `xml:"PozivNaBrojZaduzenjaOdobrenja,attr"`
	UserModel    string `xml:"ModelKorisnika,attr"`
	UserRef      string `xml:"PozivNaBrojKorisnika,attr"`
	ClaimNumber  string `xml:"BrojZaReklamaciju,attr"`
	Reference    string `xml:"Referenca,attr"`
	Note         string `xml:"Objasnjenje,attr"`
	ValueDate    string `xml:"DatumValute,attr"`
}

// WriteXML writes the Minimax statement import XML. The opening balance is
// not recoverable from the statement export alone, so it is emitted as 0.00
// and the closing balance as credit minus debit.
func WriteXML(w io.Writer, st model.Statement, txs []model.Transaction, meta Meta) error {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, tx := range txs {
		debit = debit.Add(tx.Debit)
		credit = credit.Add(tx.Credit)
	}

	doc := xmlStatement{
		Header: xmlHeader{
			Kind:         meta.StatementKind,
			Number:       st.Number,
			Date:         st.Date,
			RegistryID:   meta.RegistryID,
			OwnerName:    st.OwnerName,
			OwnerAddress: st.OwnerAddress,
			OwnerCity:    meta.City,
			Account:      account.Digits(account.Normalize(st.Account)),
			AccountType:  meta.AccountType,
			Opening:      "0.00",
			DebitTotal:   debit.StringFixed(2),
			CreditTotal:  credit.StringFixed(2),
			Closing:      credit.Sub(debit).StringFixed(2),
			FeeBalance:   "0",
		},
	}

	for _, tx := range txs {
		custAccount := ""
		if tx.CustomerAccount != "" {
			custAccount = account.Normalize(tx.CustomerAccount)
		}
		doc.Items = append(doc.Items, xmlItem{
			CustomerName: tx.CustomerName,
			City:         tx.CustomerAddress,
			Account:      custAccount,
			Description:  tx.Description,
			Debit:        tx.Debit.StringFixed(2),
			Credit:       tx.Credit.StringFixed(2),
			UserRef:      tx.Reference,
			Reference:    tx.Reference,
			ValueDate:    tx.Date,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xml declaration: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding statement xml: %w", err)
	}
	return nil
}
