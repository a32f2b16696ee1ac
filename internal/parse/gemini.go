package parse

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"github.com/izvod-dev/izvod/internal/model"
)

// DefaultModel is used when the configuration names no model.
const DefaultModel = "gemini-2.0-flash"

const defaultMaxRetries = 3

const promptHeader = `Analiziraj izvod banke i izvuci podatke u JSON formatu.

Vrati SAMO JSON (bez markdown):

{
  "statement": {
    "date": "DD.MM.YYYY",
    "account": "broj racuna SA SVIM NULAMA, bez crtica",
    "number": "broj izvoda",
    "owner_name": "ime vlasnika",
    "owner_address": "adresa",
    "tax_number": "PIB"
  },
  "transactions": [
    {
      "date": "DD.MM.YYYY",
      "customer_name": "naziv",
      "customer_address": "adresa",
      "customer_account": "racun bez crtica",
      "customer_tax_number": "",
      "reference": "referenca",
      "currency": "RSD",
      "debit": 0.00,
      "credit": 0.00,
      "description": "opis"
    }
  ]
}`

const promptRules = `PRAVILA:
- debit = IZLAZI (pozitivan, credit=0)
- credit = ULAZI (pozitivan, debit=0)
- Racune vrati BEZ crtica (samo cifre)
- NIKAD ne skracuj nule u brojevima
- date format: DD.MM.YYYY
- Ignorisi ukupne sume
- Odgovor mora poceti sa "{" i zavrsiti sa "}", bez code fence.`

// Gemini parses statements with the Gemini API. The zero value uses the
// default model and retry count.
type Gemini struct {
	Model      string
	MaxRetries int
}

// Parse sends the statement text to the model and decodes its JSON answer.
// Transient API failures are retried with exponential backoff; a decode
// failure is final for this statement.
func (g *Gemini) Parse(ctx context.Context, text, filename string) (model.Statement, []model.Transaction, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return model.Statement{}, nil, fmt.Errorf("creating genai client: %w", err)
	}

	prompt := buildPrompt(text, filename)
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	name := g.Model
	if name == "" {
		name = DefaultModel
	}
	retries := g.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	var raw string
	call := func() error {
		resp, err := client.Models.GenerateContent(ctx, name, contents, nil)
		if err != nil {
			return err
		}
		if resp.Text() == "" {
			return fmt.Errorf("empty response from model")
		}
		raw = resp.Text()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries)), ctx)
	if err := backoff.Retry(call, policy); err != nil {
		return model.Statement{}, nil, fmt.Errorf("model call for %s: %w", filename, err)
	}

	st, txs, err := Decode(raw)
	if err != nil {
		return model.Statement{}, nil, fmt.Errorf("response for %s: %w", filename, err)
	}
	return st, txs, nil
}

func buildPrompt(text, filename string) string {
	return promptHeader +
		"\n\nTEKST IZVODA:\n" + text +
		"\n\nNAZIV FAJLA: " + filename +
		"\n\n" + promptRules
}
