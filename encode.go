package wealthflow

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// This file contains the codecs of the persisted document (JSON) and of the
// hand-written snapshot files users import (YAML).

// EncodeDocument writes a document as indented JSON.
func EncodeDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	return nil
}

// DecodeDocument reads a JSON document.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("could not decode document: %w", err)
	}
	doc.Financials = doc.Financials.normalized()
	for i := range doc.Scenarios {
		doc.Scenarios[i].Data = doc.Scenarios[i].Data.normalized()
	}
	return doc, nil
}

// DecodeSnapshotYAML reads a snapshot file like:
//
//	currency: TWD
//	assets:
//	  - name: US Treasury 20Y
//	    type: us_bond
//	    value: 1500000
//	    liquidity: High
//	expenses:
//	  - name: Mortgage Payment
//	    amount: 45000
//
// Amounts without currency get the file currency, or def when the file has none.
func DecodeSnapshotYAML(r io.Reader, def string) (Snapshot, error) {
	var file struct {
		Currency string `yaml:"currency"`
		Snapshot `yaml:",inline"`
	}
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("could not decode snapshot: %w", err)
	}
	cur := file.Currency
	if cur == "" {
		cur = def
	}
	return file.Snapshot.normalized().withCurrency(cur), nil
}

// UnmarshalYAML accepts a bare number, or a mapping with amount and currency.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d, err := decimal.NewFromString(strings.ReplaceAll(value.Value, "_", ""))
		if err != nil {
			return fmt.Errorf("line %d: invalid amount %q: %w", value.Line, value.Value, err)
		}
		m.value, m.cur = d, ""
		return nil
	}
	var j struct {
		Currency string `yaml:"currency"`
		Amount   string `yaml:"amount"`
	}
	if err := value.Decode(&j); err != nil {
		return err
	}
	d, err := decimal.NewFromString(j.Amount)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", value.Line, j.Amount, err)
	}
	m.value, m.cur = d, j.Currency
	return nil
}

// normalized sets the kind of cash flows from the list holding them.
func (s Snapshot) normalized() Snapshot {
	s = s.Clone()
	for i := range s.Incomes {
		s.Incomes[i].Kind = Income
	}
	for i := range s.Expenses {
		s.Expenses[i].Kind = Expense
	}
	return s
}

// withCurrency sets cur on every amount without currency.
func (s Snapshot) withCurrency(cur string) Snapshot {
	set := func(m Money) Money {
		if m.Currency() == "" {
			return m.WithCurrency(cur)
		}
		return m
	}
	s = s.Clone()
	for i := range s.Assets {
		s.Assets[i].Value = set(s.Assets[i].Value)
	}
	for i := range s.Liabilities {
		s.Liabilities[i].Amount = set(s.Liabilities[i].Amount)
		s.Liabilities[i].MonthlyPayment = set(s.Liabilities[i].MonthlyPayment)
	}
	for i := range s.Incomes {
		s.Incomes[i].Amount = set(s.Incomes[i].Amount)
	}
	for i := range s.Expenses {
		s.Expenses[i].Amount = set(s.Expenses[i].Amount)
	}
	return s
}

// WithDefaultCurrency sets cur on every amount of it without currency.
func WithDefaultCurrency(it Item, cur string) Item {
	switch v := it.(type) {
	case Asset:
		return Snapshot{Assets: []Asset{v}}.withCurrency(cur).Assets[0]
	case Liability:
		return Snapshot{Liabilities: []Liability{v}}.withCurrency(cur).Liabilities[0]
	case CashFlow:
		return Snapshot{Incomes: []CashFlow{v}}.withCurrency(cur).Incomes[0]
	}
	return it
}
