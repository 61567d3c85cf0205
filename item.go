package wealthflow

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category names one of the four collections of a Snapshot.
type Category string

const (
	Assets      Category = "assets"
	Liabilities Category = "liabilities"
	Incomes     Category = "incomes"
	Expenses    Category = "expenses"
)

// Categories lists all categories in display order.
var Categories = []Category{Assets, Liabilities, Incomes, Expenses}

// ParseCategory accepts the plural or singular form of a category name.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assets", "asset":
		return Assets, nil
	case "liabilities", "liability":
		return Liabilities, nil
	case "incomes", "income":
		return Incomes, nil
	case "expenses", "expense":
		return Expenses, nil
	}
	return "", fmt.Errorf("unknown category %q, expected one of assets, liabilities, incomes, expenses", s)
}

// AssetType classifies an asset.
type AssetType string

const (
	PrivateEquity    AssetType = "private_equity"
	USBond           AssetType = "us_bond"
	DepositInsurance AssetType = "deposit_insurance"
	MutualFund       AssetType = "mutual_fund"
	RealEstate       AssetType = "real_estate"
	Cash             AssetType = "cash"
	Stock            AssetType = "stock"
	OtherAsset       AssetType = "other"
)

// AssetTypes lists the known asset types.
var AssetTypes = []AssetType{PrivateEquity, USBond, DepositInsurance, MutualFund, RealEstate, Cash, Stock, OtherAsset}

// LiabilityType classifies a liability.
type LiabilityType string

const (
	Mortgage       LiabilityType = "mortgage"
	PersonalLoan   LiabilityType = "personal_loan"
	CreditCard     LiabilityType = "credit_card"
	CarLoan        LiabilityType = "car_loan"
	OtherLiability LiabilityType = "other"
)

// LiabilityTypes lists the known liability types.
var LiabilityTypes = []LiabilityType{Mortgage, PersonalLoan, CreditCard, CarLoan, OtherLiability}

// Liquidity tells how fast an asset can be turned into cash.
type Liquidity string

const (
	HighLiquidity   Liquidity = "High"
	MediumLiquidity Liquidity = "Medium"
	LowLiquidity    Liquidity = "Low"
)

// Kind tells whether a CashFlow is an income or an expense.
type Kind string

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

// Item is the common view over assets, liabilities, incomes and expenses.
type Item interface {
	ItemID() string
	ItemName() string
	// Magnitude is the value of an asset, the outstanding amount of a
	// liability or the monthly amount of a cash flow.
	Magnitude() Money
	Category() Category
}

// Asset is something owned.
type Asset struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Type       AssetType `json:"type" yaml:"type"`
	Value      Money     `json:"value" yaml:"value"`
	ReturnRate Percent   `json:"returnRate,omitempty" yaml:"returnRate"` // expected annual return
	Liquidity  Liquidity `json:"liquidity" yaml:"liquidity"`
}

func (a Asset) ItemID() string     { return a.ID }
func (a Asset) ItemName() string   { return a.Name }
func (a Asset) Magnitude() Money   { return a.Value }
func (a Asset) Category() Category { return Assets }

// Liability is something owed.
type Liability struct {
	ID             string        `json:"id" yaml:"id"`
	Name           string        `json:"name" yaml:"name"`
	Type           LiabilityType `json:"type" yaml:"type"`
	Amount         Money         `json:"amount" yaml:"amount"`             // outstanding balance
	InterestRate   Percent       `json:"interestRate" yaml:"interestRate"` // annual
	MonthlyPayment Money         `json:"monthlyPayment" yaml:"monthlyPayment"`
	// LinkedExpenseID optionally names the expense paying this liability.
	LinkedExpenseID string `json:"linkedExpenseId,omitempty" yaml:"linkedExpenseId"`
}

func (l Liability) ItemID() string     { return l.ID }
func (l Liability) ItemName() string   { return l.Name }
func (l Liability) Magnitude() Money   { return l.Amount }
func (l Liability) Category() Category { return Liabilities }

// CashFlow is a monthly income or expense.
type CashFlow struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Amount Money  `json:"amount" yaml:"amount"` // normalized to monthly
	Kind   Kind   `json:"type" yaml:"type"`
}

func (c CashFlow) ItemID() string   { return c.ID }
func (c CashFlow) ItemName() string { return c.Name }
func (c CashFlow) Magnitude() Money { return c.Amount }
func (c CashFlow) Category() Category {
	if c.Kind == Income {
		return Incomes
	}
	return Expenses
}

// NewID returns a fresh unique identifier for an item or a scenario.
func NewID() string { return uuid.NewString() }

// indexOf returns the position of the item with the given id, or -1.
func indexOf[T Item](list []T, id string) int {
	for i, it := range list {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// without returns a new list without the item with the given id.
func without[T Item](list []T, id string) []T {
	out := make([]T, 0, len(list))
	for _, it := range list {
		if it.ItemID() != id {
			out = append(out, it)
		}
	}
	return out
}

// missing returns the items of from that are not in in, by identity.
func missing[T Item](from, in []T) []T {
	var out []T
	for _, it := range from {
		if indexOf(in, it.ItemID()) < 0 {
			out = append(out, it)
		}
	}
	return out
}

// total sums the magnitude of all items.
func total[T Item](list []T) Money {
	var sum Money
	for _, it := range list {
		sum = sum.Add(it.Magnitude())
	}
	return sum
}
