package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/wealthflow"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	category  string
	id        string
	name      string
	typ       string
	value     string
	liquidity string
	ret       string
	amount    string
	rate      string
	payment   string
	linked    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add or edit an item of the live financials" }
func (*addCmd) Usage() string {
	return `wf add -category <category> -name <name> [flags]

  Adds an asset, a liability, an income or an expense. With -id, edits the item
  with that id (or id prefix): only the given flags are changed.

Usage Examples:
$ wf add -category asset -name "US Treasury 20Y" -type us_bond -value 1500000 -liquidity High
$ wf add -category liability -name "Home Mortgage" -type mortgage -amount 12000000 -rate 2.1 -payment 45000
$ wf add -category expense -name "Home Mortgage Payment" -amount 45000
$ wf add -category asset -id 3f2a9c1e -value 1600000

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "assets, liabilities, incomes or expenses (singular works too)")
	f.StringVar(&c.id, "id", "", "id or id prefix of the item to edit")
	f.StringVar(&c.name, "name", "", "name of the item")
	f.StringVar(&c.typ, "type", "", "asset or liability type")
	f.StringVar(&c.value, "value", "", "value of an asset")
	f.StringVar(&c.liquidity, "liquidity", "", "liquidity of an asset: High, Medium or Low")
	f.StringVar(&c.ret, "return", "", "expected annual return of an asset, in percent")
	f.StringVar(&c.amount, "amount", "", "outstanding amount of a liability, or monthly amount of an income or expense")
	f.StringVar(&c.rate, "rate", "", "annual interest rate of a liability, in percent")
	f.StringVar(&c.payment, "payment", "", "monthly payment of a liability")
	f.StringVar(&c.linked, "linked", "", "id of the expense paying a liability")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return withApp(ctx, func(a *app) error {
		cat, err := wealthflow.ParseCategory(c.category)
		if err != nil {
			return usageError{err}
		}
		live := a.ws.Financials.Snapshot()
		var base wealthflow.Item
		if c.id != "" {
			if base, err = resolveID(live.Items(cat), c.id); err != nil {
				return err
			}
		}
		it, err := c.item(cat, base, set, a.cfg.Currency)
		if err != nil {
			return err
		}
		if l, ok := it.(wealthflow.Liability); ok && set["linked"] {
			e, err := resolveID(live.Items(wealthflow.Expenses), c.linked)
			if err != nil {
				return err
			}
			l.LinkedExpenseID = e.ItemID()
			it = l
		}
		stored, err := a.ws.Financials.Put(it)
		if err != nil {
			return err
		}
		verb := "Added"
		if base != nil {
			verb = "Updated"
		}
		fmt.Printf("%s %s %q (%s)\n", verb, cat, stored.ItemName(), stored.ItemID())
		return nil
	})
}

// item builds the item of category cat from base, changing the flags in set.
func (c *addCmd) item(cat wealthflow.Category, base wealthflow.Item, set map[string]bool, cur string) (wealthflow.Item, error) {
	money := func(name, s string, m *wealthflow.Money) error {
		if !set[name] {
			return nil
		}
		v, err := wealthflow.ParseMoney(s, cur)
		if err != nil {
			return usagef("-%s: %v", name, err)
		}
		*m = v
		return nil
	}
	percent := func(name, s string, p *wealthflow.Percent) error {
		if !set[name] {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return usagef("-%s: invalid percent %q", name, s)
		}
		*p = wealthflow.Percent(v)
		return nil
	}

	switch cat {
	case wealthflow.Assets:
		a, _ := base.(wealthflow.Asset)
		if base == nil {
			a = wealthflow.Asset{Type: wealthflow.OtherAsset, Liquidity: wealthflow.MediumLiquidity}
		}
		if set["name"] {
			a.Name = c.name
		}
		if set["type"] {
			a.Type = wealthflow.AssetType(c.typ)
		}
		if set["liquidity"] {
			a.Liquidity = wealthflow.Liquidity(c.liquidity)
		}
		if err := money("value", c.value, &a.Value); err != nil {
			return nil, err
		}
		if err := percent("return", c.ret, &a.ReturnRate); err != nil {
			return nil, err
		}
		return a, nil

	case wealthflow.Liabilities:
		l, _ := base.(wealthflow.Liability)
		if base == nil {
			l = wealthflow.Liability{Type: wealthflow.OtherLiability}
		}
		if set["name"] {
			l.Name = c.name
		}
		if set["type"] {
			l.Type = wealthflow.LiabilityType(c.typ)
		}
		if err := money("amount", c.amount, &l.Amount); err != nil {
			return nil, err
		}
		if err := money("payment", c.payment, &l.MonthlyPayment); err != nil {
			return nil, err
		}
		if err := percent("rate", c.rate, &l.InterestRate); err != nil {
			return nil, err
		}
		return l, nil

	default:
		f, _ := base.(wealthflow.CashFlow)
		f.Kind = wealthflow.Expense
		if cat == wealthflow.Incomes {
			f.Kind = wealthflow.Income
		}
		if set["name"] {
			f.Name = c.name
		}
		if err := money("amount", c.amount, &f.Amount); err != nil {
			return nil, err
		}
		return f, nil
	}
}

// rmCmd holds the flags for the 'rm' subcommand.
type rmCmd struct {
	category string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove an item of the live financials" }
func (*rmCmd) Usage() string {
	return `wf rm -category <category> <id>

  Removes the item with that id, or id prefix.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "assets, liabilities, incomes or expenses (singular works too)")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) error {
		cat, err := wealthflow.ParseCategory(c.category)
		if err != nil {
			return usageError{err}
		}
		it, err := resolveID(a.ws.Financials.Snapshot().Items(cat), f.Arg(0))
		if err != nil {
			return err
		}
		a.ws.Financials.Remove(cat, it.ItemID())
		fmt.Printf("Removed %s %q\n", cat, it.ItemName())
		return nil
	})
}
