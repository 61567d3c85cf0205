package wealthflow

// DemoSnapshot is the starting point of a guest workspace: a household with
// illiquid wealth, a large mortgage and a monthly deficit.
func DemoSnapshot(currency string) Snapshot {
	m := func(v int) Money { return M(v, currency) }
	return Snapshot{
		Assets: []Asset{
			{ID: "a1", Name: "Taiwan tech private equity", Type: PrivateEquity, Value: m(2_000_000), Liquidity: LowLiquidity, ReturnRate: 15},
			{ID: "a2", Name: "US Treasury 20Y", Type: USBond, Value: m(1_500_000), Liquidity: HighLiquidity, ReturnRate: 4.5},
			{ID: "a3", Name: "Deposit insurance", Type: DepositInsurance, Value: m(500_000), Liquidity: MediumLiquidity, ReturnRate: 2},
			{ID: "a4", Name: "Global Tech Fund", Type: MutualFund, Value: m(800_000), Liquidity: HighLiquidity, ReturnRate: 8},
			{ID: "a5", Name: "Home", Type: RealEstate, Value: m(15_000_000), Liquidity: LowLiquidity, ReturnRate: 3},
		},
		Liabilities: []Liability{
			{ID: "l1", Name: "Home Mortgage", Type: Mortgage, Amount: m(12_000_000), InterestRate: 2.1, MonthlyPayment: m(45_000)},
		},
		Incomes: []CashFlow{
			{ID: "i1", Name: "Salary", Amount: m(80_000), Kind: Income},
			{ID: "i2", Name: "Bond coupons", Amount: m(5_000), Kind: Income},
		},
		Expenses: []CashFlow{
			{ID: "e1", Name: "Home Mortgage Payment", Amount: m(45_000), Kind: Expense},
			{ID: "e2", Name: "Living expenses", Amount: m(30_000), Kind: Expense},
			{ID: "e3", Name: "Insurance fee", Amount: m(5_000), Kind: Expense},
			{ID: "e4", Name: "Parents allowance", Amount: m(10_000), Kind: Expense},
		},
	}
}
