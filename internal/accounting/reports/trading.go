package reports

import (
	"math"
	"strings"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
)

// PLRow is one labelled line on either side of the P&L account.
type PLRow struct {
	Label  string
	Amount float64
}

// TradingResult carries the trading account and profit & loss figures.
type TradingResult struct {
	OpeningStock         float64
	ClosingStock         float64
	SalesTotal           float64
	PurchaseTotal        float64
	GrossProfit          float64
	IndirectIncomeTotal  float64
	IndirectExpenseTotal float64
	NetProfitLoss        float64
	DebitRows            []PLRow
	CreditRows           []PLRow
}

// BalanceFunc resolves the balance a derivation should use for a ledger.
// Callers with precomputed balances pass a closure over them; see
// EffectiveBalance for the canonical resolution.
type BalanceFunc func(ledgers.Ledger) float64

// DeriveTradingAndPL classifies income and expense ledgers into trading
// (direct) and non-trading (indirect) buckets and computes gross and net
// profit using opening and closing stock.
//
//	grossProfit = sales + closingStock - purchases - openingStock
//	netProfit   = grossProfit + indirect incomes - indirect expenses
//
// Negative results are losses; the row builders flip the label and side
// rather than the sign convention.
func DeriveTradingAndPL(ls []ledgers.Ledger, balance BalanceFunc) TradingResult {
	var res TradingResult

	// Category rows keep first-encounter order while totals aggregate in a
	// map keyed by category.
	expenseTotals := make(map[string]float64)
	expenseOrder := make([]string, 0)
	incomeTotals := make(map[string]float64)
	incomeOrder := make([]string, 0)

	stockSeen := false
	for _, l := range ls {
		switch {
		case l.IsStockInHand() && !stockSeen:
			stockSeen = true
			res.OpeningStock = l.OpeningBalance
			if l.ClosingBalance != nil {
				res.ClosingStock = *l.ClosingBalance
			} else {
				res.ClosingStock = balance(l)
			}
		case l.Type == ledgers.TypeIncome:
			if strings.Contains(strings.ToLower(l.Category), "sale") {
				res.SalesTotal += balance(l)
			} else {
				res.IndirectIncomeTotal += balance(l)
				if _, ok := incomeTotals[l.Category]; !ok {
					incomeOrder = append(incomeOrder, l.Category)
				}
				incomeTotals[l.Category] += balance(l)
			}
		case l.Type == ledgers.TypeExpense:
			if l.SubType == ledgers.SubTypeDirectExpenses && l.Category == ledgers.CategoryPurchases {
				res.PurchaseTotal += balance(l)
			} else {
				res.IndirectExpenseTotal += balance(l)
				if _, ok := expenseTotals[l.Category]; !ok {
					expenseOrder = append(expenseOrder, l.Category)
				}
				expenseTotals[l.Category] += balance(l)
			}
		}
	}

	res.GrossProfit = res.SalesTotal + res.ClosingStock - res.PurchaseTotal - res.OpeningStock
	res.NetProfitLoss = res.GrossProfit + res.IndirectIncomeTotal - res.IndirectExpenseTotal

	if res.GrossProfit < 0 {
		res.DebitRows = append(res.DebitRows, PLRow{Label: "Gross Loss", Amount: math.Abs(res.GrossProfit)})
	}
	for _, cat := range expenseOrder {
		res.DebitRows = append(res.DebitRows, PLRow{Label: cat, Amount: expenseTotals[cat]})
	}
	if res.NetProfitLoss > 0 {
		res.DebitRows = append(res.DebitRows, PLRow{Label: "Net Profit Trfd. to Capital", Amount: res.NetProfitLoss})
	}

	if res.GrossProfit > 0 {
		res.CreditRows = append(res.CreditRows, PLRow{Label: "Gross Profit", Amount: res.GrossProfit})
	}
	for _, cat := range incomeOrder {
		res.CreditRows = append(res.CreditRows, PLRow{Label: cat, Amount: incomeTotals[cat]})
	}
	if res.NetProfitLoss < 0 {
		res.CreditRows = append(res.CreditRows, PLRow{Label: "Net Loss Trfd. to Capital", Amount: math.Abs(res.NetProfitLoss)})
	}

	return res
}
