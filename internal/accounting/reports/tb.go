package reports

import (
	"math"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
)

// TrialBalanceRow places one ledger's effective balance in the debit or
// credit column.
type TrialBalanceRow struct {
	LedgerID uuid.UUID
	Name     string
	SubType  string
	Category string
	Debit    float64
	Credit   float64
}

// TrialBalanceGroup aggregates rows of one ledger type for presentation.
type TrialBalanceGroup struct {
	Type   ledgers.LedgerType
	Rows   []TrialBalanceRow
	Debit  float64
	Credit float64
}

// TrialBalance is the grouped listing of every ledger's balance.
type TrialBalance struct {
	Groups      []TrialBalanceGroup
	TotalDebit  float64
	TotalCredit float64
	Balanced    bool
}

// trialBalanceOrder fixes group presentation order.
var trialBalanceOrder = []ledgers.LedgerType{
	ledgers.TypeAsset,
	ledgers.TypeLiability,
	ledgers.TypeEquity,
	ledgers.TypeIncome,
	ledgers.TypeExpense,
}

// BuildTrialBalance lists every ledger's effective balance under its Dr or
// Cr column, grouped by ledger type. Ledgers keep encounter order inside a
// group.
func BuildTrialBalance(ls []ledgers.Ledger, vs []vouchers.Voucher) TrialBalance {
	balances := ComputeBalances(ls, vs)

	groups := make(map[ledgers.LedgerType]*TrialBalanceGroup, len(trialBalanceOrder))
	for _, t := range trialBalanceOrder {
		groups[t] = &TrialBalanceGroup{Type: t}
	}

	for _, l := range ls {
		grp, ok := groups[l.Type]
		if !ok {
			continue
		}
		balance := EffectiveBalance(l, balances)
		row := TrialBalanceRow{
			LedgerID: l.ID,
			Name:     l.Name,
			SubType:  l.SubType,
			Category: l.Category,
		}
		if IsDebitBalance(l.Type, balance) {
			row.Debit = math.Abs(balance)
		} else {
			row.Credit = math.Abs(balance)
		}
		grp.Rows = append(grp.Rows, row)
		grp.Debit += row.Debit
		grp.Credit += row.Credit
	}

	result := TrialBalance{}
	for _, t := range trialBalanceOrder {
		grp := groups[t]
		if len(grp.Rows) == 0 {
			continue
		}
		result.Groups = append(result.Groups, *grp)
		result.TotalDebit += grp.Debit
		result.TotalCredit += grp.Credit
	}
	result.Balanced = math.Abs(result.TotalDebit-result.TotalCredit) < balanceEpsilon
	return result
}
