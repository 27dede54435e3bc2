// Package reports derives balances, ledger statements, trading and profit &
// loss accounts, trial balances, and balance sheets from ledger and voucher
// snapshots. Everything here is a pure function over its inputs: no state is
// kept between calls and the same snapshot always yields the same output.
package reports

import (
	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
)

// Side marks the debit or credit column of an entry or balance.
type Side string

const (
	SideDebit  Side = "D"
	SideCredit Side = "C"
)

// NormalSide returns the side on which a ledger type's balance grows. Every
// builder in this package routes sign decisions through this one function so
// the convention cannot drift between reports.
func NormalSide(t ledgers.LedgerType) Side {
	switch t {
	case ledgers.TypeAsset, ledgers.TypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// ComputeBalances folds every voucher movement into each ledger's opening
// balance. Vouchers referencing an unknown ledger contribute nothing on that
// side; ledgers untouched by any voucher keep their opening balance. A
// Stock in Hand ledger with a defined closing balance ends up with exactly
// that value, the computed movement is discarded (inventory is valued
// externally, not through vouchers).
func ComputeBalances(ls []ledgers.Ledger, vs []vouchers.Voucher) map[uuid.UUID]float64 {
	index := make(map[uuid.UUID]ledgers.Ledger, len(ls))
	balances := make(map[uuid.UUID]float64, len(ls))
	for _, l := range ls {
		index[l.ID] = l
		balances[l.ID] = l.OpeningBalance
	}

	for _, v := range vs {
		if l, ok := index[v.DebitLedgerID]; ok {
			if NormalSide(l.Type) == SideDebit {
				balances[l.ID] += v.Amount
			} else {
				balances[l.ID] -= v.Amount
			}
		}
		if l, ok := index[v.CreditLedgerID]; ok {
			if NormalSide(l.Type) == SideCredit {
				balances[l.ID] += v.Amount
			} else {
				balances[l.ID] -= v.Amount
			}
		}
	}

	for _, l := range ls {
		if l.IsStockInHand() && l.ClosingBalance != nil {
			balances[l.ID] = *l.ClosingBalance
		}
	}
	return balances
}

// EffectiveBalance resolves the single balance figure a report should show
// for a ledger. Resolution order: the Stock in Hand closing-balance override,
// then the computed balance, then a defined closing balance, then zero. The
// checks are presence checks, never truthiness: a computed or closing balance
// of exactly 0 is a valid value and does not fall through.
func EffectiveBalance(l ledgers.Ledger, balances map[uuid.UUID]float64) float64 {
	if l.IsStockInHand() && l.ClosingBalance != nil {
		return *l.ClosingBalance
	}
	if b, ok := balances[l.ID]; ok {
		return b
	}
	if l.ClosingBalance != nil {
		return *l.ClosingBalance
	}
	return 0
}

// IsDebitBalance interprets a stored balance as a Dr or Cr condition. A
// non-negative balance on a debit-natured ledger is a debit balance; a
// negative balance on a credit-natured ledger also represents a debit
// condition (the account flipped past zero).
func IsDebitBalance(t ledgers.LedgerType, balance float64) bool {
	if NormalSide(t) == SideDebit {
		return balance >= 0
	}
	return balance < 0
}
