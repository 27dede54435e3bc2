package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
)

// StatementRow is one voucher's effect on the selected ledger.
type StatementRow struct {
	VoucherID      uuid.UUID
	VoucherNumber  int64
	Date           time.Time
	Side           Side
	Amount         float64
	Narration      string
	RunningBalance float64
}

// Statement is the chronological account view of a single ledger.
type Statement struct {
	LedgerID       uuid.UUID
	LedgerName     string
	LedgerType     ledgers.LedgerType
	OpeningBalance float64
	Rows           []StatementRow
	ClosingBalance float64
	DebitBalance   bool
}

// BuildStatement merges the ledger's debit and credit voucher entries into a
// date-ordered statement with a running balance after each row. The second
// return value is false when the ledger is not in the snapshot; the caller
// gets a zero statement, never an error.
func BuildStatement(ledgerID uuid.UUID, ls []ledgers.Ledger, vs []vouchers.Voucher) (Statement, bool) {
	var ledger ledgers.Ledger
	found := false
	names := make(map[uuid.UUID]string, len(ls))
	for _, l := range ls {
		names[l.ID] = l.Name
		if l.ID == ledgerID {
			ledger = l
			found = true
		}
	}
	if !found {
		return Statement{}, false
	}

	rows := make([]StatementRow, 0)
	for _, v := range vs {
		if v.DebitLedgerID == ledgerID {
			rows = append(rows, StatementRow{
				VoucherID:     v.ID,
				VoucherNumber: v.Number,
				Date:          v.Date,
				Side:          SideDebit,
				Amount:        v.Amount,
				Narration:     narration(v, SideDebit, names),
			})
		}
		if v.CreditLedgerID == ledgerID {
			rows = append(rows, StatementRow{
				VoucherID:     v.ID,
				VoucherNumber: v.Number,
				Date:          v.Date,
				Side:          SideCredit,
				Amount:        v.Amount,
				Narration:     narration(v, SideCredit, names),
			})
		}
	}

	// Equal dates keep their insertion order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	running := ledger.OpeningBalance
	for i := range rows {
		if rows[i].Side == NormalSide(ledger.Type) {
			running += rows[i].Amount
		} else {
			running -= rows[i].Amount
		}
		rows[i].RunningBalance = running
	}

	closing := running
	if ledger.IsCanonicalStockInHand() && ledger.ClosingBalance != nil {
		closing = *ledger.ClosingBalance
	}

	return Statement{
		LedgerID:       ledger.ID,
		LedgerName:     ledger.Name,
		LedgerType:     ledger.Type,
		OpeningBalance: ledger.OpeningBalance,
		Rows:           rows,
		ClosingBalance: closing,
		DebitBalance:   IsDebitBalance(ledger.Type, closing),
	}, true
}

// narration prefers the voucher's own text and otherwise synthesizes the
// classic "To <counterparty>" / "By <counterparty>" ledger phrasing.
func narration(v vouchers.Voucher, side Side, names map[uuid.UUID]string) string {
	if v.Narration != "" {
		return v.Narration
	}
	if side == SideDebit {
		if name, ok := names[v.CreditLedgerID]; ok {
			return "To " + name
		}
	} else {
		if name, ok := names[v.DebitLedgerID]; ok {
			return "By " + name
		}
	}
	return ""
}
