package reports

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
)

func TestBuildStatementExample(t *testing.T) {
	cash := newLedger("Cash", ledgers.TypeAsset, 1000)
	sales := newLedger("Sales", ledgers.TypeIncome, 0)
	sales.Category = "Sales"
	ls := []ledgers.Ledger{cash, sales}
	vs := []vouchers.Voucher{newVoucher(cash.ID, sales.ID, 500, 1)}

	st, ok := BuildStatement(cash.ID, ls, vs)
	if !ok {
		t.Fatal("expected statement for cash ledger")
	}
	if len(st.Rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(st.Rows))
	}
	if st.Rows[0].Side != SideDebit || st.Rows[0].RunningBalance != 1500 {
		t.Fatalf("expected D row running 1500 got %s %v", st.Rows[0].Side, st.Rows[0].RunningBalance)
	}
	if st.ClosingBalance != 1500 || !st.DebitBalance {
		t.Fatalf("expected debit closing 1500 got %v debit=%v", st.ClosingBalance, st.DebitBalance)
	}

	st, ok = BuildStatement(sales.ID, ls, vs)
	if !ok {
		t.Fatal("expected statement for sales ledger")
	}
	if st.Rows[0].Side != SideCredit || st.Rows[0].RunningBalance != 500 {
		t.Fatalf("expected C row running 500 got %s %v", st.Rows[0].Side, st.Rows[0].RunningBalance)
	}
	if st.DebitBalance {
		t.Fatal("positive income balance is a credit balance")
	}
}

func TestBuildStatementUnknownLedger(t *testing.T) {
	_, ok := BuildStatement(uuid.New(), []ledgers.Ledger{newLedger("Cash", ledgers.TypeAsset, 0)}, nil)
	if ok {
		t.Fatal("unknown ledger must yield no statement")
	}
}

func TestBuildStatementOrderingAndContinuity(t *testing.T) {
	cash := newLedger("Cash", ledgers.TypeAsset, 100)
	sales := newLedger("Sales", ledgers.TypeIncome, 0)
	sales.Category = "Sales"
	rent := newLedger("Rent", ledgers.TypeExpense, 0)
	rent.Category = "Rent"
	ls := []ledgers.Ledger{cash, sales, rent}

	// Deliberately out of order; one pair shares a date.
	vs := []vouchers.Voucher{
		newVoucher(rent.ID, cash.ID, 30, 10),
		newVoucher(cash.ID, sales.ID, 200, 5),
		newVoucher(cash.ID, sales.ID, 50, 10),
	}

	st, ok := BuildStatement(cash.ID, ls, vs)
	if !ok {
		t.Fatal("expected statement")
	}
	if len(st.Rows) != 3 {
		t.Fatalf("expected 3 rows got %d", len(st.Rows))
	}
	if !st.Rows[0].Date.Equal(time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("rows not sorted by date: first row %v", st.Rows[0].Date)
	}
	// Same-date entries keep insertion order: the rent payment precedes the
	// second sale because it appeared first in the voucher slice.
	if st.Rows[1].Side != SideCredit || st.Rows[1].Amount != 30 {
		t.Fatalf("stable tie-break violated: got %s %v", st.Rows[1].Side, st.Rows[1].Amount)
	}
	if st.Rows[2].RunningBalance != 320 {
		t.Fatalf("expected final running 320 got %v", st.Rows[2].RunningBalance)
	}

	// Continuity: the final running balance matches ComputeBalances.
	balances := ComputeBalances(ls, vs)
	if st.Rows[len(st.Rows)-1].RunningBalance != balances[cash.ID] {
		t.Fatalf("statement %v disagrees with computed balance %v",
			st.Rows[len(st.Rows)-1].RunningBalance, balances[cash.ID])
	}
}

func TestBuildStatementNarration(t *testing.T) {
	cash := newLedger("Cash", ledgers.TypeAsset, 0)
	sales := newLedger("Sales", ledgers.TypeIncome, 0)
	ls := []ledgers.Ledger{cash, sales}

	noted := newVoucher(cash.ID, sales.ID, 10, 1)
	noted.Narration = "April rent collected"
	plain := newVoucher(cash.ID, sales.ID, 20, 2)
	vs := []vouchers.Voucher{noted, plain}

	st, _ := BuildStatement(cash.ID, ls, vs)
	if st.Rows[0].Narration != "April rent collected" {
		t.Fatalf("voucher narration must win, got %q", st.Rows[0].Narration)
	}
	if st.Rows[1].Narration != "To Sales" {
		t.Fatalf("expected synthesized \"To Sales\" got %q", st.Rows[1].Narration)
	}

	st, _ = BuildStatement(sales.ID, ls, vs)
	if st.Rows[1].Narration != "By Cash" {
		t.Fatalf("expected synthesized \"By Cash\" got %q", st.Rows[1].Narration)
	}
}

func TestBuildStatementStockClosingOverride(t *testing.T) {
	stock := newLedger("Stock in Hand", ledgers.TypeAsset, 200)
	stock.Category = ledgers.CategoryStockInHand
	stock.ClosingBalance = floatPtr(450)
	cash := newLedger("Cash", ledgers.TypeAsset, 0)
	ls := []ledgers.Ledger{stock, cash}
	vs := []vouchers.Voucher{newVoucher(stock.ID, cash.ID, 100, 1)}

	st, _ := BuildStatement(stock.ID, ls, vs)
	if st.Rows[0].RunningBalance != 300 {
		t.Fatalf("running balance still folds movements, got %v", st.Rows[0].RunningBalance)
	}
	if st.ClosingBalance != 450 {
		t.Fatalf("canonical stock ledger closing must use the external valuation, got %v", st.ClosingBalance)
	}
}

func TestBuildStatementEmptyLedger(t *testing.T) {
	cold := newLedger("Cold Room Rent", ledgers.TypeIncome, 120)
	st, ok := BuildStatement(cold.ID, []ledgers.Ledger{cold}, nil)
	if !ok {
		t.Fatal("expected statement")
	}
	if len(st.Rows) != 0 {
		t.Fatalf("expected no rows got %d", len(st.Rows))
	}
	if st.ClosingBalance != 120 {
		t.Fatalf("closing must equal opening for an untouched ledger, got %v", st.ClosingBalance)
	}
}
