package ledgers

import (
	"time"

	"github.com/google/uuid"
)

// LedgerType enumerates the five account natures.
type LedgerType string

const (
	TypeAsset     LedgerType = "ASSET"
	TypeLiability LedgerType = "LIABILITY"
	TypeIncome    LedgerType = "INCOME"
	TypeExpense   LedgerType = "EXPENSE"
	TypeEquity    LedgerType = "EQUITY"
)

// Valid reports whether t is one of the known ledger types.
func (t LedgerType) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeIncome, TypeExpense, TypeEquity:
		return true
	}
	return false
}

// Grouping values with fixed meaning for the report builders.
const (
	CategoryStockInHand   = "Stock in Hand"
	CategoryPurchases     = "Purchases"
	SubTypeDirectExpenses = "Direct Expenses"
	SubTypeFixedAssets    = "Fixed Assets"
	SubTypeCurrentAssets  = "Current Assets"
)

// Ledger models one account in the chart of accounts.
//
// ClosingBalance is a pointer because "defined" and "zero" mean different
// things: an explicitly valued Stock in Hand ledger with closing balance 0
// overrides the computed balance with 0.
type Ledger struct {
	ID             uuid.UUID
	Name           string
	Type           LedgerType
	SubType        string
	Category       string
	OpeningBalance float64
	ClosingBalance *float64
	IsSystem       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsStockInHand reports whether the ledger carries externally valued inventory.
func (l Ledger) IsStockInHand() bool {
	return l.Category == CategoryStockInHand
}

// IsCanonicalStockInHand identifies the single system inventory ledger whose
// closing balance replaces the statement closing figure.
func (l Ledger) IsCanonicalStockInHand() bool {
	return l.Name == CategoryStockInHand && l.Category == CategoryStockInHand
}
