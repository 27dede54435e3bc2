package vouchers

import (
	"time"

	"github.com/google/uuid"
)

// Voucher is one double-entry transaction: the same amount moves as a debit
// on DebitLedgerID and a credit on CreditLedgerID.
type Voucher struct {
	ID             uuid.UUID
	Number         int64
	Date           time.Time
	DebitLedgerID  uuid.UUID
	CreditLedgerID uuid.UUID
	Amount         float64
	Narration      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DateRange filters voucher listings; zero bounds are open-ended.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}
