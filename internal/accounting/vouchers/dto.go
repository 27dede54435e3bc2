package vouchers

import "time"

// CreateVoucherRequest is the JSON body for recording a voucher.
type CreateVoucherRequest struct {
	Date           time.Time `json:"date" validate:"required"`
	DebitLedgerID  string    `json:"debitLedger" validate:"required,uuid4"`
	CreditLedgerID string    `json:"creditLedger" validate:"required,uuid4"`
	Amount         float64   `json:"amount" validate:"required,gt=0"`
	Narration      string    `json:"narration" validate:"max=500"`
}

// VoucherResponse is the JSON shape returned to API consumers.
type VoucherResponse struct {
	ID             string    `json:"id"`
	Number         int64     `json:"voucherNumber"`
	Date           time.Time `json:"date"`
	DebitLedgerID  string    `json:"debitLedger"`
	CreditLedgerID string    `json:"creditLedger"`
	Amount         float64   `json:"amount"`
	Narration      string    `json:"narration,omitempty"`
}

// ToResponse converts a Voucher for serialization.
func ToResponse(v Voucher) VoucherResponse {
	return VoucherResponse{
		ID:             v.ID.String(),
		Number:         v.Number,
		Date:           v.Date,
		DebitLedgerID:  v.DebitLedgerID.String(),
		CreditLedgerID: v.CreditLedgerID.String(),
		Amount:         v.Amount,
		Narration:      v.Narration,
	}
}
