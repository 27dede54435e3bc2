package shared

import "errors"

var (
	// ErrLedgerNotFound indicates a missing ledger.
	ErrLedgerNotFound = errors.New("accounting: ledger not found")
	// ErrVoucherNotFound indicates a missing voucher.
	ErrVoucherNotFound = errors.New("accounting: voucher not found")
	// ErrDuplicateName indicates a ledger name collision.
	ErrDuplicateName = errors.New("accounting: ledger name already in use")
	// ErrSystemLedger indicates an edit attempt on a system ledger.
	ErrSystemLedger = errors.New("accounting: system ledger is read-only")
	// ErrSameLedger indicates a voucher naming one ledger on both sides.
	ErrSameLedger = errors.New("accounting: debit and credit ledger must differ")
	// ErrNonPositiveAmount indicates a zero or negative voucher amount.
	ErrNonPositiveAmount = errors.New("accounting: amount must be positive")
)
