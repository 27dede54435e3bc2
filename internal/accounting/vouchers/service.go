package vouchers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
)

// CreateInput groups the fields required to record a voucher.
type CreateInput struct {
	Date           time.Time
	DebitLedgerID  uuid.UUID
	CreditLedgerID uuid.UUID
	Amount         float64
	Narration      string
}

// Validate checks the double-entry invariants before any I/O happens.
func (in CreateInput) Validate() error {
	if in.Amount <= 0 {
		return shared.ErrNonPositiveAmount
	}
	if in.DebitLedgerID == in.CreditLedgerID {
		return shared.ErrSameLedger
	}
	return nil
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) List(ctx context.Context, rng DateRange) ([]Voucher, error) {
	return s.repo.List(ctx, rng)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Voucher, error) {
	return s.repo.Get(ctx, id)
}

// Create assigns the next voucher number and records the transaction. Both
// referenced ledgers must exist; the check and insert share one transaction
// so a concurrently deleted ledger cannot slip through.
func (s *Service) Create(ctx context.Context, input CreateInput) (Voucher, error) {
	if err := input.Validate(); err != nil {
		return Voucher{}, err
	}
	var voucher Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, id := range []uuid.UUID{input.DebitLedgerID, input.CreditLedgerID} {
			ok, err := tx.LedgerExists(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return shared.ErrLedgerNotFound
			}
		}
		number, err := tx.NextNumber(ctx)
		if err != nil {
			return err
		}
		now := s.now()
		voucher = Voucher{
			ID:             uuid.New(),
			Number:         number,
			Date:           input.Date,
			DebitLedgerID:  input.DebitLedgerID,
			CreditLedgerID: input.CreditLedgerID,
			Amount:         input.Amount,
			Narration:      input.Narration,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.Insert(ctx, voucher)
	})
	if err != nil {
		return Voucher{}, err
	}
	return voucher, nil
}
