package ledgers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
)

// CreateInput groups the fields accepted when opening a ledger.
type CreateInput struct {
	Name           string
	Type           LedgerType
	SubType        string
	Category       string
	OpeningBalance float64
	ClosingBalance *float64
}

// UpdateInput carries a full replacement of the editable ledger fields.
type UpdateInput struct {
	Name           string
	Type           LedgerType
	SubType        string
	Category       string
	OpeningBalance float64
	ClosingBalance *float64
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

func (s *Service) List(ctx context.Context) ([]Ledger, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Ledger, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Ledger, error) {
	if input.Name == "" {
		return Ledger{}, errors.New("accounting: ledger name required")
	}
	if !input.Type.Valid() {
		return Ledger{}, errors.New("accounting: unknown ledger type")
	}
	now := s.now()
	l := Ledger{
		ID:             uuid.New(),
		Name:           input.Name,
		Type:           input.Type,
		SubType:        input.SubType,
		Category:       input.Category,
		OpeningBalance: input.OpeningBalance,
		ClosingBalance: input.ClosingBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, l); err != nil {
		return Ledger{}, err
	}
	return l, nil
}

// Update replaces the editable fields of a user ledger. System ledgers
// reject changes to their classification; a type change on a user ledger
// resets sub type and category, the caller reclassifies afterwards.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (Ledger, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Ledger{}, err
	}
	if !input.Type.Valid() {
		return Ledger{}, errors.New("accounting: unknown ledger type")
	}
	if current.IsSystem {
		if input.Type != current.Type || input.SubType != current.SubType || input.Category != current.Category {
			return Ledger{}, shared.ErrSystemLedger
		}
	}

	next := current
	next.Name = input.Name
	next.OpeningBalance = input.OpeningBalance
	next.ClosingBalance = input.ClosingBalance
	if input.Type != current.Type {
		next.Type = input.Type
		next.SubType = ""
		next.Category = ""
	} else {
		next.SubType = input.SubType
		next.Category = input.Category
	}
	next.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, next); err != nil {
		return Ledger{}, err
	}
	return next, nil
}
