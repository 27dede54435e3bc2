package ledgers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
	_ "github.com/coldstore-erp/coldstore-erp/testing"
)

type memoryRepo struct {
	byID  map[uuid.UUID]Ledger
	order []uuid.UUID
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[uuid.UUID]Ledger{}}
}

func (r *memoryRepo) List(ctx context.Context) ([]Ledger, error) {
	out := make([]Ledger, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (Ledger, error) {
	l, ok := r.byID[id]
	if !ok {
		return Ledger{}, shared.ErrLedgerNotFound
	}
	return l, nil
}

func (r *memoryRepo) Insert(ctx context.Context, l Ledger) error {
	for _, existing := range r.byID {
		if existing.Name == l.Name {
			return shared.ErrDuplicateName
		}
	}
	r.byID[l.ID] = l
	r.order = append(r.order, l.ID)
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, l Ledger) error {
	if _, ok := r.byID[l.ID]; !ok {
		return shared.ErrLedgerNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
}

func TestCreateLedger(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	svc.WithNow(fixedNow)

	l, err := svc.Create(context.Background(), CreateInput{
		Name:           "Cash",
		Type:           TypeAsset,
		SubType:        SubTypeCurrentAssets,
		OpeningBalance: 1000,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, l.ID)
	require.Equal(t, "Cash", l.Name)
	require.Equal(t, TypeAsset, l.Type)
	require.Equal(t, fixedNow(), l.CreatedAt)
	require.False(t, l.IsSystem)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreateLedgerRejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateInput{Type: TypeAsset})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Cash", Type: LedgerType("BOGUS")})
	require.Error(t, err)
}

func TestCreateLedgerDuplicateName(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Cash", Type: TypeAsset})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Cash", Type: TypeAsset})
	require.ErrorIs(t, err, shared.ErrDuplicateName)
}

func TestUpdateLedgerTypeChangeResetsClassification(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	svc.WithNow(fixedNow)

	created, err := svc.Create(context.Background(), CreateInput{
		Name:     "Delivery Van",
		Type:     TypeAsset,
		SubType:  SubTypeFixedAssets,
		Category: "Vehicles",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		Name:    "Delivery Van",
		Type:    TypeExpense,
		SubType: SubTypeFixedAssets,
	})
	require.NoError(t, err)
	require.Equal(t, TypeExpense, updated.Type)
	require.Empty(t, updated.SubType)
	require.Empty(t, updated.Category)
}

func TestUpdateLedgerSameTypeKeepsClassification(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "Electricity", Type: TypeExpense,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		Name:     "Electricity",
		Type:     TypeExpense,
		SubType:  "Indirect Expenses",
		Category: "Utilities",
	})
	require.NoError(t, err)
	require.Equal(t, "Indirect Expenses", updated.SubType)
	require.Equal(t, "Utilities", updated.Category)
}

func TestUpdateSystemLedgerGuard(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	system := Ledger{
		ID:       uuid.New(),
		Name:     CategoryStockInHand,
		Type:     TypeAsset,
		SubType:  SubTypeCurrentAssets,
		Category: CategoryStockInHand,
		IsSystem: true,
	}
	require.NoError(t, repo.Insert(context.Background(), system))

	_, err := svc.Update(context.Background(), system.ID, UpdateInput{
		Name: system.Name,
		Type: TypeExpense,
	})
	require.ErrorIs(t, err, shared.ErrSystemLedger)

	// Balances stay editable on system ledgers.
	closing := 750.0
	updated, err := svc.Update(context.Background(), system.ID, UpdateInput{
		Name:           system.Name,
		Type:           system.Type,
		SubType:        system.SubType,
		Category:       system.Category,
		OpeningBalance: 200,
		ClosingBalance: &closing,
	})
	require.NoError(t, err)
	require.Equal(t, 200.0, updated.OpeningBalance)
	require.NotNil(t, updated.ClosingBalance)
	require.Equal(t, 750.0, *updated.ClosingBalance)
}

func TestUpdateLedgerNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: "Ghost", Type: TypeAsset})
	require.ErrorIs(t, err, shared.ErrLedgerNotFound)
}
