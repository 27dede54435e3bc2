package ledgers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
)

// Repository persists ledgers.
type Repository interface {
	List(ctx context.Context) ([]Ledger, error)
	Get(ctx context.Context, id uuid.UUID) (Ledger, error)
	Insert(ctx context.Context, l Ledger) error
	Update(ctx context.Context, l Ledger) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const ledgerColumns = `id, name, type, sub_type, category, opening_balance, closing_balance, is_system, created_at, updated_at`

func scanLedger(row pgx.Row) (Ledger, error) {
	var l Ledger
	err := row.Scan(&l.ID, &l.Name, &l.Type, &l.SubType, &l.Category, &l.OpeningBalance, &l.ClosingBalance, &l.IsSystem, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *repository) List(ctx context.Context) ([]Ledger, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ledgerColumns+` FROM ledgers ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ledgers []Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Ledger, error) {
	l, err := scanLedger(r.pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Ledger{}, shared.ErrLedgerNotFound
	}
	return l, err
}

func (r *repository) Insert(ctx context.Context, l Ledger) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO ledgers (`+ledgerColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		l.ID, l.Name, l.Type, l.SubType, l.Category, l.OpeningBalance, l.ClosingBalance, l.IsSystem, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_ledgers_name" {
			return shared.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, l Ledger) error {
	tag, err := r.pool.Exec(ctx, `UPDATE ledgers SET name=$2, type=$3, sub_type=$4, category=$5, opening_balance=$6, closing_balance=$7, updated_at=$8 WHERE id=$1`,
		l.ID, l.Name, l.Type, l.SubType, l.Category, l.OpeningBalance, l.ClosingBalance, l.UpdatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_ledgers_name" {
			return shared.ErrDuplicateName
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrLedgerNotFound
	}
	return nil
}
