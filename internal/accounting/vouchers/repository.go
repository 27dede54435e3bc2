package vouchers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
	"github.com/coldstore-erp/coldstore-erp/internal/platform/db"
)

// TxRepository exposes the operations available inside a voucher transaction.
type TxRepository interface {
	LedgerExists(ctx context.Context, id uuid.UUID) (bool, error)
	NextNumber(ctx context.Context) (int64, error)
	Insert(ctx context.Context, v Voucher) error
}

// Repository persists vouchers.
type Repository interface {
	List(ctx context.Context, r DateRange) ([]Voucher, error)
	Get(ctx context.Context, id uuid.UUID) (Voucher, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const voucherColumns = `id, number, date, debit_ledger_id, credit_ledger_id, amount, narration, created_at, updated_at`

func scanVoucher(row pgx.Row) (Voucher, error) {
	var v Voucher
	err := row.Scan(&v.ID, &v.Number, &v.Date, &v.DebitLedgerID, &v.CreditLedgerID, &v.Amount, &v.Narration, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *repository) List(ctx context.Context, rng DateRange) ([]Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers`
	args := make([]any, 0, 2)
	switch {
	case !rng.From.IsZero() && !rng.To.IsZero():
		query += ` WHERE date BETWEEN $1 AND $2`
		args = append(args, rng.From, rng.To)
	case !rng.From.IsZero():
		query += ` WHERE date >= $1`
		args = append(args, rng.From)
	case !rng.To.IsZero():
		query += ` WHERE date <= $1`
		args = append(args, rng.To)
	}
	query += ` ORDER BY date, number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vouchers []Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Voucher, error) {
	v, err := scanVoucher(r.pool.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Voucher{}, shared.ErrVoucherNotFound
	}
	return v, err
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) LedgerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledgers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *txRepository) NextNumber(ctx context.Context) (int64, error) {
	var number int64
	err := r.tx.QueryRow(ctx, `SELECT nextval('voucher_number_seq')`).Scan(&number)
	return number, err
}

func (r *txRepository) Insert(ctx context.Context, v Voucher) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO vouchers (`+voucherColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		v.ID, v.Number, v.Date, v.DebitLedgerID, v.CreditLedgerID, v.Amount, v.Narration, v.CreatedAt, v.UpdatedAt)
	return err
}
