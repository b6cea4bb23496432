package store

import (
	"context"
	"fmt"
	"time"

	"rotomethiopia/internal/utils"
	"rotomethiopia/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentTableName = "rotom.payments"

var paymentColumns = utils.StructTagValues(types.Payment{})

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *types.Payment) error {
	now := time.Now()
	payment.ID = utils.NanoID()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	query, args, err := psql().Insert(paymentTableName).SetMap(utils.StructToMap(payment)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert payment query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return wrapUnique(err)
	}

	return nil
}

func (r *PaymentRepository) Payment(ctx context.Context, paymentID string) (*types.Payment, error) {
	return r.paymentWhere(ctx, sq.Eq{"id": paymentID})
}

func (r *PaymentRepository) PaymentByTxRef(ctx context.Context, txRef string) (*types.Payment, error) {
	return r.paymentWhere(ctx, sq.Eq{"tx_ref": txRef})
}

func (r *PaymentRepository) paymentWhere(ctx context.Context, pred sq.Eq) (*types.Payment, error) {
	query, args, err := psql().Select(paymentColumns...).From(paymentTableName).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment query: %w", err)
	}

	var payment = new(types.Payment)
	err = pgxscan.Get(ctx, r.pool, payment, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrPaymentNotFound
	}

	return payment, nil
}

// UpdatePaymentStatus writes the status and bumps updated_at. Repeating the
// same write is harmless, which keeps gateway callbacks idempotent.
func (r *PaymentRepository) UpdatePaymentStatus(ctx context.Context, txRef string, status types.PaymentStatus) error {
	query, args, err := psql().Update(paymentTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"tx_ref": txRef}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update payment status query for %s: %w", txRef, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update payment status")
}

// Payments lists payments newest first, optionally restricted to successful
// ones (what the admin list shows is a config decision).
func (r *PaymentRepository) Payments(ctx context.Context, onlySuccess bool, limit, offset uint64) ([]*types.Payment, error) {
	builder := psql().Select(paymentColumns...).From(paymentTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset)

	if onlySuccess {
		builder = builder.Where(sq.Eq{"status": types.PaymentStatusSuccess})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payments query: %w", err)
	}

	var payments = make([]*types.Payment, 0)
	if err := pgxscan.Select(ctx, r.pool, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) CountPayments(ctx context.Context, onlySuccess bool) (int, error) {
	builder := psql().Select("count(*)").From(paymentTableName)
	if onlySuccess {
		builder = builder.Where(sq.Eq{"status": types.PaymentStatusSuccess})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate payment count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}
