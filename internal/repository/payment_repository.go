package repository

import (
	"context"

	"github.com/segyhp/propmgmt/internal/domain"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `payment_id, lease_id, tenant_id, amount, payment_date, payment_method, payment_type,
	memo, reference_number, receipt_image_url`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetAll(ctx context.Context) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_id`

	payments := []*domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	query := r.db.Rebind(`SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = ?`)

	var payment domain.Payment
	if err := r.db.GetContext(ctx, &payment, query, paymentID); err != nil {
		return nil, notFound(err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByLease(ctx context.Context, leaseID int64) ([]*domain.Payment, error) {
	query := r.db.Rebind(`
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE lease_id = ?
		ORDER BY payment_date, payment_id
	`)

	payments := []*domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, leaseID); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	query := r.db.Rebind(`
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = ?
		ORDER BY payment_date, payment_id
	`)

	payments := []*domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, tenantID); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := r.db.Rebind(`
		INSERT INTO payments (lease_id, tenant_id, amount, payment_date, payment_method, payment_type,
			memo, reference_number, receipt_image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING payment_id
	`)

	return insertReturningID(ctx, r.db, query, &payment.PaymentID,
		payment.LeaseID,
		payment.TenantID,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.PaymentType,
		payment.Memo,
		payment.ReferenceNumber,
		payment.ReceiptImageURL,
	)
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := r.db.Rebind(`
		UPDATE payments
		SET lease_id = ?, tenant_id = ?, amount = ?, payment_date = ?, payment_method = ?, payment_type = ?,
			memo = ?, reference_number = ?, receipt_image_url = ?
		WHERE payment_id = ?
	`)

	return requireAffected(r.db.ExecContext(ctx, query,
		payment.LeaseID,
		payment.TenantID,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.PaymentType,
		payment.Memo,
		payment.ReferenceNumber,
		payment.ReceiptImageURL,
		payment.PaymentID,
	))
}

func (r *paymentRepository) Delete(ctx context.Context, paymentID int64) error {
	query := r.db.Rebind(`DELETE FROM payments WHERE payment_id = ?`)
	return requireAffected(r.db.ExecContext(ctx, query, paymentID))
}
