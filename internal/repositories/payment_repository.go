package repositories

import (
	"context"
	"database/sql"
	"errors"

	"poputkaBack/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, payment models.Payment) (models.Payment, error) {
	var requestID sql.NullInt64
	if payment.RequestID != nil {
		requestID = sql.NullInt64{Int64: int64(*payment.RequestID), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (trip_id, payer_id, request_id, amount, status) VALUES (?, ?, ?, ?, ?)`,
		payment.TripID, payment.PayerID, requestID, payment.Amount, payment.Status,
	)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	return r.GetPaymentByID(ctx, int(id))
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id int) (models.Payment, error) {
	query := `
                SELECT p.id, p.trip_id, p.payer_id, p.request_id, p.amount, p.status, p.provider_ref, p.created_at,
                       t.user_id
                FROM payments p
                JOIN trips t ON p.trip_id = t.id
                WHERE p.id = ?
        `
	var (
		payment     models.Payment
		requestID   sql.NullInt64
		providerRef sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&payment.ID, &payment.TripID, &payment.PayerID, &requestID,
		&payment.Amount, &payment.Status, &providerRef, &payment.CreatedAt,
		&payment.TripOwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, models.ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}
	if requestID.Valid {
		v := int(requestID.Int64)
		payment.RequestID = &v
	}
	if providerRef.Valid {
		payment.ProviderRef = &providerRef.String
	}
	return payment, nil
}
