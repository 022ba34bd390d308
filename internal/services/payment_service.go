package services

import (
	"context"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

type PaymentService struct {
	PaymentRepo *repositories.PaymentRepository
	TripRepo    *repositories.TripRepository
	RequestRepo *repositories.TripRequestRepository
}

// CreatePayment records a payment intent in NOT_STARTED. When a request id
// is supplied it must belong to the payer and to the same trip.
func (s *PaymentService) CreatePayment(ctx context.Context, payerID, tripID int, req models.CreatePaymentRequest) (models.Payment, error) {
	if req.Amount < 0 {
		return models.Payment{}, models.Validationf("amount must not be negative")
	}

	if _, err := s.TripRepo.GetTripByID(ctx, tripID); err != nil {
		return models.Payment{}, err
	}

	if req.RequestID != nil {
		request, err := s.RequestRepo.GetRequestByID(ctx, *req.RequestID)
		if err != nil {
			return models.Payment{}, err
		}
		if request.RequesterID != payerID {
			return models.Payment{}, models.ErrRequestNotOwned
		}
		if request.TripID != tripID {
			return models.Payment{}, models.ErrRequestTripMismatch
		}
	}

	payment := models.Payment{
		TripID:    tripID,
		PayerID:   payerID,
		RequestID: req.RequestID,
		Amount:    req.Amount,
		Status:    models.PaymentStatusNotStarted,
	}
	return s.PaymentRepo.CreatePayment(ctx, payment)
}

// GetPaymentByID is visible to the payer and to the trip owner only.
func (s *PaymentService) GetPaymentByID(ctx context.Context, viewerID, paymentID int) (models.Payment, error) {
	payment, err := s.PaymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.PayerID != viewerID && payment.TripOwnerID != viewerID {
		return models.Payment{}, models.ErrPaymentAccessDenied
	}
	return payment, nil
}
