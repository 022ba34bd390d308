package models

import "time"

// Payment statuses. Only NOT_STARTED is ever written today, the rest are
// reserved for the processor integration.
const (
	PaymentStatusNotStarted = "NOT_STARTED"
	PaymentStatusStarted    = "STARTED"
	PaymentStatusPaid       = "PAID"
	PaymentStatusFailed     = "FAILED"
	PaymentStatusRefunded   = "REFUNDED"
)

type Payment struct {
	ID          int       `json:"id"`
	TripID      int       `json:"trip_id"`
	PayerID     int       `json:"payer_id"`
	RequestID   *int      `json:"request_id,omitempty"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ProviderRef *string   `json:"provider_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	TripOwnerID int `json:"-"`
}

type CreatePaymentRequest struct {
	Amount    float64 `json:"amount"`
	RequestID *int    `json:"request_id"`
}
