package models

import "time"

const (
	RequestTypeBooking = "BOOKING"
	RequestTypeChat    = "CHAT"
)

const (
	RequestStatusPending   = "PENDING"
	RequestStatusAccepted  = "ACCEPTED"
	RequestStatusRejected  = "REJECTED"
	RequestStatusCancelled = "CANCELLED"
)

const (
	RequestActionAccept = "ACCEPT"
	RequestActionReject = "REJECT"
	RequestActionCancel = "CANCEL"
)

type TripRequest struct {
	ID             int         `json:"id"`
	TripID         int         `json:"trip_id"`
	RequesterID    int         `json:"requester_id"`
	Type           string      `json:"type"`
	Status         string      `json:"status"`
	SeatsRequested *int        `json:"seats_requested,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Requester      UserSummary `json:"requester"`

	// TripOwnerID is populated on reads that join the trip, the
	// transition authorization checks need it.
	TripOwnerID int `json:"-"`
}

type CreateTripRequestRequest struct {
	Type           string `json:"type"`
	SeatsRequested *int   `json:"seats_requested"`
}

type UpdateTripRequestRequest struct {
	Action string `json:"action"`
}

// TripRequestResult is the transition response; ChatID is set when the
// request was accepted.
type TripRequestResult struct {
	TripRequest
	ChatID *int `json:"chat_id,omitempty"`
}
