package models

import "time"

// TripReservation is the older dual-flag reservation lifecycle. A
// reservation is confirmed only when both sides accepted; rejection and
// cancellation delete the row instead of keeping a terminal status.
type TripReservation struct {
	ID                int       `json:"id"`
	TripID            int       `json:"trip_id"`
	PassengerID       int       `json:"passenger_id"`
	PassengerAccepted bool      `json:"passenger_accepted"`
	DriverAccepted    bool      `json:"driver_accepted"`
	CreatedAt         time.Time `json:"created_at"`

	// Trip snapshot joined on reads, used by authorization and the
	// completion checks.
	TripOwnerID       int       `json:"-"`
	TripDeparture     time.Time `json:"-"`
	TripIsFull        bool      `json:"-"`
}

func (r TripReservation) Confirmed() bool {
	return r.PassengerAccepted && r.DriverAccepted
}

type RequestReservationRequest struct {
	TripID int `json:"trip_id"`
}

// ReservationCompletionResult mirrors the completion response: the
// reservation plus the trip completion flags after the update.
type ReservationCompletionResult struct {
	Reservation TripReservation        `json:"reservation"`
	Trip        TripCompletionSnapshot `json:"trip"`
}

type TripCompletionSnapshot struct {
	ID                   int  `json:"id"`
	IsCompleted          bool `json:"is_completed"`
	CompletedByDriver    bool `json:"completed_by_driver"`
	CompletedByPassenger bool `json:"completed_by_passenger"`
}
