package models

import (
	"errors"
	"fmt"
)

// ValidationError marks a rejected request payload.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
)

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrTripAccessDenied = errors.New("you do not have access to this trip")
	ErrTripInPast       = errors.New("departure date must be in the future")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrVehicleNotOwned  = errors.New("vehicle does not belong to you")
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrOwnTrip           = errors.New("cannot request your own trip")
	ErrTripFull          = errors.New("trip is already full")
	ErrNotEnoughSeats    = errors.New("not enough available seats")
	ErrDuplicateRequest  = errors.New("active request already exists for this trip")
	ErrSeatsRequired     = errors.New("seats requested must be at least 1 for booking requests")
	ErrRequestNotPending = errors.New("request is no longer pending")
	ErrNotTripOwner      = errors.New("only the trip owner can perform this action")
	ErrNotRequester      = errors.New("only the requester can cancel their request")
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationExists    = errors.New("reservation already exists for this trip")
	ErrReservationNotMutual = errors.New("reservation is not mutually accepted")
	ErrNotParticipant       = errors.New("only passenger or driver can perform this action")
	ErrTripNotDeparted      = errors.New("trip date has not passed yet")
	ErrTripDeparted         = errors.New("trip date has already passed")
)

var (
	ErrChatNotFound  = errors.New("chat not found")
	ErrNotChatMember = errors.New("you are not a member of this chat")
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentAccessDenied = errors.New("you cannot view this payment")
	ErrRequestNotOwned     = errors.New("request does not belong to you")
	ErrRequestTripMismatch = errors.New("request does not belong to this trip")
)
