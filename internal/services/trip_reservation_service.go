package services

import (
	"context"
	"time"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

type TripReservationService struct {
	ReservationRepo *repositories.TripReservationRepository
	TripRepo        *repositories.TripRepository
}

// RequestReservation starts the dual-flag lifecycle: the passenger side is
// accepted at creation, the driver side waits.
func (s *TripReservationService) RequestReservation(ctx context.Context, passengerID, tripID int) (models.TripReservation, error) {
	trip, err := s.TripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return models.TripReservation{}, err
	}
	if trip.UserID == passengerID {
		return models.TripReservation{}, models.ErrOwnTrip
	}
	if trip.IsFull {
		return models.TripReservation{}, models.ErrTripFull
	}
	if !trip.DepartureTime.After(time.Now()) {
		return models.TripReservation{}, models.ErrTripDeparted
	}

	exists, err := s.ReservationRepo.ReservationExists(ctx, tripID, passengerID)
	if err != nil {
		return models.TripReservation{}, err
	}
	if exists {
		return models.TripReservation{}, models.ErrReservationExists
	}

	return s.ReservationRepo.CreateReservation(ctx, tripID, passengerID)
}

func (s *TripReservationService) AcceptReservation(ctx context.Context, actorID, reservationID int) (models.TripReservation, error) {
	reservation, err := s.ReservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return models.TripReservation{}, err
	}
	if reservation.TripOwnerID != actorID {
		return models.TripReservation{}, models.ErrNotTripOwner
	}

	if err = s.ReservationRepo.SetDriverAccepted(ctx, reservationID); err != nil {
		return models.TripReservation{}, err
	}
	reservation.DriverAccepted = true
	return reservation, nil
}

// RejectReservation deletes the row, there is no terminal status in this
// lifecycle.
func (s *TripReservationService) RejectReservation(ctx context.Context, actorID, reservationID int) error {
	reservation, err := s.ReservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.TripOwnerID != actorID {
		return models.ErrNotTripOwner
	}
	return s.ReservationRepo.DeleteReservation(ctx, reservationID)
}

// CancelReservation deletes a confirmed reservation before departure and
// clears the trip fullness flag so the freed spot becomes searchable again.
// Either side of the reservation may cancel.
func (s *TripReservationService) CancelReservation(ctx context.Context, actorID, reservationID int) error {
	reservation, err := s.ReservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if !reservation.Confirmed() {
		return models.ErrReservationNotMutual
	}
	if actorID != reservation.PassengerID && actorID != reservation.TripOwnerID {
		return models.ErrNotParticipant
	}
	if !reservation.TripDeparture.After(time.Now()) {
		return models.ErrTripDeparted
	}

	if err = s.ReservationRepo.DeleteReservation(ctx, reservationID); err != nil {
		return err
	}
	return s.TripRepo.ClearFull(ctx, reservation.TripID)
}

// CompleteReservation records one side's completion after the trip date
// passed. The driver endpoint may only be called by the driver and the
// passenger endpoint by the passenger; the trip is completed only when
// both sides have reported.
func (s *TripReservationService) CompleteReservation(ctx context.Context, actorID, reservationID int, byDriver bool) (models.ReservationCompletionResult, error) {
	reservation, err := s.ReservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return models.ReservationCompletionResult{}, err
	}
	if !reservation.Confirmed() {
		return models.ReservationCompletionResult{}, models.ErrReservationNotMutual
	}
	if reservation.TripDeparture.After(time.Now()) {
		return models.ReservationCompletionResult{}, models.ErrTripNotDeparted
	}
	if byDriver && actorID != reservation.TripOwnerID {
		return models.ReservationCompletionResult{}, models.ErrNotParticipant
	}
	if !byDriver && actorID != reservation.PassengerID {
		return models.ReservationCompletionResult{}, models.ErrNotParticipant
	}

	snapshot, err := s.TripRepo.MarkCompleted(ctx, reservation.TripID, byDriver)
	if err != nil {
		return models.ReservationCompletionResult{}, err
	}
	return models.ReservationCompletionResult{
		Reservation: reservation,
		Trip:        snapshot,
	}, nil
}
