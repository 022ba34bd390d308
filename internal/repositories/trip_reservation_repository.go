package repositories

import (
	"context"
	"database/sql"
	"errors"

	"poputkaBack/internal/models"
)

type TripReservationRepository struct {
	DB *sql.DB
}

func (r *TripReservationRepository) CreateReservation(ctx context.Context, tripID, passengerID int) (models.TripReservation, error) {
	query := `INSERT INTO trip_reservations (trip_id, passenger_id, passenger_accepted, driver_accepted)
                  VALUES (?, ?, TRUE, FALSE)`
	res, err := r.DB.ExecContext(ctx, query, tripID, passengerID)
	if err != nil {
		return models.TripReservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TripReservation{}, err
	}
	return r.GetReservationByID(ctx, int(id))
}

func (r *TripReservationRepository) GetReservationByID(ctx context.Context, id int) (models.TripReservation, error) {
	query := `
                SELECT res.id, res.trip_id, res.passenger_id, res.passenger_accepted, res.driver_accepted, res.created_at,
                       t.user_id, t.departure_time, t.is_full
                FROM trip_reservations res
                JOIN trips t ON res.trip_id = t.id
                WHERE res.id = ?
        `
	var reservation models.TripReservation
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID, &reservation.TripID, &reservation.PassengerID,
		&reservation.PassengerAccepted, &reservation.DriverAccepted, &reservation.CreatedAt,
		&reservation.TripOwnerID, &reservation.TripDeparture, &reservation.TripIsFull,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TripReservation{}, models.ErrReservationNotFound
	}
	if err != nil {
		return models.TripReservation{}, err
	}
	return reservation, nil
}

func (r *TripReservationRepository) ReservationExists(ctx context.Context, tripID, passengerID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM trip_reservations WHERE trip_id = ? AND passenger_id = ?)`,
		tripID, passengerID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TripReservationRepository) SetDriverAccepted(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE trip_reservations SET driver_accepted = TRUE WHERE id = ?`, id)
	return err
}

// DeleteReservation removes the row outright. Rejection and cancellation
// both end up here, there is no terminal status in this lifecycle.
func (r *TripReservationRepository) DeleteReservation(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM trip_reservations WHERE id = ?`, id)
	return err
}
