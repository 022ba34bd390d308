package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

func newReservationService(t *testing.T) (*TripReservationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &TripReservationService{
		ReservationRepo: &repositories.TripReservationRepository{DB: db},
		TripRepo:        &repositories.TripRepository{DB: db},
	}, mock
}

func reservationRow(id, tripID, passengerID, ownerID int, passengerAccepted, driverAccepted bool, departure time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trip_id", "passenger_id", "passenger_accepted", "driver_accepted", "created_at",
		"trip_owner_id", "trip_departure", "trip_is_full",
	}).AddRow(
		id, tripID, passengerID, passengerAccepted, driverAccepted, time.Now(),
		ownerID, departure, false,
	)
}

func TestCompleteReservationNotMutual(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, false, time.Now().Add(-time.Hour)))

	_, err := svc.CompleteReservation(context.Background(), 11, 4, false)
	if !errors.Is(err, models.ErrReservationNotMutual) {
		t.Fatalf("err = %v; want ErrReservationNotMutual", err)
	}
}

func TestCompleteReservationNotDeparted(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(24*time.Hour)))

	_, err := svc.CompleteReservation(context.Background(), 11, 4, false)
	if !errors.Is(err, models.ErrTripNotDeparted) {
		t.Fatalf("err = %v; want ErrTripNotDeparted", err)
	}
}

func TestCompleteReservationByStranger(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(-time.Hour)))

	_, err := svc.CompleteReservation(context.Background(), 99, 4, false)
	if !errors.Is(err, models.ErrNotParticipant) {
		t.Fatalf("err = %v; want ErrNotParticipant", err)
	}
}

func TestCompleteReservationDriverEndpointByPassenger(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(-time.Hour)))

	_, err := svc.CompleteReservation(context.Background(), 11, 4, true)
	if !errors.Is(err, models.ErrNotParticipant) {
		t.Fatalf("err = %v; want ErrNotParticipant", err)
	}
}

func TestCompleteReservationByDriver(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(-time.Hour)))
	mock.ExpectExec("UPDATE trips SET completed_by_driver").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, is_completed").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_completed", "completed_by_driver", "completed_by_passenger"}).
			AddRow(3, false, true, false))

	result, err := svc.CompleteReservation(context.Background(), 5, 4, true)
	if err != nil {
		t.Fatalf("CompleteReservation: %v", err)
	}
	if result.Trip.IsCompleted {
		t.Error("trip should not be completed after one side only")
	}
	if !result.Trip.CompletedByDriver {
		t.Error("driver flag should be set")
	}
}

func TestCompleteReservationBothSides(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(-time.Hour)))
	mock.ExpectExec("UPDATE trips SET completed_by_passenger").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, is_completed").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_completed", "completed_by_driver", "completed_by_passenger"}).
			AddRow(3, true, true, true))

	result, err := svc.CompleteReservation(context.Background(), 11, 4, false)
	if err != nil {
		t.Fatalf("CompleteReservation: %v", err)
	}
	if !result.Trip.IsCompleted {
		t.Error("trip should be completed once both sides reported")
	}
}

func TestCancelReservationByStranger(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(time.Hour)))

	err := svc.CancelReservation(context.Background(), 99, 4)
	if !errors.Is(err, models.ErrNotParticipant) {
		t.Fatalf("err = %v; want ErrNotParticipant", err)
	}
}

func TestCancelReservationNotConfirmed(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, false, time.Now().Add(time.Hour)))

	err := svc.CancelReservation(context.Background(), 11, 4)
	if !errors.Is(err, models.ErrReservationNotMutual) {
		t.Fatalf("err = %v; want ErrReservationNotMutual", err)
	}
}

func TestCancelReservationAfterDeparture(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(-time.Hour)))

	err := svc.CancelReservation(context.Background(), 11, 4)
	if !errors.Is(err, models.ErrTripDeparted) {
		t.Fatalf("err = %v; want ErrTripDeparted", err)
	}
}

func TestCancelReservationClearsFull(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trip_reservations res").
		WithArgs(4).
		WillReturnRows(reservationRow(4, 3, 11, 5, true, true, time.Now().Add(time.Hour)))
	mock.ExpectExec("DELETE FROM trip_reservations").
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips SET is_full = FALSE").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.CancelReservation(context.Background(), 11, 4); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRequestReservationDeparted(t *testing.T) {
	svc, mock := newReservationService(t)

	departed := sqlmock.NewRows([]string{
		"id", "user_id", "vehicle_id", "origin", "destination", "departure_time",
		"price", "total_seats", "available_seats", "is_full", "description",
		"completed_by_driver", "completed_by_passenger", "is_completed", "created_at",
		"u_id", "u_name", "u_rating", "u_is_verified", "u_avatar_path",
	}).AddRow(
		3, 5, nil, "Almaty", "Astana", time.Now().Add(-time.Hour),
		2500.0, 4, 4, false, nil,
		false, false, false, time.Now(),
		5, "Driver", 4.8, true, nil,
	)
	mock.ExpectQuery("FROM trips t").WithArgs(3).WillReturnRows(departed)

	_, err := svc.RequestReservation(context.Background(), 11, 3)
	if !errors.Is(err, models.ErrTripDeparted) {
		t.Fatalf("err = %v; want ErrTripDeparted", err)
	}
}

func TestRequestReservationDuplicate(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trips t").WithArgs(3).WillReturnRows(tripRow(3, 5, 4, false))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(3, 11).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.RequestReservation(context.Background(), 11, 3)
	if !errors.Is(err, models.ErrReservationExists) {
		t.Fatalf("err = %v; want ErrReservationExists", err)
	}
}
