package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"poputkaBack/internal/models"
)

func newMockRepo(t *testing.T) (*TripRequestRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &TripRequestRepository{DB: db}, mock
}

func TestAcceptRequestBookingHappyPath(t *testing.T) {
	repo, mock := newMockRepo(t)

	seats := 2
	request := models.TripRequest{
		ID:             7,
		TripID:         3,
		RequesterID:    11,
		TripOwnerID:    5,
		Type:           models.RequestTypeBooking,
		Status:         models.RequestStatusPending,
		SeatsRequested: &seats,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats, is_full FROM trips").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "is_full"}).AddRow(2, false))
	mock.ExpectExec("UPDATE trips SET available_seats").
		WithArgs(0, true, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO chats").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT IGNORE INTO chat_members").
		WithArgs(9, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT IGNORE INTO chat_members").
		WithArgs(9, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_requests SET status").
		WithArgs(models.RequestStatusAccepted, 7, models.RequestStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	chatID, err := repo.AcceptRequest(context.Background(), request)
	if err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}
	if chatID != 9 {
		t.Errorf("chatID = %d; want 9", chatID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAcceptRequestTripFullRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	seats := 1
	request := models.TripRequest{
		ID:             7,
		TripID:         3,
		RequesterID:    11,
		TripOwnerID:    5,
		Type:           models.RequestTypeBooking,
		Status:         models.RequestStatusPending,
		SeatsRequested: &seats,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats, is_full FROM trips").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "is_full"}).AddRow(0, true))
	mock.ExpectRollback()

	_, err := repo.AcceptRequest(context.Background(), request)
	if !errors.Is(err, models.ErrTripFull) {
		t.Fatalf("err = %v; want ErrTripFull", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAcceptRequestNotEnoughSeatsRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	seats := 3
	request := models.TripRequest{
		ID:             7,
		TripID:         3,
		RequesterID:    11,
		TripOwnerID:    5,
		Type:           models.RequestTypeBooking,
		Status:         models.RequestStatusPending,
		SeatsRequested: &seats,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats, is_full FROM trips").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "is_full"}).AddRow(2, false))
	mock.ExpectRollback()

	_, err := repo.AcceptRequest(context.Background(), request)
	if !errors.Is(err, models.ErrNotEnoughSeats) {
		t.Fatalf("err = %v; want ErrNotEnoughSeats", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAcceptRequestChatTypeSkipsSeatLogic(t *testing.T) {
	repo, mock := newMockRepo(t)

	request := models.TripRequest{
		ID:          8,
		TripID:      3,
		RequesterID: 11,
		TripOwnerID: 5,
		Type:        models.RequestTypeChat,
		Status:      models.RequestStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM chats WHERE trip_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectExec("INSERT IGNORE INTO chat_members").
		WithArgs(4, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT IGNORE INTO chat_members").
		WithArgs(4, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE trip_requests SET status").
		WithArgs(models.RequestStatusAccepted, 8, models.RequestStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	chatID, err := repo.AcceptRequest(context.Background(), request)
	if err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}
	if chatID != 4 {
		t.Errorf("chatID = %d; want 4", chatID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUpdateStatusLostRace(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE trip_requests SET status").
		WithArgs(models.RequestStatusCancelled, 7, models.RequestStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 7, models.RequestStatusCancelled)
	if !errors.Is(err, models.ErrRequestNotPending) {
		t.Fatalf("err = %v; want ErrRequestNotPending", err)
	}
}
