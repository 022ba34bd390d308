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

func newTripService(t *testing.T) (*TripService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &TripService{
		TripRepo:    &repositories.TripRepository{DB: db},
		VehicleRepo: &repositories.VehicleRepository{DB: db},
		RequestRepo: &repositories.TripRequestRepository{DB: db},
	}, mock
}

func TestCreateTripValidation(t *testing.T) {
	svc, _ := newTripService(t)
	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name string
		req  models.CreateTripRequest
	}{
		{"missing origin", models.CreateTripRequest{Destination: "Astana", DepartureTime: future, Seats: 2}},
		{"missing destination", models.CreateTripRequest{Origin: "Almaty", DepartureTime: future, Seats: 2}},
		{"zero seats", models.CreateTripRequest{Origin: "Almaty", Destination: "Astana", DepartureTime: future, Seats: 0}},
		{"negative price", models.CreateTripRequest{Origin: "Almaty", Destination: "Astana", DepartureTime: future, Seats: 2, Price: -10}},
		{"bad timestamp", models.CreateTripRequest{Origin: "Almaty", Destination: "Astana", DepartureTime: "tomorrow", Seats: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTrip(context.Background(), 1, tt.req)
			var ve models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v; want ValidationError", err)
			}
		})
	}
}

func TestCreateTripInPast(t *testing.T) {
	svc, _ := newTripService(t)

	req := models.CreateTripRequest{
		Origin:        "Almaty",
		Destination:   "Astana",
		DepartureTime: time.Now().Add(-time.Hour).Format(time.RFC3339),
		Seats:         2,
	}
	_, err := svc.CreateTrip(context.Background(), 1, req)
	if !errors.Is(err, models.ErrTripInPast) {
		t.Fatalf("err = %v; want ErrTripInPast", err)
	}
}

func TestCreateTripVehicleNotOwned(t *testing.T) {
	svc, mock := newTripService(t)

	mock.ExpectQuery("FROM vehicles WHERE id").
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "vehicle_type", "brand", "model", "seats", "created_at"}).
			AddRow(8, 99, "car", "Toyota", "Camry", 4, time.Now()))

	vehicleID := 8
	req := models.CreateTripRequest{
		Origin:        "Almaty",
		Destination:   "Astana",
		DepartureTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Seats:         2,
		VehicleID:     &vehicleID,
	}
	_, err := svc.CreateTrip(context.Background(), 1, req)
	if !errors.Is(err, models.ErrVehicleNotOwned) {
		t.Fatalf("err = %v; want ErrVehicleNotOwned", err)
	}
}

func TestCategorizeTrips(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	upcoming := models.Trip{ID: 1, DepartureTime: now.Add(24 * time.Hour)}
	pastPending := models.Trip{ID: 2, DepartureTime: now.Add(-24 * time.Hour)}
	completed := models.Trip{ID: 3, DepartureTime: now.Add(-48 * time.Hour), IsCompleted: true}
	// completed overrides the date split
	completedFuture := models.Trip{ID: 4, DepartureTime: now.Add(24 * time.Hour), IsCompleted: true}

	dashboard := categorizeTrips([]models.Trip{upcoming, pastPending, completed, completedFuture}, now)

	if len(dashboard.Upcoming) != 1 || dashboard.Upcoming[0].ID != 1 {
		t.Errorf("Upcoming = %+v; want trip 1 only", dashboard.Upcoming)
	}
	if len(dashboard.Past.Pending) != 1 || dashboard.Past.Pending[0].ID != 2 {
		t.Errorf("Past.Pending = %+v; want trip 2 only", dashboard.Past.Pending)
	}
	if len(dashboard.Past.Completed) != 2 {
		t.Errorf("Past.Completed has %d trips; want 2", len(dashboard.Past.Completed))
	}
}

func TestCategorizeTripsEmpty(t *testing.T) {
	dashboard := categorizeTrips(nil, time.Now())
	if dashboard.Upcoming == nil || dashboard.Past.Pending == nil || dashboard.Past.Completed == nil {
		t.Fatal("dashboard buckets must be empty slices, not nil")
	}
}

func TestGetTripByIDVisibility(t *testing.T) {
	svc, mock := newTripService(t)

	mock.ExpectQuery("FROM trips t").WithArgs(3).WillReturnRows(tripRow(3, 5, 4, false))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(3, 42, models.RequestStatusAccepted, 3, 42).
		WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow(false))

	_, err := svc.GetTripByID(context.Background(), 42, 3)
	if !errors.Is(err, models.ErrTripAccessDenied) {
		t.Fatalf("err = %v; want ErrTripAccessDenied", err)
	}
}

func TestBookTripOwnTrip(t *testing.T) {
	svc, mock := newTripService(t)

	mock.ExpectQuery("FROM trips t").WithArgs(3).WillReturnRows(tripRow(3, 11, 4, false))

	_, err := svc.BookTrip(context.Background(), 11, 3, 1)
	if !errors.Is(err, models.ErrOwnTrip) {
		t.Fatalf("err = %v; want ErrOwnTrip", err)
	}
}

func TestBookTripSeatsRequired(t *testing.T) {
	svc, _ := newTripService(t)

	_, err := svc.BookTrip(context.Background(), 11, 3, 0)
	if !errors.Is(err, models.ErrSeatsRequired) {
		t.Fatalf("err = %v; want ErrSeatsRequired", err)
	}
}
