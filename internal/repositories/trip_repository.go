package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"poputkaBack/internal/models"
)

type TripRepository struct {
	DB *sql.DB
}

const tripSelectColumns = `
                t.id, t.user_id, t.vehicle_id, t.origin, t.destination, t.departure_time,
                t.price, t.total_seats, t.available_seats, t.is_full, t.description,
                t.completed_by_driver, t.completed_by_passenger, t.is_completed, t.created_at,
                u.id, u.name, u.rating, u.is_verified, u.avatar_path`

func scanTrip(row interface{ Scan(...interface{}) error }) (models.Trip, error) {
	var (
		trip        models.Trip
		vehicleID   sql.NullInt64
		description sql.NullString
		avatar      sql.NullString
	)
	err := row.Scan(
		&trip.ID, &trip.UserID, &vehicleID, &trip.Origin, &trip.Destination, &trip.DepartureTime,
		&trip.Price, &trip.TotalSeats, &trip.AvailableSeats, &trip.IsFull, &description,
		&trip.CompletedByDriver, &trip.CompletedByPassenger, &trip.IsCompleted, &trip.CreatedAt,
		&trip.Driver.ID, &trip.Driver.Name, &trip.Driver.Rating, &trip.Driver.IsVerified, &avatar,
	)
	if err != nil {
		return models.Trip{}, err
	}
	if vehicleID.Valid {
		id := int(vehicleID.Int64)
		trip.VehicleID = &id
	}
	if description.Valid {
		trip.Description = &description.String
	}
	if avatar.Valid {
		trip.Driver.AvatarPath = &avatar.String
	}
	return trip, nil
}

func (r *TripRepository) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	query := `
                INSERT INTO trips (user_id, vehicle_id, origin, destination, departure_time, price,
                                   total_seats, available_seats, is_full, description)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `
	var vehicleID sql.NullInt64
	if trip.VehicleID != nil {
		vehicleID = sql.NullInt64{Int64: int64(*trip.VehicleID), Valid: true}
	}
	var description sql.NullString
	if trip.Description != nil && strings.TrimSpace(*trip.Description) != "" {
		description = sql.NullString{String: strings.TrimSpace(*trip.Description), Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query,
		trip.UserID, vehicleID, trip.Origin, trip.Destination, trip.DepartureTime,
		trip.Price, trip.TotalSeats, trip.AvailableSeats, trip.IsFull, description,
	)
	if err != nil {
		return models.Trip{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Trip{}, err
	}
	return r.GetTripByID(ctx, int(id))
}

func (r *TripRepository) GetTripByID(ctx context.Context, id int) (models.Trip, error) {
	query := `SELECT ` + tripSelectColumns + `
                FROM trips t
                JOIN users u ON t.user_id = u.id
                WHERE t.id = ?`
	trip, err := scanTrip(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, models.ErrTripNotFound
	}
	if err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

// HasAcceptedParticipation reports whether the user holds an ACCEPTED
// request or a mutually accepted reservation on the trip.
func (r *TripRepository) HasAcceptedParticipation(ctx context.Context, tripID, userID int) (bool, error) {
	query := `
                SELECT EXISTS (
                        SELECT 1 FROM trip_requests
                        WHERE trip_id = ? AND requester_id = ? AND status = ?
                ) OR EXISTS (
                        SELECT 1 FROM trip_reservations
                        WHERE trip_id = ? AND passenger_id = ? AND passenger_accepted = TRUE AND driver_accepted = TRUE
                )
        `
	var ok bool
	err := r.DB.QueryRowContext(ctx, query, tripID, userID, models.RequestStatusAccepted, tripID, userID).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func appendFilterParts(filter models.TripFilter, parts *[]string, args *[]interface{}) {
	if filter.Origin != "" {
		*parts = append(*parts, "AND LOWER(t.origin) LIKE ?")
		*args = append(*args, "%"+strings.ToLower(filter.Origin)+"%")
	}
	if filter.Destination != "" {
		*parts = append(*parts, "AND LOWER(t.destination) LIKE ?")
		*args = append(*args, "%"+strings.ToLower(filter.Destination)+"%")
	}
	if filter.PriceFrom != nil {
		*parts = append(*parts, "AND t.price >= ?")
		*args = append(*args, *filter.PriceFrom)
	}
	if filter.PriceTo != nil {
		*parts = append(*parts, "AND t.price <= ?")
		*args = append(*args, *filter.PriceTo)
	}
	if filter.MinSeats > 0 {
		*parts = append(*parts, "AND t.available_seats >= ?")
		*args = append(*args, filter.MinSeats)
	}
	if filter.OnlyAvailable {
		*parts = append(*parts, "AND t.is_full = FALSE")
	}
	if filter.Date != nil {
		*parts = append(*parts, "AND t.departure_time >= ? AND t.departure_time < ?")
		*args = append(*args, *filter.Date, filter.Date.AddDate(0, 0, 1))
	}
	switch filter.Scope {
	case models.TripScopeUpcoming:
		*parts = append(*parts, "AND t.departure_time > NOW()")
	case models.TripScopePast:
		*parts = append(*parts, "AND t.departure_time <= NOW()")
	}
}

func (r *TripRepository) queryTrips(ctx context.Context, query string, args []interface{}) ([]models.Trip, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return trips, nil
}

// SearchVisible lists trips the viewer may see: their own trips plus trips
// where they hold an accepted request or a confirmed reservation.
func (r *TripRepository) SearchVisible(ctx context.Context, viewerID int, filter models.TripFilter) ([]models.Trip, error) {
	baseQuery := `SELECT ` + tripSelectColumns + `
                FROM trips t
                JOIN users u ON t.user_id = u.id
                WHERE (
                        t.user_id = ?
                        OR EXISTS (
                                SELECT 1 FROM trip_requests r
                                WHERE r.trip_id = t.id AND r.requester_id = ? AND r.status = ?
                        )
                        OR EXISTS (
                                SELECT 1 FROM trip_reservations res
                                WHERE res.trip_id = t.id AND res.passenger_id = ?
                                  AND res.passenger_accepted = TRUE AND res.driver_accepted = TRUE
                        )
                )`

	args := []interface{}{viewerID, viewerID, models.RequestStatusAccepted, viewerID}
	var parts []string
	appendFilterParts(filter, &parts, &args)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := baseQuery + " " + strings.Join(parts, " ") + " ORDER BY t.departure_time ASC, t.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	return r.queryTrips(ctx, query, args)
}

// SearchPublic lists trips for the unauthenticated feed. Full and
// completed trips are never shown there.
func (r *TripRepository) SearchPublic(ctx context.Context, filter models.TripFilter) ([]models.Trip, error) {
	baseQuery := `SELECT ` + tripSelectColumns + `
                FROM trips t
                JOIN users u ON t.user_id = u.id
                WHERE t.is_full = FALSE AND t.is_completed = FALSE`

	var (
		args  []interface{}
		parts []string
	)
	appendFilterParts(filter, &parts, &args)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := baseQuery + " " + strings.Join(parts, " ") + " ORDER BY t.departure_time ASC, t.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	return r.queryTrips(ctx, query, args)
}

// MarkCompleted sets one completion flag and derives is_completed from the
// other one in the same statement, so two racing completion calls cannot
// lose the final flip.
func (r *TripRepository) MarkCompleted(ctx context.Context, tripID int, byDriver bool) (models.TripCompletionSnapshot, error) {
	var query string
	if byDriver {
		query = `UPDATE trips SET completed_by_driver = TRUE, is_completed = completed_by_passenger WHERE id = ?`
	} else {
		query = `UPDATE trips SET completed_by_passenger = TRUE, is_completed = completed_by_driver WHERE id = ?`
	}
	if _, err := r.DB.ExecContext(ctx, query, tripID); err != nil {
		return models.TripCompletionSnapshot{}, err
	}

	var snapshot models.TripCompletionSnapshot
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, is_completed, completed_by_driver, completed_by_passenger FROM trips WHERE id = ?`,
		tripID,
	).Scan(&snapshot.ID, &snapshot.IsCompleted, &snapshot.CompletedByDriver, &snapshot.CompletedByPassenger)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TripCompletionSnapshot{}, models.ErrTripNotFound
	}
	if err != nil {
		return models.TripCompletionSnapshot{}, err
	}
	return snapshot, nil
}

func (r *TripRepository) ClearFull(ctx context.Context, tripID int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE trips SET is_full = FALSE WHERE id = ?`, tripID)
	return err
}
