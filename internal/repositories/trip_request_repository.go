package repositories

import (
	"context"
	"database/sql"
	"errors"

	"poputkaBack/internal/models"
)

type TripRequestRepository struct {
	DB *sql.DB
}

func (r *TripRequestRepository) CreateRequest(ctx context.Context, request models.TripRequest) (models.TripRequest, error) {
	query := `INSERT INTO trip_requests (trip_id, requester_id, type, status, seats_requested)
                  VALUES (?, ?, ?, ?, ?)`
	var seats sql.NullInt64
	if request.SeatsRequested != nil {
		seats = sql.NullInt64{Int64: int64(*request.SeatsRequested), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, request.TripID, request.RequesterID, request.Type, request.Status, seats)
	if err != nil {
		return models.TripRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TripRequest{}, err
	}
	return r.GetRequestByID(ctx, int(id))
}

func (r *TripRequestRepository) GetRequestByID(ctx context.Context, id int) (models.TripRequest, error) {
	query := `
                SELECT r.id, r.trip_id, r.requester_id, r.type, r.status, r.seats_requested, r.created_at,
                       t.user_id,
                       u.id, u.name, u.rating, u.is_verified, u.avatar_path
                FROM trip_requests r
                JOIN trips t ON r.trip_id = t.id
                JOIN users u ON r.requester_id = u.id
                WHERE r.id = ?
        `
	var (
		request models.TripRequest
		seats   sql.NullInt64
		avatar  sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.TripID, &request.RequesterID, &request.Type, &request.Status, &seats, &request.CreatedAt,
		&request.TripOwnerID,
		&request.Requester.ID, &request.Requester.Name, &request.Requester.Rating, &request.Requester.IsVerified, &avatar,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TripRequest{}, models.ErrRequestNotFound
	}
	if err != nil {
		return models.TripRequest{}, err
	}
	if seats.Valid {
		v := int(seats.Int64)
		request.SeatsRequested = &v
	}
	if avatar.Valid {
		request.Requester.AvatarPath = &avatar.String
	}
	return request, nil
}

func (r *TripRequestRepository) ListRequestsByTrip(ctx context.Context, tripID int) ([]models.TripRequest, error) {
	query := `
                SELECT r.id, r.trip_id, r.requester_id, r.type, r.status, r.seats_requested, r.created_at,
                       t.user_id,
                       u.id, u.name, u.rating, u.is_verified, u.avatar_path
                FROM trip_requests r
                JOIN trips t ON r.trip_id = t.id
                JOIN users u ON r.requester_id = u.id
                WHERE r.trip_id = ?
                ORDER BY r.created_at DESC
        `
	rows, err := r.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.TripRequest
	for rows.Next() {
		var (
			request models.TripRequest
			seats   sql.NullInt64
			avatar  sql.NullString
		)
		err := rows.Scan(
			&request.ID, &request.TripID, &request.RequesterID, &request.Type, &request.Status, &seats, &request.CreatedAt,
			&request.TripOwnerID,
			&request.Requester.ID, &request.Requester.Name, &request.Requester.Rating, &request.Requester.IsVerified, &avatar,
		)
		if err != nil {
			return nil, err
		}
		if seats.Valid {
			v := int(seats.Int64)
			request.SeatsRequested = &v
		}
		if avatar.Valid {
			request.Requester.AvatarPath = &avatar.String
		}
		requests = append(requests, request)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// HasActiveRequest reports whether a PENDING or ACCEPTED request of the
// given type already exists for (trip, requester).
func (r *TripRequestRepository) HasActiveRequest(ctx context.Context, tripID, requesterID int, requestType string) (bool, error) {
	query := `SELECT EXISTS (
                        SELECT 1 FROM trip_requests
                        WHERE trip_id = ? AND requester_id = ? AND type = ? AND status IN (?, ?)
                )`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, tripID, requesterID, requestType,
		models.RequestStatusPending, models.RequestStatusAccepted).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus moves a PENDING request to a terminal status. The WHERE
// clause doubles as an optimistic guard: zero affected rows means another
// transition won the race.
func (r *TripRequestRepository) UpdateStatus(ctx context.Context, requestID int, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE trip_requests SET status = ? WHERE id = ? AND status = ?`,
		status, requestID, models.RequestStatusPending,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRequestNotPending
	}
	return nil
}

// AcceptRequest performs the accept transition as one transaction: seat
// re-check and decrement (BOOKING only), chat get-or-create, idempotent
// member adds, and the status flip. Any failure rolls the whole unit back.
func (r *TripRequestRepository) AcceptRequest(ctx context.Context, request models.TripRequest) (chatID int, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if request.Type == models.RequestTypeBooking {
		if request.SeatsRequested == nil || *request.SeatsRequested < 1 {
			err = models.ErrSeatsRequired
			return 0, err
		}
		if err = decrementSeats(ctx, tx, request.TripID, *request.SeatsRequested); err != nil {
			return 0, err
		}
	}

	chatID, err = ensureChatWithMembers(ctx, tx, request.TripID, request.RequesterID, request.TripOwnerID)
	if err != nil {
		return 0, err
	}

	res, execErr := tx.ExecContext(ctx,
		`UPDATE trip_requests SET status = ? WHERE id = ? AND status = ?`,
		models.RequestStatusAccepted, request.ID, models.RequestStatusPending,
	)
	if execErr != nil {
		err = execErr
		return 0, err
	}
	rows, rowsErr := res.RowsAffected()
	if rowsErr != nil {
		err = rowsErr
		return 0, err
	}
	if rows == 0 {
		err = models.ErrRequestNotPending
		return 0, err
	}

	return chatID, nil
}

// CreateAcceptedBooking backs the legacy direct booking path: the request
// row is born ACCEPTED and the seat decrement plus chat side effects run in
// the same transaction as the insert.
func (r *TripRequestRepository) CreateAcceptedBooking(ctx context.Context, tripID, ownerID, requesterID, seats int) (requestID, chatID int, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if err = decrementSeats(ctx, tx, tripID, seats); err != nil {
		return 0, 0, err
	}

	res, execErr := tx.ExecContext(ctx,
		`INSERT INTO trip_requests (trip_id, requester_id, type, status, seats_requested) VALUES (?, ?, ?, ?, ?)`,
		tripID, requesterID, models.RequestTypeBooking, models.RequestStatusAccepted, seats,
	)
	if execErr != nil {
		err = execErr
		return 0, 0, err
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		err = idErr
		return 0, 0, err
	}

	chatID, err = ensureChatWithMembers(ctx, tx, tripID, requesterID, ownerID)
	if err != nil {
		return 0, 0, err
	}

	return int(id), chatID, nil
}

// decrementSeats re-reads the seat counter under a row lock so two
// concurrent accepts on the same trip serialize, then applies the
// decrement and the fullness flag in one statement.
func decrementSeats(ctx context.Context, tx *sql.Tx, tripID, seats int) error {
	var (
		available int
		isFull    bool
	)
	err := tx.QueryRowContext(ctx,
		`SELECT available_seats, is_full FROM trips WHERE id = ? FOR UPDATE`, tripID,
	).Scan(&available, &isFull)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrTripNotFound
	}
	if err != nil {
		return err
	}
	if isFull {
		return models.ErrTripFull
	}
	if seats > available {
		return models.ErrNotEnoughSeats
	}

	remaining := available - seats
	_, err = tx.ExecContext(ctx,
		`UPDATE trips SET available_seats = ?, is_full = ? WHERE id = ?`,
		remaining, remaining == 0, tripID,
	)
	return err
}

// ensureChatWithMembers gets or creates the trip chat and adds both
// participants. INSERT IGNORE makes the member adds idempotent across
// repeated accepts on the same trip.
func ensureChatWithMembers(ctx context.Context, tx *sql.Tx, tripID int, memberIDs ...int) (int, error) {
	var chatID int
	err := tx.QueryRowContext(ctx, `SELECT id FROM chats WHERE trip_id = ?`, tripID).Scan(&chatID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, execErr := tx.ExecContext(ctx, `INSERT INTO chats (trip_id) VALUES (?)`, tripID)
		if execErr != nil {
			return 0, execErr
		}
		id, idErr := res.LastInsertId()
		if idErr != nil {
			return 0, idErr
		}
		chatID = int(id)
	case err != nil:
		return 0, err
	}

	for _, userID := range memberIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT IGNORE INTO chat_members (chat_id, user_id) VALUES (?, ?)`, chatID, userID,
		); err != nil {
			return 0, err
		}
	}
	return chatID, nil
}
