package repositories

import (
	"context"
	"database/sql"
	"errors"

	"poputkaBack/internal/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r *VehicleRepository) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (int, error) {
	query := `INSERT INTO vehicles (user_id, vehicle_type, brand, model, seats) VALUES (?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query, vehicle.UserID, vehicle.VehicleType, vehicle.Brand, vehicle.Model, vehicle.Seats)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *VehicleRepository) GetVehicleByID(ctx context.Context, id int) (models.Vehicle, error) {
	var vehicle models.Vehicle
	query := `SELECT id, user_id, vehicle_type, brand, model, seats, created_at FROM vehicles WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID, &vehicle.UserID, &vehicle.VehicleType, &vehicle.Brand, &vehicle.Model, &vehicle.Seats, &vehicle.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, models.ErrVehicleNotFound
	}
	if err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *VehicleRepository) GetVehiclesByUserID(ctx context.Context, userID int) ([]models.Vehicle, error) {
	query := `SELECT id, user_id, vehicle_type, brand, model, seats, created_at
                  FROM vehicles WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var vehicle models.Vehicle
		err := rows.Scan(&vehicle.ID, &vehicle.UserID, &vehicle.VehicleType, &vehicle.Brand, &vehicle.Model, &vehicle.Seats, &vehicle.CreatedAt)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}
