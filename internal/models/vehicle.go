package models

import "time"

type Vehicle struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	VehicleType string    `json:"vehicle_type"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Seats       int       `json:"seats"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateVehicleRequest struct {
	VehicleType string `json:"vehicle_type"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Seats       int    `json:"seats"`
}
