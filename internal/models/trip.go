package models

import "time"

type Trip struct {
	ID                   int         `json:"id"`
	UserID               int         `json:"user_id"`
	VehicleID            *int        `json:"vehicle_id,omitempty"`
	Origin               string      `json:"origin"`
	Destination          string      `json:"destination"`
	DepartureTime        time.Time   `json:"departure_time"`
	Price                float64     `json:"price"`
	TotalSeats           int         `json:"total_seats"`
	AvailableSeats       int         `json:"available_seats"`
	IsFull               bool        `json:"is_full"`
	Description          *string     `json:"description,omitempty"`
	CompletedByDriver    bool        `json:"completed_by_driver"`
	CompletedByPassenger bool        `json:"completed_by_passenger"`
	IsCompleted          bool        `json:"is_completed"`
	CreatedAt            time.Time   `json:"created_at"`
	Driver               UserSummary `json:"driver"`
	Vehicle              *Vehicle    `json:"vehicle,omitempty"`
}

type CreateTripRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	Price         float64 `json:"price"`
	Seats         int     `json:"seats"`
	Description   string  `json:"description"`
	VehicleID     *int    `json:"vehicle_id"`
}

// TripFilter carries every listing filter as an explicit optional field.
// Each field is validated and converted by the handler before the filter
// reaches the repository.
type TripFilter struct {
	Origin        string
	Destination   string
	PriceFrom     *float64
	PriceTo       *float64
	MinSeats      int
	OnlyAvailable bool
	Date          *time.Time
	Scope         string // "", "upcoming" or "past"
	Limit         int
	Offset        int
}

const (
	TripScopeUpcoming = "upcoming"
	TripScopePast     = "past"
)

type BookTripRequest struct {
	Seats int `json:"seats"`
}

// DashboardTrips buckets a user's visible trips for the dashboard screen.
// Completion overrides the date split: a completed trip lands in
// Past.Completed even when its departure is still in the future.
type DashboardTrips struct {
	Upcoming []Trip              `json:"upcoming"`
	Past     DashboardPastTrips  `json:"past"`
}

type DashboardPastTrips struct {
	Pending   []Trip `json:"pending"`
	Completed []Trip `json:"completed"`
}
