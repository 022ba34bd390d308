package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

const publicTripsCacheTTL = 30 * time.Second

type TripService struct {
	TripRepo    *repositories.TripRepository
	VehicleRepo *repositories.VehicleRepository
	RequestRepo *repositories.TripRequestRepository
	Cache       *redis.Client
}

func (s *TripService) CreateTrip(ctx context.Context, userID int, req models.CreateTripRequest) (models.Trip, error) {
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return models.Trip{}, models.Validationf("origin and destination are required")
	}
	if req.Seats < 1 {
		return models.Trip{}, models.Validationf("seats must be at least 1")
	}
	if req.Price < 0 {
		return models.Trip{}, models.Validationf("price cannot be negative")
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		return models.Trip{}, models.Validationf("departure_time must be an RFC3339 timestamp")
	}
	if !departure.After(time.Now()) {
		return models.Trip{}, models.ErrTripInPast
	}

	if req.VehicleID != nil {
		vehicle, err := s.VehicleRepo.GetVehicleByID(ctx, *req.VehicleID)
		if err != nil {
			return models.Trip{}, err
		}
		if vehicle.UserID != userID {
			return models.Trip{}, models.ErrVehicleNotOwned
		}
	}

	trip := models.Trip{
		UserID:         userID,
		VehicleID:      req.VehicleID,
		Origin:         strings.TrimSpace(req.Origin),
		Destination:    strings.TrimSpace(req.Destination),
		DepartureTime:  departure,
		Price:          req.Price,
		TotalSeats:     req.Seats,
		AvailableSeats: req.Seats,
	}
	if strings.TrimSpace(req.Description) != "" {
		description := strings.TrimSpace(req.Description)
		trip.Description = &description
	}

	return s.TripRepo.CreateTrip(ctx, trip)
}

func (s *TripService) GetTrips(ctx context.Context, viewerID int, filter models.TripFilter) ([]models.Trip, error) {
	return s.TripRepo.SearchVisible(ctx, viewerID, filter)
}

// GetPublicTrips serves the unauthenticated feed through a short-lived
// cache so search bursts do not hammer the database.
func (s *TripService) GetPublicTrips(ctx context.Context, filter models.TripFilter) ([]models.Trip, error) {
	key := publicTripsCacheKey(filter)

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			var trips []models.Trip
			if err = json.Unmarshal([]byte(cached), &trips); err == nil {
				return trips, nil
			}
		}
	}

	trips, err := s.TripRepo.SearchPublic(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(trips); err == nil {
			s.Cache.Set(ctx, key, data, publicTripsCacheTTL)
		}
	}
	return trips, nil
}

func publicTripsCacheKey(filter models.TripFilter) string {
	date := ""
	if filter.Date != nil {
		date = filter.Date.Format("2006-01-02")
	}
	priceFrom, priceTo := "", ""
	if filter.PriceFrom != nil {
		priceFrom = fmt.Sprintf("%.2f", *filter.PriceFrom)
	}
	if filter.PriceTo != nil {
		priceTo = fmt.Sprintf("%.2f", *filter.PriceTo)
	}
	return fmt.Sprintf("trips:public:%s:%s:%s:%s:%d:%t:%s:%s:%d:%d",
		strings.ToLower(filter.Origin), strings.ToLower(filter.Destination),
		priceFrom, priceTo, filter.MinSeats, filter.OnlyAvailable, date, filter.Scope,
		filter.Limit, filter.Offset)
}

// GetTripByID enforces the visibility rule: the driver always sees the
// trip, everyone else needs an accepted participation.
func (s *TripService) GetTripByID(ctx context.Context, viewerID, tripID int) (models.Trip, error) {
	trip, err := s.TripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return models.Trip{}, err
	}
	if trip.UserID == viewerID {
		return trip, nil
	}
	ok, err := s.TripRepo.HasAcceptedParticipation(ctx, tripID, viewerID)
	if err != nil {
		return models.Trip{}, err
	}
	if !ok {
		return models.Trip{}, models.ErrTripAccessDenied
	}
	return trip, nil
}

func (s *TripService) Dashboard(ctx context.Context, userID int) (models.DashboardTrips, error) {
	trips, err := s.TripRepo.SearchVisible(ctx, userID, models.TripFilter{Limit: 200})
	if err != nil {
		return models.DashboardTrips{}, err
	}
	return categorizeTrips(trips, time.Now()), nil
}

// categorizeTrips splits trips for the dashboard. Completion wins over the
// date: a completed trip is past even if its departure has not arrived.
func categorizeTrips(trips []models.Trip, now time.Time) models.DashboardTrips {
	dashboard := models.DashboardTrips{
		Upcoming: []models.Trip{},
		Past: models.DashboardPastTrips{
			Pending:   []models.Trip{},
			Completed: []models.Trip{},
		},
	}
	for _, trip := range trips {
		switch {
		case trip.IsCompleted:
			dashboard.Past.Completed = append(dashboard.Past.Completed, trip)
		case trip.DepartureTime.After(now):
			dashboard.Upcoming = append(dashboard.Upcoming, trip)
		default:
			dashboard.Past.Pending = append(dashboard.Past.Pending, trip)
		}
	}
	return dashboard
}

// BookTrip is the older direct booking path: no pending step, the booking
// is accepted in one transaction.
func (s *TripService) BookTrip(ctx context.Context, userID, tripID, seats int) (models.TripRequestResult, error) {
	if seats < 1 {
		return models.TripRequestResult{}, models.ErrSeatsRequired
	}

	trip, err := s.TripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return models.TripRequestResult{}, err
	}
	if trip.UserID == userID {
		return models.TripRequestResult{}, models.ErrOwnTrip
	}

	exists, err := s.RequestRepo.HasActiveRequest(ctx, tripID, userID, models.RequestTypeBooking)
	if err != nil {
		return models.TripRequestResult{}, err
	}
	if exists {
		return models.TripRequestResult{}, models.ErrDuplicateRequest
	}

	requestID, chatID, err := s.RequestRepo.CreateAcceptedBooking(ctx, tripID, trip.UserID, userID, seats)
	if err != nil {
		return models.TripRequestResult{}, err
	}

	request, err := s.RequestRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.TripRequestResult{}, err
	}
	return models.TripRequestResult{TripRequest: request, ChatID: &chatID}, nil
}
