package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"poputkaBack/internal/models"
	"poputkaBack/internal/services"
)

type TripHandler struct {
	Service *services.TripService
}

func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	trip, err := h.Service.CreateTrip(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) GetTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	filter, err := parseTripFilter(r)
	if err != nil {
		clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trips, err := h.Service.GetTrips(r.Context(), userID, filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetPublicTrips is the only unauthenticated trip listing.
func (h *TripHandler) GetPublicTrips(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTripFilter(r)
	if err != nil {
		clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trips, err := h.Service.GetPublicTrips(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

func (h *TripHandler) GetTripByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, err := h.Service.GetTripByID(r.Context(), userID, tripID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Service.Dashboard(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// BookTrip is the direct booking endpoint kept for older clients.
func (h *TripHandler) BookTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	var req models.BookTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.Service.BookTrip(r.Context(), userID, tripID, req.Seats)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func parseTripFilter(r *http.Request) (models.TripFilter, error) {
	q := r.URL.Query()
	filter := models.TripFilter{
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
	}

	if v := q.Get("price_from"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.TripFilter{}, models.Validationf("invalid price_from")
		}
		filter.PriceFrom = &price
	}
	if v := q.Get("price_to"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.TripFilter{}, models.Validationf("invalid price_to")
		}
		filter.PriceTo = &price
	}
	if v := q.Get("min_seats"); v != "" {
		seats, err := strconv.Atoi(v)
		if err != nil || seats < 0 {
			return models.TripFilter{}, models.Validationf("invalid min_seats")
		}
		filter.MinSeats = seats
	}
	if v := q.Get("only_available"); v != "" {
		filter.OnlyAvailable = v == "true" || v == "1"
	}
	if v := q.Get("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return models.TripFilter{}, models.Validationf("date must be YYYY-MM-DD")
		}
		filter.Date = &date
	}
	if v := q.Get("scope"); v != "" {
		if v != models.TripScopeUpcoming && v != models.TripScopePast {
			return models.TripFilter{}, models.Validationf("scope must be upcoming or past")
		}
		filter.Scope = v
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return models.TripFilter{}, models.Validationf("invalid limit")
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return models.TripFilter{}, models.Validationf("invalid offset")
		}
		filter.Offset = offset
	}
	return filter, nil
}
