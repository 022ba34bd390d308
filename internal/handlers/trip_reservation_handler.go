package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"poputkaBack/internal/models"
	"poputkaBack/internal/services"
)

type TripReservationHandler struct {
	Service *services.TripReservationService
}

func (h *TripReservationHandler) RequestReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req models.RequestReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TripID == 0 {
		clientError(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}

	reservation, err := h.Service.RequestReservation(r.Context(), userID, req.TripID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *TripReservationHandler) AcceptReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	reservationID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid reservation id")
		return
	}

	reservation, err := h.Service.AcceptReservation(r.Context(), userID, reservationID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *TripReservationHandler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	reservationID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := h.Service.RejectReservation(r.Context(), userID, reservationID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	reservationID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := h.Service.CancelReservation(r.Context(), userID, reservationID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripReservationHandler) CompleteByDriver(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, true)
}

func (h *TripReservationHandler) CompleteByPassenger(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, false)
}

func (h *TripReservationHandler) complete(w http.ResponseWriter, r *http.Request, byDriver bool) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	reservationID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid reservation id")
		return
	}

	result, err := h.Service.CompleteReservation(r.Context(), userID, reservationID, byDriver)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
