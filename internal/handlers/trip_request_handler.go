package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"poputkaBack/internal/models"
	"poputkaBack/internal/services"
)

type TripRequestHandler struct {
	Service *services.TripRequestService
}

func (h *TripRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	var req models.CreateTripRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	request, err := h.Service.CreateRequest(r.Context(), userID, tripID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *TripRequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	requests, err := h.Service.ListRequests(r.Context(), userID, tripID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if requests == nil {
		requests = []models.TripRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

// UpdateRequest applies ACCEPT, REJECT or CANCEL to a pending request.
func (h *TripRequestHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	requestID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid request id")
		return
	}

	var req models.UpdateTripRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" {
		clientError(w, r, http.StatusBadRequest, "action is required")
		return
	}

	result, err := h.Service.UpdateRequest(r.Context(), userID, requestID, req.Action)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
