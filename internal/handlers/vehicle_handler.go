package handlers

import (
	"encoding/json"
	"net/http"

	"poputkaBack/internal/models"
	"poputkaBack/internal/services"
)

type VehicleHandler struct {
	Service *services.VehicleService
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	vehicle, err := h.Service.CreateVehicle(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) ListMyVehicles(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	vehicles, err := h.Service.GetVehiclesByUserID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}
