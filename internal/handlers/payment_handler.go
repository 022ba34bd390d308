package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"poputkaBack/internal/models"
	"poputkaBack/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	payment, err := h.Service.CreatePayment(r.Context(), userID, tripID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	paymentID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		clientError(w, r, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.Service.GetPaymentByID(r.Context(), userID, paymentID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
