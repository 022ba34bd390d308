package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"poputkaBack/internal/models"
)

// errorResponse is the envelope every error leaves the API in.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	RequestID  string `json:"requestId"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorJSON(w http.ResponseWriter, r *http.Request, status int, message string) {
	requestID, _ := r.Context().Value("request_id").(string)
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		RequestID:  requestID,
	})
}

func clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	errorJSON(w, r, status, message)
}

// serverError logs the real cause and returns a generic message, internals
// never reach the client.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("server error on %s %s: %v", r.Method, r.URL.Path, err)
	errorJSON(w, r, http.StatusInternalServerError, "internal server error")
}

// handleServiceError maps domain errors onto HTTP statuses. Anything
// unmapped is a server error.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		errorJSON(w, r, http.StatusBadRequest, validationErr.Msg)

	case errors.Is(err, models.ErrInvalidCredentials):
		errorJSON(w, r, http.StatusUnauthorized, err.Error())

	case errors.Is(err, models.ErrOwnTrip),
		errors.Is(err, models.ErrTripAccessDenied),
		errors.Is(err, models.ErrVehicleNotOwned),
		errors.Is(err, models.ErrNotTripOwner),
		errors.Is(err, models.ErrNotRequester),
		errors.Is(err, models.ErrNotParticipant),
		errors.Is(err, models.ErrNotChatMember),
		errors.Is(err, models.ErrRequestNotOwned),
		errors.Is(err, models.ErrRequestTripMismatch),
		errors.Is(err, models.ErrPaymentAccessDenied):
		errorJSON(w, r, http.StatusForbidden, err.Error())

	case errors.Is(err, models.ErrNoRecord),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrTripNotFound),
		errors.Is(err, models.ErrVehicleNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrReservationNotFound),
		errors.Is(err, models.ErrChatNotFound),
		errors.Is(err, models.ErrPaymentNotFound):
		errorJSON(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrTripFull),
		errors.Is(err, models.ErrNotEnoughSeats),
		errors.Is(err, models.ErrDuplicateRequest),
		errors.Is(err, models.ErrRequestNotPending),
		errors.Is(err, models.ErrReservationExists):
		errorJSON(w, r, http.StatusConflict, err.Error())

	case errors.Is(err, models.ErrSeatsRequired),
		errors.Is(err, models.ErrTripInPast),
		errors.Is(err, models.ErrReservationNotMutual),
		errors.Is(err, models.ErrTripNotDeparted),
		errors.Is(err, models.ErrTripDeparted):
		errorJSON(w, r, http.StatusBadRequest, err.Error())

	default:
		serverError(w, r, err)
	}
}

// authenticatedUserID pulls the user id the JWT middleware stored on the
// request context.
func authenticatedUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		errorJSON(w, r, http.StatusUnauthorized, "user not authorized")
		return 0, false
	}
	return userID, true
}
